package contracts

import "time"

// UploadStatus is the terminal state of one floor-sheet ingest.
type UploadStatus string

const (
	UploadSuccess UploadStatus = "success"
	UploadFailed  UploadStatus = "failed"
)

// UploadRecord is one entry in the ingest history.
type UploadRecord struct {
	ID          int64        `json:"id,omitempty"`
	FileName    string       `json:"file_name"`
	UploadedAt  time.Time    `json:"uploaded_at"`
	TradesCount int          `json:"trades_count"`
	Status      UploadStatus `json:"status"`
	Error       string       `json:"error,omitempty"`
}
