package handlers

import (
	"errors"
	"net/http"

	"github.com/floorsight/backend/internal/contracts"
	"github.com/floorsight/backend/internal/external/nepse"
	"github.com/floorsight/backend/internal/ingest"
	"github.com/floorsight/backend/pkg/logger"
)

// maxUploadSize bounds multipart uploads at 32 MiB.
const maxUploadSize = 32 << 20

// FloorsheetHandler handles floor-sheet ingestion endpoints.
type FloorsheetHandler struct {
	ingest  *ingest.Service
	fetcher *nepse.Client
	uploads contracts.UploadRepository
	logger  *logger.Logger
}

// NewFloorsheetHandler creates a new floor-sheet handler.
func NewFloorsheetHandler(svc *ingest.Service, fetcher *nepse.Client, uploads contracts.UploadRepository, log *logger.Logger) *FloorsheetHandler {
	return &FloorsheetHandler{
		ingest:  svc,
		fetcher: fetcher,
		uploads: uploads,
		logger:  log,
	}
}

// UploadResponse reports the outcome of one ingested batch.
type UploadResponse struct {
	Status string               `json:"status"`
	Source string               `json:"source"`
	Stats  contracts.BatchStats `json:"stats"`
}

// Upload ingests a floor-sheet CSV from a multipart form field named "file".
// POST /api/floorsheet/upload
func (h *FloorsheetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing 'file' form field")
		return
	}
	defer file.Close()

	result, err := h.ingest.IngestCSV(ctx, header.Filename, file)
	if err != nil {
		h.respondIngestError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, UploadResponse{
		Status: "success",
		Source: header.Filename,
		Stats:  result.Stats,
	})
}

// Sync fetches today's floor sheet from the exchange portal and ingests it.
// POST /api/floorsheet/sync
func (h *FloorsheetHandler) Sync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.fetcher.FetchFloorSheet(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Floor-sheet fetch failed")
		respondError(w, http.StatusBadGateway, "Failed to fetch floor sheet")
		return
	}

	result, err := h.ingest.IngestRows(ctx, "nepse-sync", rows)
	if err != nil {
		h.respondIngestError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, UploadResponse{
		Status: "success",
		Source: "nepse-sync",
		Stats:  result.Stats,
	})
}

// History returns recent ingest attempts, newest first.
// GET /api/floorsheet/uploads
func (h *FloorsheetHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.uploads.ListRecent(r.Context(), queryInt(r, "limit", 20))
	if err != nil {
		h.logger.WithError(err).Error("Failed to list uploads")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve upload history")
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// respondIngestError maps batch-level failures to 422 and everything else
// to 500.
func (h *FloorsheetHandler) respondIngestError(w http.ResponseWriter, err error) {
	if errors.Is(err, contracts.ErrNoRows) || errors.Is(err, contracts.ErrNoValidTrades) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	h.logger.WithError(err).Error("Batch ingest failed")
	respondError(w, http.StatusInternalServerError, "Failed to ingest batch")
}
