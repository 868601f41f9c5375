package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/floorsight/backend/internal/contracts"
)

// UploadRepository implements contracts.UploadRepository on PostgreSQL.
type UploadRepository struct {
	pool *pgxpool.Pool
}

// NewUploadRepository creates a new upload history repository.
func NewUploadRepository(pool *pgxpool.Pool) *UploadRepository {
	return &UploadRepository{pool: pool}
}

// Save inserts an ingest record.
func (r *UploadRepository) Save(ctx context.Context, rec *contracts.UploadRecord) error {
	query := `
		INSERT INTO market.uploads (file_name, uploaded_at, trades_count, status, error)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		rec.FileName, rec.UploadedAt, rec.TradesCount, string(rec.Status), rec.Error,
	).Scan(&rec.ID)
	if err != nil {
		return fmt.Errorf("save upload record: %w", err)
	}
	return nil
}

// ListRecent retrieves the most recent ingest records, newest first.
func (r *UploadRepository) ListRecent(ctx context.Context, limit int) ([]*contracts.UploadRecord, error) {
	query := `
		SELECT id, file_name, uploaded_at, trades_count, status, error
		FROM market.uploads
		ORDER BY uploaded_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query upload history: %w", err)
	}
	defer rows.Close()

	var records []*contracts.UploadRecord
	for rows.Next() {
		var rec contracts.UploadRecord
		var status string
		if err := rows.Scan(&rec.ID, &rec.FileName, &rec.UploadedAt,
			&rec.TradesCount, &status, &rec.Error); err != nil {
			return nil, fmt.Errorf("scan upload record: %w", err)
		}
		rec.Status = contracts.UploadStatus(status)
		records = append(records, &rec)
	}
	return records, rows.Err()
}
