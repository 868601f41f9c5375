// Package jobs defines the scheduled market jobs.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/floorsight/backend/internal/external/nepse"
	"github.com/floorsight/backend/internal/ingest"
	"github.com/floorsight/backend/pkg/logger"
)

// FloorsheetSyncJob pulls the day's floor sheet from the exchange portal and
// runs it through the ingest pipeline.
type FloorsheetSyncJob struct {
	fetcher *nepse.Client
	ingest  *ingest.Service
	logger  *logger.Logger
}

// NewFloorsheetSyncJob creates a new floor-sheet sync job.
func NewFloorsheetSyncJob(fetcher *nepse.Client, svc *ingest.Service, log *logger.Logger) *FloorsheetSyncJob {
	return &FloorsheetSyncJob{
		fetcher: fetcher,
		ingest:  svc,
		logger:  log,
	}
}

// Name returns the job name.
func (j *FloorsheetSyncJob) Name() string {
	return "floorsheet_sync"
}

// Schedule returns the cron schedule. NEPSE closes at 15:00 NPT Sunday
// through Thursday; the sync runs after settlement data is published.
func (j *FloorsheetSyncJob) Schedule() string {
	return "0 30 15 * * SUN-THU"
}

// Run fetches and ingests the floor sheet.
func (j *FloorsheetSyncJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled floor-sheet sync")

	rows, err := j.fetcher.FetchFloorSheet(ctx)
	if err != nil {
		return fmt.Errorf("fetch floor sheet: %w", err)
	}

	source := fmt.Sprintf("nepse-sync-%s", time.Now().UTC().Format("2006-01-02"))
	result, err := j.ingest.IngestRows(ctx, source, rows)
	if err != nil {
		return fmt.Errorf("ingest floor sheet: %w", err)
	}

	j.logger.WithFields(map[string]interface{}{
		"valid_trades": result.Stats.ValidTrades,
		"symbols":      result.Stats.UniqueSymbols,
		"brokers":      result.Stats.UniqueBrokers,
	}).Info("Scheduled floor-sheet sync completed successfully")

	return nil
}
