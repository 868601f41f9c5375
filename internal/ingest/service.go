// Package ingest orchestrates one floor-sheet batch end to end: raw rows in,
// aggregates persisted, an upload record written either way.
package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/floorsight/backend/internal/contracts"
	"github.com/floorsight/backend/internal/floorsheet"
	"github.com/floorsight/backend/internal/floorsheet/extract"
)

// Progress stages emitted during a run.
const (
	StageExtracting  = "extracting"
	StageProcessing  = "processing"
	StageSavingStock = "saving_stocks"
	StageSavingPos   = "saving_positions"
	StageDone        = "done"
	StageFailed      = "failed"
)

// ProgressEvent is a coarse stage notification for live observers.
type ProgressEvent struct {
	Source string `json:"source"`
	Stage  string `json:"stage"`
	Rows   int    `json:"rows,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Notifier receives progress events. Implementations must not block.
type Notifier interface {
	Publish(event ProgressEvent)
}

type nopNotifier struct{}

func (nopNotifier) Publish(ProgressEvent) {}

// Service runs batches through the pipeline and persists the results.
type Service struct {
	pipeline *floorsheet.Pipeline
	stocks   contracts.StockRepository
	brokers  contracts.BrokerRepository
	uploads  contracts.UploadRepository
	notifier Notifier
	log      zerolog.Logger
}

// NewService creates an ingest service. notifier may be nil.
func NewService(
	pipeline *floorsheet.Pipeline,
	stocks contracts.StockRepository,
	brokers contracts.BrokerRepository,
	uploads contracts.UploadRepository,
	notifier Notifier,
	log zerolog.Logger,
) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Service{
		pipeline: pipeline,
		stocks:   stocks,
		brokers:  brokers,
		uploads:  uploads,
		notifier: notifier,
		log:      log.With().Str("component", "ingest").Logger(),
	}
}

// IngestCSV extracts rows from a CSV stream and runs them as one batch.
// source names the batch in upload history (typically the file name).
func (s *Service) IngestCSV(ctx context.Context, source string, r io.Reader) (*floorsheet.Result, error) {
	s.notifier.Publish(ProgressEvent{Source: source, Stage: StageExtracting})

	rows, err := extract.Rows(r)
	if err != nil {
		s.recordFailure(ctx, source, err)
		return nil, err
	}

	return s.IngestRows(ctx, source, rows)
}

// IngestRows runs already-extracted rows as one batch. The batch is atomic
// from the caller's point of view: on any error nothing but the failed
// upload record is persisted.
func (s *Service) IngestRows(ctx context.Context, source string, rows []contracts.RawRow) (*floorsheet.Result, error) {
	s.notifier.Publish(ProgressEvent{Source: source, Stage: StageProcessing, Rows: len(rows)})

	result, err := s.pipeline.Process(rows)
	if err != nil {
		s.recordFailure(ctx, source, err)
		return nil, err
	}

	s.notifier.Publish(ProgressEvent{Source: source, Stage: StageSavingStock, Rows: len(result.Stocks)})
	if err := s.stocks.SaveBatch(ctx, result.Stocks); err != nil {
		err = fmt.Errorf("save stock summaries: %w", err)
		s.recordFailure(ctx, source, err)
		return nil, err
	}

	s.notifier.Publish(ProgressEvent{Source: source, Stage: StageSavingPos, Rows: len(result.Positions)})
	if err := s.brokers.SaveBatch(ctx, result.Positions); err != nil {
		err = fmt.Errorf("save broker positions: %w", err)
		s.recordFailure(ctx, source, err)
		return nil, err
	}

	rec := &contracts.UploadRecord{
		FileName:    source,
		UploadedAt:  time.Now().UTC(),
		TradesCount: result.Stats.ValidTrades,
		Status:      contracts.UploadSuccess,
	}
	if err := s.uploads.Save(ctx, rec); err != nil {
		s.log.Warn().Err(err).Msg("upload record write failed")
	}

	s.notifier.Publish(ProgressEvent{Source: source, Stage: StageDone, Rows: result.Stats.ValidTrades})
	s.log.Info().
		Str("source", source).
		Int("valid_trades", result.Stats.ValidTrades).
		Int("stocks", len(result.Stocks)).
		Int("positions", len(result.Positions)).
		Msg("batch ingested")

	return result, nil
}

func (s *Service) recordFailure(ctx context.Context, source string, cause error) {
	s.notifier.Publish(ProgressEvent{Source: source, Stage: StageFailed, Error: cause.Error()})

	rec := &contracts.UploadRecord{
		FileName:   source,
		UploadedAt: time.Now().UTC(),
		Status:     contracts.UploadFailed,
		Error:      cause.Error(),
	}
	if err := s.uploads.Save(ctx, rec); err != nil {
		s.log.Warn().Err(err).Msg("upload record write failed")
	}
	s.log.Error().Err(cause).Str("source", source).Msg("batch ingest failed")
}
