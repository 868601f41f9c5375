package contracts

import "context"

// StockRepository manages per-symbol daily summaries.
type StockRepository interface {
	Save(ctx context.Context, s *StockDailySummary) error
	SaveBatch(ctx context.Context, summaries []*StockDailySummary) error
	ListByDate(ctx context.Context, date string) ([]*StockDailySummary, error)
	ListRecent(ctx context.Context, limit int) ([]*StockDailySummary, error)
}

// BrokerRepository manages per-broker daily positions.
type BrokerRepository interface {
	Save(ctx context.Context, p *BrokerPosition) error
	SaveBatch(ctx context.Context, positions []*BrokerPosition) error
	ListByBroker(ctx context.Context, brokerCode string, limit int) ([]*BrokerPosition, error)
	ListRecent(ctx context.Context, limit int) ([]*BrokerPosition, error)
	ListAlerts(ctx context.Context, level AlertLevel, limit int) ([]*BrokerPosition, error)
}

// UploadRepository records ingest history.
type UploadRepository interface {
	Save(ctx context.Context, rec *UploadRecord) error
	ListRecent(ctx context.Context, limit int) ([]*UploadRecord, error)
}
