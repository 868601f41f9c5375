package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/backend/internal/contracts"
	"github.com/floorsight/backend/internal/floorsheet"
	"github.com/floorsight/backend/pkg/logger"
)

type fakeStockRepo struct {
	saved []*contracts.StockDailySummary
	err   error
}

func (f *fakeStockRepo) Save(_ context.Context, s *contracts.StockDailySummary) error {
	f.saved = append(f.saved, s)
	return f.err
}

func (f *fakeStockRepo) SaveBatch(_ context.Context, summaries []*contracts.StockDailySummary) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, summaries...)
	return nil
}

func (f *fakeStockRepo) ListByDate(context.Context, string) ([]*contracts.StockDailySummary, error) {
	return f.saved, nil
}

func (f *fakeStockRepo) ListRecent(context.Context, int) ([]*contracts.StockDailySummary, error) {
	return f.saved, nil
}

type fakeBrokerRepo struct {
	saved []*contracts.BrokerPosition
}

func (f *fakeBrokerRepo) Save(_ context.Context, p *contracts.BrokerPosition) error {
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeBrokerRepo) SaveBatch(_ context.Context, positions []*contracts.BrokerPosition) error {
	f.saved = append(f.saved, positions...)
	return nil
}

func (f *fakeBrokerRepo) ListByBroker(context.Context, string, int) ([]*contracts.BrokerPosition, error) {
	return f.saved, nil
}

func (f *fakeBrokerRepo) ListRecent(context.Context, int) ([]*contracts.BrokerPosition, error) {
	return f.saved, nil
}

func (f *fakeBrokerRepo) ListAlerts(context.Context, contracts.AlertLevel, int) ([]*contracts.BrokerPosition, error) {
	return f.saved, nil
}

type fakeUploadRepo struct {
	records []*contracts.UploadRecord
}

func (f *fakeUploadRepo) Save(_ context.Context, rec *contracts.UploadRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeUploadRepo) ListRecent(context.Context, int) ([]*contracts.UploadRecord, error) {
	return f.records, nil
}

type recordingNotifier struct {
	stages []string
}

func (n *recordingNotifier) Publish(event ProgressEvent) {
	n.stages = append(n.stages, event.Stage)
}

func newTestService(stocks *fakeStockRepo, brokers *fakeBrokerRepo, uploads *fakeUploadRepo, notifier Notifier) *Service {
	log := logger.Nop().Zerolog()
	return NewService(floorsheet.New(log), stocks, brokers, uploads, notifier, log)
}

const sampleCSV = `SN,Contract No.,Symbol,Buyer,Seller,Quantity,Rate,Amount
1,2025063001018167,SGHC,52,56,220,391.00,"86,020.00"
2,2025063001018166,SGHC,44,52,100,392.00,"39,200.00"
`

func TestIngestCSV(t *testing.T) {
	stocks := &fakeStockRepo{}
	brokers := &fakeBrokerRepo{}
	uploads := &fakeUploadRepo{}
	notifier := &recordingNotifier{}
	svc := newTestService(stocks, brokers, uploads, notifier)

	result, err := svc.IngestCSV(context.Background(), "floorsheet.csv", strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.ValidTrades)
	assert.Len(t, stocks.saved, 1)
	assert.Len(t, brokers.saved, 3)

	require.Len(t, uploads.records, 1)
	assert.Equal(t, contracts.UploadSuccess, uploads.records[0].Status)
	assert.Equal(t, 2, uploads.records[0].TradesCount)
	assert.Equal(t, "floorsheet.csv", uploads.records[0].FileName)

	assert.Equal(t, StageDone, notifier.stages[len(notifier.stages)-1])
}

func TestIngestRowsEmptyBatch(t *testing.T) {
	uploads := &fakeUploadRepo{}
	svc := newTestService(&fakeStockRepo{}, &fakeBrokerRepo{}, uploads, nil)

	_, err := svc.IngestRows(context.Background(), "empty", nil)
	assert.ErrorIs(t, err, contracts.ErrNoRows)

	require.Len(t, uploads.records, 1)
	assert.Equal(t, contracts.UploadFailed, uploads.records[0].Status)
	assert.Equal(t, contracts.ErrNoRows.Error(), uploads.records[0].Error)
}

func TestIngestRowsAllInvalid(t *testing.T) {
	uploads := &fakeUploadRepo{}
	svc := newTestService(&fakeStockRepo{}, &fakeBrokerRepo{}, uploads, nil)

	rows := []contracts.RawRow{{"Symbol": "", "Quantity": "0"}}
	_, err := svc.IngestRows(context.Background(), "bad", rows)
	assert.ErrorIs(t, err, contracts.ErrNoValidTrades)
	assert.Equal(t, contracts.UploadFailed, uploads.records[0].Status)
}

func TestIngestRowsStorageFailure(t *testing.T) {
	stocks := &fakeStockRepo{err: errors.New("connection reset")}
	uploads := &fakeUploadRepo{}
	notifier := &recordingNotifier{}
	svc := newTestService(stocks, &fakeBrokerRepo{}, uploads, notifier)

	rows := []contracts.RawRow{
		{"SN": "1", "Symbol": "SGHC", "Buyer": "52", "Seller": "56", "Quantity": "220", "Rate": "391"},
	}
	_, err := svc.IngestRows(context.Background(), "batch", rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save stock summaries")
	assert.Equal(t, StageFailed, notifier.stages[len(notifier.stages)-1])
	assert.Equal(t, contracts.UploadFailed, uploads.records[0].Status)
}
