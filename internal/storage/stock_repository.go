package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/floorsight/backend/internal/contracts"
)

// saveChunkSize is how many records are created concurrently per chunk;
// chunks themselves run sequentially.
const saveChunkSize = 10

// StockRepository implements contracts.StockRepository on PostgreSQL.
type StockRepository struct {
	pool *pgxpool.Pool
}

// NewStockRepository creates a new stock summary repository.
func NewStockRepository(pool *pgxpool.Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// Save upserts a single daily summary.
func (r *StockRepository) Save(ctx context.Context, s *contracts.StockDailySummary) error {
	query := `
		INSERT INTO market.stock_daily
			(symbol, trade_date, volume, total_amount, open_price, close_price, high_price, low_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (symbol, trade_date) DO UPDATE SET
			volume = EXCLUDED.volume,
			total_amount = EXCLUDED.total_amount,
			open_price = EXCLUDED.open_price,
			close_price = EXCLUDED.close_price,
			high_price = EXCLUDED.high_price,
			low_price = EXCLUDED.low_price
	`

	_, err := r.pool.Exec(ctx, query,
		s.Symbol, s.Date, s.Volume, s.TotalAmount, s.OpenPrice, s.ClosePrice, s.HighPrice, s.LowPrice,
	)
	if err != nil {
		return fmt.Errorf("save stock summary %s/%s: %w", s.Symbol, s.Date, err)
	}
	return nil
}

// SaveBatch writes summaries in chunks of saveChunkSize concurrent creations
// per chunk, chunks processed sequentially. A failure aborts at the current
// chunk boundary; the in-memory summaries are never touched.
func (r *StockRepository) SaveBatch(ctx context.Context, summaries []*contracts.StockDailySummary) error {
	for start := 0; start < len(summaries); start += saveChunkSize {
		end := start + saveChunkSize
		if end > len(summaries) {
			end = len(summaries)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, s := range summaries[start:end] {
			g.Go(func() error { return r.Save(gctx, s) })
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("save stock batch: %w", err)
		}
	}
	return nil
}

// ListByDate retrieves all summaries for a trade date.
func (r *StockRepository) ListByDate(ctx context.Context, date string) ([]*contracts.StockDailySummary, error) {
	query := `
		SELECT symbol, trade_date, volume, total_amount, open_price, close_price, high_price, low_price
		FROM market.stock_daily
		WHERE trade_date = $1
		ORDER BY symbol ASC
	`

	rows, err := r.pool.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("query stock summaries: %w", err)
	}
	defer rows.Close()

	return scanStockRows(rows)
}

// ListRecent retrieves the most recent summaries, newest first.
func (r *StockRepository) ListRecent(ctx context.Context, limit int) ([]*contracts.StockDailySummary, error) {
	query := `
		SELECT symbol, trade_date, volume, total_amount, open_price, close_price, high_price, low_price
		FROM market.stock_daily
		ORDER BY trade_date DESC, symbol ASC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent stock summaries: %w", err)
	}
	defer rows.Close()

	return scanStockRows(rows)
}

func scanStockRows(rows pgx.Rows) ([]*contracts.StockDailySummary, error) {
	var summaries []*contracts.StockDailySummary
	for rows.Next() {
		var s contracts.StockDailySummary
		var tradeDate time.Time
		if err := rows.Scan(&s.Symbol, &tradeDate, &s.Volume, &s.TotalAmount,
			&s.OpenPrice, &s.ClosePrice, &s.HighPrice, &s.LowPrice); err != nil {
			return nil, fmt.Errorf("scan stock summary: %w", err)
		}
		s.Date = tradeDate.Format("2006-01-02")
		s.Rate = s.ClosePrice
		s.Amount = s.TotalAmount
		summaries = append(summaries, &s)
	}
	return summaries, rows.Err()
}
