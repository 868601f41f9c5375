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

const brokerColumns = `broker_code, symbol, trade_date, total_buy_quantity, total_sell_quantity,
	net_quantity, buy_amount, sell_amount, net_amount, market_share,
	accumulation_score, activity_type, alert_level`

// BrokerRepository implements contracts.BrokerRepository on PostgreSQL.
type BrokerRepository struct {
	pool *pgxpool.Pool
}

// NewBrokerRepository creates a new broker position repository.
func NewBrokerRepository(pool *pgxpool.Pool) *BrokerRepository {
	return &BrokerRepository{pool: pool}
}

// Save upserts a single broker position.
func (r *BrokerRepository) Save(ctx context.Context, p *contracts.BrokerPosition) error {
	query := `
		INSERT INTO market.broker_positions
			(broker_code, symbol, trade_date, total_buy_quantity, total_sell_quantity,
			 net_quantity, buy_amount, sell_amount, net_amount, market_share,
			 accumulation_score, activity_type, alert_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (broker_code, symbol, trade_date) DO UPDATE SET
			total_buy_quantity = EXCLUDED.total_buy_quantity,
			total_sell_quantity = EXCLUDED.total_sell_quantity,
			net_quantity = EXCLUDED.net_quantity,
			buy_amount = EXCLUDED.buy_amount,
			sell_amount = EXCLUDED.sell_amount,
			net_amount = EXCLUDED.net_amount,
			market_share = EXCLUDED.market_share,
			accumulation_score = EXCLUDED.accumulation_score,
			activity_type = EXCLUDED.activity_type,
			alert_level = EXCLUDED.alert_level
	`

	_, err := r.pool.Exec(ctx, query,
		p.BrokerCode, p.Symbol, p.Date, p.TotalBuyQuantity, p.TotalSellQuantity,
		p.NetQuantity, p.BuyAmount, p.SellAmount, p.NetAmount, p.MarketShare,
		p.AccumulationScore, string(p.ActivityType), string(p.AlertLevel),
	)
	if err != nil {
		return fmt.Errorf("save broker position %s/%s/%s: %w", p.BrokerCode, p.Symbol, p.Date, err)
	}
	return nil
}

// SaveBatch writes positions in sequential chunks of concurrent creations,
// same contract as StockRepository.SaveBatch.
func (r *BrokerRepository) SaveBatch(ctx context.Context, positions []*contracts.BrokerPosition) error {
	for start := 0; start < len(positions); start += saveChunkSize {
		end := start + saveChunkSize
		if end > len(positions) {
			end = len(positions)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, p := range positions[start:end] {
			g.Go(func() error { return r.Save(gctx, p) })
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("save broker batch: %w", err)
		}
	}
	return nil
}

// ListByBroker retrieves the most recent positions for one broker.
func (r *BrokerRepository) ListByBroker(ctx context.Context, brokerCode string, limit int) ([]*contracts.BrokerPosition, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM market.broker_positions
		WHERE broker_code = $1
		ORDER BY trade_date DESC, symbol ASC
		LIMIT $2
	`, brokerColumns)

	rows, err := r.pool.Query(ctx, query, brokerCode, limit)
	if err != nil {
		return nil, fmt.Errorf("query broker positions: %w", err)
	}
	defer rows.Close()

	return scanBrokerRows(rows)
}

// ListRecent retrieves the most recent positions across all brokers.
func (r *BrokerRepository) ListRecent(ctx context.Context, limit int) ([]*contracts.BrokerPosition, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM market.broker_positions
		ORDER BY trade_date DESC, broker_code ASC, symbol ASC
		LIMIT $1
	`, brokerColumns)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent broker positions: %w", err)
	}
	defer rows.Close()

	return scanBrokerRows(rows)
}

// ListAlerts retrieves positions at the given alert level, strongest
// accumulation first.
func (r *BrokerRepository) ListAlerts(ctx context.Context, level contracts.AlertLevel, limit int) ([]*contracts.BrokerPosition, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM market.broker_positions
		WHERE alert_level = $1
		ORDER BY accumulation_score DESC, trade_date DESC
		LIMIT $2
	`, brokerColumns)

	rows, err := r.pool.Query(ctx, query, string(level), limit)
	if err != nil {
		return nil, fmt.Errorf("query broker alerts: %w", err)
	}
	defer rows.Close()

	return scanBrokerRows(rows)
}

func scanBrokerRows(rows pgx.Rows) ([]*contracts.BrokerPosition, error) {
	var positions []*contracts.BrokerPosition
	for rows.Next() {
		var p contracts.BrokerPosition
		var tradeDate time.Time
		var activityType, alertLevel string
		if err := rows.Scan(&p.BrokerCode, &p.Symbol, &tradeDate,
			&p.TotalBuyQuantity, &p.TotalSellQuantity, &p.NetQuantity,
			&p.BuyAmount, &p.SellAmount, &p.NetAmount, &p.MarketShare,
			&p.AccumulationScore, &activityType, &alertLevel); err != nil {
			return nil, fmt.Errorf("scan broker position: %w", err)
		}
		p.Date = tradeDate.Format("2006-01-02")
		p.ActivityType = contracts.ActivityType(activityType)
		p.AlertLevel = contracts.AlertLevel(alertLevel)
		positions = append(positions, &p)
	}
	return positions, rows.Err()
}
