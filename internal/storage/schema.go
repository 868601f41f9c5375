package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the DDL for the aggregate tables. Idempotent, applied at
// startup by commands that write.
const schema = `
CREATE SCHEMA IF NOT EXISTS market;

CREATE TABLE IF NOT EXISTS market.stock_daily (
	symbol        TEXT NOT NULL,
	trade_date    DATE NOT NULL,
	volume        DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_amount  DOUBLE PRECISION NOT NULL DEFAULT 0,
	open_price    DOUBLE PRECISION NOT NULL DEFAULT 0,
	close_price   DOUBLE PRECISION NOT NULL DEFAULT 0,
	high_price    DOUBLE PRECISION NOT NULL DEFAULT 0,
	low_price     DOUBLE PRECISION NOT NULL DEFAULT 0,
	PRIMARY KEY (symbol, trade_date)
);

CREATE TABLE IF NOT EXISTS market.broker_positions (
	broker_code         TEXT NOT NULL,
	symbol              TEXT NOT NULL,
	trade_date          DATE NOT NULL,
	total_buy_quantity  DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_sell_quantity DOUBLE PRECISION NOT NULL DEFAULT 0,
	net_quantity        DOUBLE PRECISION NOT NULL DEFAULT 0,
	buy_amount          DOUBLE PRECISION NOT NULL DEFAULT 0,
	sell_amount         DOUBLE PRECISION NOT NULL DEFAULT 0,
	net_amount          DOUBLE PRECISION NOT NULL DEFAULT 0,
	market_share        DOUBLE PRECISION NOT NULL DEFAULT 0,
	accumulation_score  DOUBLE PRECISION NOT NULL DEFAULT 0,
	activity_type       TEXT NOT NULL,
	alert_level         TEXT NOT NULL,
	PRIMARY KEY (broker_code, symbol, trade_date)
);

CREATE INDEX IF NOT EXISTS idx_broker_positions_alert
	ON market.broker_positions (alert_level, accumulation_score DESC);

CREATE TABLE IF NOT EXISTS market.uploads (
	id           BIGSERIAL PRIMARY KEY,
	file_name    TEXT NOT NULL,
	uploaded_at  TIMESTAMPTZ NOT NULL,
	trades_count INTEGER NOT NULL DEFAULT 0,
	status       TEXT NOT NULL,
	error        TEXT NOT NULL DEFAULT ''
);
`

// EnsureSchema creates the aggregate tables if they do not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
