package floorsheet

import (
	"github.com/rs/zerolog"

	"github.com/floorsight/backend/internal/contracts"
)

// Result carries everything one pipeline invocation produced. The
// collections are built fresh per invocation and never mutated afterwards.
type Result struct {
	Trades    []contracts.NormalizedTrade
	Stocks    []*contracts.StockDailySummary
	Positions []*contracts.BrokerPosition
	Stats     contracts.BatchStats
}

// Pipeline is the floor-sheet transformation: normalize → validate → both
// aggregations. It is synchronous, stateless across invocations and holds no
// locks; any failure aborts the whole batch with no partial output.
type Pipeline struct {
	normalizer *Normalizer
	stocks     StockAggregator
	brokers    *BrokerAggregator
	log        zerolog.Logger
}

// New creates a pipeline with production defaults.
func New(log zerolog.Logger) *Pipeline {
	return NewWith(NewNormalizer(), NewBrokerAggregator(), log)
}

// NewWith creates a pipeline with explicit collaborators, used by tests to
// pin the contract-number discriminator and the share calculator.
func NewWith(normalizer *Normalizer, brokers *BrokerAggregator, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		normalizer: normalizer,
		brokers:    brokers,
		log:        log.With().Str("component", "floorsheet.pipeline").Logger(),
	}
}

// Process runs one batch. It fails with contracts.ErrNoRows when the input
// is empty and contracts.ErrNoValidTrades when every row fails the validity
// predicate; otherwise it returns the two aggregate views over the same
// valid-trade set.
func (p *Pipeline) Process(rows []contracts.RawRow) (*Result, error) {
	if len(rows) == 0 {
		return nil, contracts.ErrNoRows
	}

	trades := p.normalizer.NormalizeAll(rows)

	valid := make([]contracts.NormalizedTrade, 0, len(trades))
	for _, t := range trades {
		if t.Valid() {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		return nil, contracts.ErrNoValidTrades
	}

	result := &Result{
		Trades:    valid,
		Stocks:    p.stocks.Aggregate(valid),
		Positions: p.brokers.Aggregate(valid),
		Stats:     batchStats(len(rows), valid),
	}

	p.log.Info().
		Int("rows_read", result.Stats.RowsRead).
		Int("valid_trades", result.Stats.ValidTrades).
		Int("symbols", result.Stats.UniqueSymbols).
		Int("brokers", result.Stats.UniqueBrokers).
		Float64("total_value", result.Stats.TotalValue).
		Msg("floor-sheet batch processed")

	return result, nil
}

func batchStats(rowsRead int, valid []contracts.NormalizedTrade) contracts.BatchStats {
	symbols := make(map[string]struct{})
	brokers := make(map[string]struct{})
	stats := contracts.BatchStats{
		RowsRead:    rowsRead,
		ValidTrades: len(valid),
	}

	for _, t := range valid {
		symbols[t.Symbol] = struct{}{}
		brokers[t.Buyer] = struct{}{}
		brokers[t.Seller] = struct{}{}
		stats.TotalVolume += t.Quantity
		stats.TotalValue += t.Amount
	}

	stats.UniqueSymbols = len(symbols)
	stats.UniqueBrokers = len(brokers)
	return stats
}
