package floorsheet

import (
	"math"

	"github.com/floorsight/backend/internal/contracts"
)

// StockAggregator folds valid trades into per-symbol daily summaries.
type StockAggregator struct{}

type stockKey struct {
	symbol string
	date   string
}

type stockBucket struct {
	volume      float64
	totalAmount float64
	high        float64
	low         float64
	open        float64
	close       float64
	opened      bool
}

// Aggregate groups trades by (symbol, date) in a single pass. Open is the
// rate of the first trade seen for the key, close the rate of the last, in
// input order. Low tracks the minimum positive rate; a key that never saw a
// positive rate gets its close as low at finalization. Summaries are emitted
// in first-seen key order.
func (StockAggregator) Aggregate(trades []contracts.NormalizedTrade) []*contracts.StockDailySummary {
	buckets := make(map[stockKey]*stockBucket)
	var order []stockKey

	for _, t := range trades {
		key := stockKey{symbol: t.Symbol, date: t.Date}
		b, ok := buckets[key]
		if !ok {
			b = &stockBucket{low: math.Inf(1)}
			buckets[key] = b
			order = append(order, key)
		}

		b.volume += t.Quantity
		b.totalAmount += t.Amount
		b.high = math.Max(b.high, t.Rate)
		if t.Rate > 0 {
			b.low = math.Min(b.low, t.Rate)
		}
		if !b.opened {
			b.open = t.Rate
			b.opened = true
		}
		b.close = t.Rate
	}

	summaries := make([]*contracts.StockDailySummary, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		if math.IsInf(b.low, 1) {
			b.low = b.close
		}
		summaries = append(summaries, &contracts.StockDailySummary{
			Symbol:      key.symbol,
			Date:        key.date,
			Volume:      b.volume,
			TotalAmount: b.totalAmount,
			OpenPrice:   b.open,
			ClosePrice:  b.close,
			HighPrice:   b.high,
			LowPrice:    b.low,
			// Mirrored for consumers expecting single-trade-shaped records.
			Rate:   b.close,
			Amount: b.totalAmount,
		})
	}
	return summaries
}
