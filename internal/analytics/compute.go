package analytics

import (
	"math"
	"sort"

	"github.com/floorsight/backend/internal/contracts"
)

// Mover is one entry in the top-movers board, ranked by traded amount.
// ChangePercent is the intraday open-to-close move; cross-day change needs a
// historical price source this service does not hold.
type Mover struct {
	Symbol        string  `json:"symbol"`
	Date          string  `json:"date"`
	ClosePrice    float64 `json:"close_price"`
	Volume        float64 `json:"volume"`
	TotalAmount   float64 `json:"total_amount"`
	ChangePercent float64 `json:"change_percent"`
}

// Sentiment summarizes market breadth for a set of daily summaries.
type Sentiment struct {
	Advancing int    `json:"advancing"`
	Declining int    `json:"declining"`
	Unchanged int    `json:"unchanged"`
	Label     string `json:"label"` // BULLISH, BEARISH or NEUTRAL
}

// ConcentrationEntry is one broker's slice of total absolute net flow.
type ConcentrationEntry struct {
	BrokerCode string  `json:"broker_code"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ComputeMovers ranks summaries by traded amount, largest first.
func ComputeMovers(summaries []*contracts.StockDailySummary, limit int) []Mover {
	sorted := make([]*contracts.StockDailySummary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalAmount > sorted[j].TotalAmount
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	movers := make([]Mover, 0, len(sorted))
	for _, s := range sorted {
		var change float64
		if s.OpenPrice > 0 {
			change = (s.ClosePrice - s.OpenPrice) / s.OpenPrice * 100
		}
		movers = append(movers, Mover{
			Symbol:        s.Symbol,
			Date:          s.Date,
			ClosePrice:    s.ClosePrice,
			Volume:        s.Volume,
			TotalAmount:   s.TotalAmount,
			ChangePercent: change,
		})
	}
	return movers
}

// ComputeSentiment counts advancing vs declining symbols. The label tips
// when one side holds more than 60% of the decided symbols.
func ComputeSentiment(summaries []*contracts.StockDailySummary) Sentiment {
	var s Sentiment
	for _, sum := range summaries {
		switch {
		case sum.ClosePrice > sum.OpenPrice:
			s.Advancing++
		case sum.ClosePrice < sum.OpenPrice:
			s.Declining++
		default:
			s.Unchanged++
		}
	}

	decided := s.Advancing + s.Declining
	switch {
	case decided == 0:
		s.Label = "NEUTRAL"
	case float64(s.Advancing)/float64(decided) > 0.6:
		s.Label = "BULLISH"
	case float64(s.Declining)/float64(decided) > 0.6:
		s.Label = "BEARISH"
	default:
		s.Label = "NEUTRAL"
	}
	return s
}

// ComputeConcentration ranks brokers by absolute net traded amount and
// returns the top entries with their share of the total.
func ComputeConcentration(positions []*contracts.BrokerPosition, top int) []ConcentrationEntry {
	totals := make(map[string]float64)
	var market float64
	for _, p := range positions {
		amount := math.Abs(p.NetAmount)
		totals[p.BrokerCode] += amount
		market += amount
	}

	entries := make([]ConcentrationEntry, 0, len(totals))
	for broker, amount := range totals {
		e := ConcentrationEntry{BrokerCode: broker, Amount: amount}
		if market > 0 {
			e.Percentage = amount / market * 100
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Amount != entries[j].Amount {
			return entries[i].Amount > entries[j].Amount
		}
		return entries[i].BrokerCode < entries[j].BrokerCode
	})

	if top > 0 && len(entries) > top {
		entries = entries[:top]
	}
	return entries
}
