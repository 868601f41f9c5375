package contracts

import "math"

// ActivityType classifies a broker's net daily behavior in a symbol.
type ActivityType string

const (
	ActivityAccumulating ActivityType = "ACCUMULATING"
	ActivityDistributing ActivityType = "DISTRIBUTING"
	ActivityNeutral      ActivityType = "NEUTRAL"
)

// AlertLevel is the attention tier derived from the magnitude of a broker's
// net traded amount. Three tiers only; the thresholds are exclusive lower
// bounds in the same currency unit as Amount.
type AlertLevel string

const (
	AlertLow    AlertLevel = "LOW"
	AlertMedium AlertLevel = "MEDIUM"
	AlertHigh   AlertLevel = "HIGH"
)

// Alert-level thresholds on |net_amount|.
const (
	AlertHighThreshold   = 1_000_000.0
	AlertMediumThreshold = 500_000.0
)

// AlertLevelFor returns the alert tier for a net traded amount.
func AlertLevelFor(netAmount float64) AlertLevel {
	abs := math.Abs(netAmount)
	switch {
	case abs > AlertHighThreshold:
		return AlertHigh
	case abs > AlertMediumThreshold:
		return AlertMedium
	default:
		return AlertLow
	}
}

// BrokerPosition is the per-broker per-symbol daily net position built from
// both sides of every trade. Unique per (broker_code, symbol, date) within a
// batch; a broker that both buys and sells the same symbol on the same day
// accumulates into one record.
type BrokerPosition struct {
	BrokerCode        string       `json:"broker_code"`
	Symbol            string       `json:"symbol"`
	Date              string       `json:"date"`
	TotalBuyQuantity  float64      `json:"total_buy_quantity"`
	TotalSellQuantity float64      `json:"total_sell_quantity"`
	NetQuantity       float64      `json:"net_quantity"`
	BuyAmount         float64      `json:"buy_amount"`
	SellAmount        float64      `json:"sell_amount"`
	NetAmount         float64      `json:"net_amount"`
	MarketShare       float64      `json:"market_share"`
	AccumulationScore float64      `json:"accumulation_score"`
	ActivityType      ActivityType `json:"activity_type"`
	AlertLevel        AlertLevel   `json:"alert_level"`
}
