package contracts

// StockDailySummary is the per-symbol daily aggregate built from one
// floor-sheet batch. Unique per (symbol, date) within a batch.
//
// Rate and Amount mirror ClosePrice and TotalAmount so downstream consumers
// that expect single-trade-shaped records keep working.
type StockDailySummary struct {
	Symbol      string  `json:"symbol"`
	Date        string  `json:"date"`
	Volume      float64 `json:"volume"`
	TotalAmount float64 `json:"total_amount"`
	OpenPrice   float64 `json:"open_price"`
	ClosePrice  float64 `json:"close_price"`
	HighPrice   float64 `json:"high_price"`
	LowPrice    float64 `json:"low_price"`
	Rate        float64 `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Advancing reports whether the symbol closed above its open for the day.
func (s *StockDailySummary) Advancing() bool {
	return s.ClosePrice > s.OpenPrice
}
