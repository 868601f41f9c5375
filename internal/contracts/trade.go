package contracts

// RawRow is one floor-sheet row as extracted upstream: arbitrary string keys
// mapped to whatever scalar the export produced. Column names vary by source
// (NEPSE portal export, broker terminal dump, hand-edited sheets), so no
// schema is assumed here.
type RawRow map[string]any

// NormalizedTrade is one floor-sheet contract after field resolution and
// numeric cleaning. Quantity, Rate and Amount are cleaned floats; Symbol is
// upper-cased and trimmed; Date is an ISO date (yyyy-mm-dd) with any
// time-of-day component dropped.
type NormalizedTrade struct {
	SN         int     `json:"sn"`
	ContractNo string  `json:"contract_no"`
	Symbol     string  `json:"symbol"`
	Buyer      string  `json:"buyer"`
	Seller     string  `json:"seller"`
	Quantity   float64 `json:"quantity"`
	Rate       float64 `json:"rate"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
}

// Valid reports whether the trade is structurally usable for aggregation.
// Trades failing this predicate are dropped from the batch but still count
// toward rows read.
func (t *NormalizedTrade) Valid() bool {
	return t.Symbol != "" &&
		t.Rate > 0 &&
		t.Quantity > 0 &&
		t.Buyer != "" &&
		t.Seller != ""
}

// BatchStats summarizes one processed floor-sheet batch.
type BatchStats struct {
	RowsRead      int     `json:"rows_read"`
	ValidTrades   int     `json:"valid_trades"`
	UniqueSymbols int     `json:"unique_symbols"`
	UniqueBrokers int     `json:"unique_brokers"`
	TotalVolume   float64 `json:"total_volume"`
	TotalValue    float64 `json:"total_value"`
}
