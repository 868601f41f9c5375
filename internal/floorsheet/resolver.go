package floorsheet

import (
	"strings"

	"github.com/floorsight/backend/internal/contracts"
)

// Field alias tables for NEPSE floor-sheet exports. Column names differ
// between the exchange portal export, broker terminal dumps and hand-edited
// sheets; candidates are ordered most-preferred first.
var (
	serialAliases   = []string{"SN", "sn", "S.N.", "Serial"}
	contractAliases = []string{"ContractNo", "Contract No", "contract_no", "Contract_No", "contractno"}
	symbolAliases   = []string{"Symbol", "symbol", "SYMBOL", "Stock", "stock"}
	buyerAliases    = []string{"Buyer", "buyer", "BUYER", "Buyer Broker", "buyer_broker", "BuyerBroker"}
	sellerAliases   = []string{"Seller", "seller", "SELLER", "Seller Broker", "seller_broker", "SellerBroker"}
	quantityAliases = []string{"Quantity", "quantity", "QUANTITY", "Qty", "qty", "QTY"}
	rateAliases     = []string{"Rate", "rate", "RATE", "Price", "price", "PRICE"}
	amountAliases   = []string{"Amount", "amount", "AMOUNT", "Total Amount", "total_amount", "TotalAmount"}
	dateAliases     = []string{"Date", "date", "DATE", "Trade Date", "trade_date", "TradeDate"}
)

// Resolve returns the first non-empty value for any of the candidate column
// names, most-preferred first. Each candidate is tried as an exact key first,
// then against every row key under case-insensitive, punctuation-stripped
// comparison, so a header like "BUYER BROKER" still resolves to buyer.
// Returns (nil, false) when nothing matches.
func Resolve(row contracts.RawRow, candidates []string) (any, bool) {
	for _, name := range candidates {
		if v, ok := row[name]; ok && present(v) {
			return v, true
		}

		want := normalizeKey(name)
		for key, v := range row {
			if normalizeKey(key) == want && present(v) {
				return v, true
			}
		}
	}
	return nil, false
}

// present reports whether a raw cell carries a value. Nil and empty strings
// are treated as absent; numeric zero is a value.
func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return s != ""
	}
	return true
}

// normalizeKey lowercases a column name and strips everything outside
// [a-z0-9] so "Contract No", "contract_no" and "CONTRACTNO" compare equal.
func normalizeKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range strings.ToLower(key) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
