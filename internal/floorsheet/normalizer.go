package floorsheet

import (
	"fmt"
	"strings"
	"time"

	"github.com/floorsight/backend/internal/contracts"
)

// Normalizer turns raw floor-sheet rows into canonical trades. The two
// non-deterministic inputs — the discriminator for synthesized contract
// numbers and the fallback processing date — are injected so normalization
// is reproducible in tests.
type Normalizer struct {
	seq func() int64
	now func() time.Time
}

// NewNormalizer creates a production normalizer: synthesized contract
// numbers carry a batch-start unix-milli discriminator, and rows without a
// date get the current processing date.
func NewNormalizer() *Normalizer {
	return NewNormalizerWith(
		func() int64 { return time.Now().UnixMilli() },
		time.Now,
	)
}

// NewNormalizerWith creates a normalizer with an explicit discriminator
// sequence and clock.
func NewNormalizerWith(seq func() int64, now func() time.Time) *Normalizer {
	return &Normalizer{seq: seq, now: now}
}

// NormalizeAll produces one canonical trade per input row, in input order.
// Rows are never dropped here; validity filtering happens afterwards.
func (n *Normalizer) NormalizeAll(rows []contracts.RawRow) []contracts.NormalizedTrade {
	// One discriminator per batch; the row index keeps synthesized
	// contract numbers unique within it.
	disc := n.seq()
	today := n.now().Format("2006-01-02")

	trades := make([]contracts.NormalizedTrade, 0, len(rows))
	for i, row := range rows {
		trades = append(trades, n.normalizeRow(row, i, disc, today))
	}
	return trades
}

func (n *Normalizer) normalizeRow(row contracts.RawRow, index int, disc int64, today string) contracts.NormalizedTrade {
	serial, _ := Resolve(row, serialAliases)
	contractNo, _ := Resolve(row, contractAliases)
	symbol, _ := Resolve(row, symbolAliases)
	buyer, _ := Resolve(row, buyerAliases)
	seller, _ := Resolve(row, sellerAliases)
	quantity, _ := Resolve(row, quantityAliases)
	rate, _ := Resolve(row, rateAliases)
	amount, _ := Resolve(row, amountAliases)
	date, _ := Resolve(row, dateAliases)

	cleanedQuantity := CleanNumber(quantity)
	cleanedRate := CleanNumber(rate)
	cleanedAmount := CleanNumber(amount)
	if cleanedAmount == 0 {
		cleanedAmount = cleanedQuantity * cleanedRate
	}

	sn := int(CleanNumber(serial))
	if sn == 0 {
		sn = index + 1
	}

	return contracts.NormalizedTrade{
		SN:         sn,
		ContractNo: contractNumber(contractNo, disc, index),
		Symbol:     strings.ToUpper(strings.TrimSpace(coerceString(symbol))),
		Buyer:      strings.TrimSpace(coerceString(buyer)),
		Seller:     strings.TrimSpace(coerceString(seller)),
		Quantity:   cleanedQuantity,
		Rate:       cleanedRate,
		Amount:     cleanedAmount,
		Date:       tradeDate(date, today),
	}
}

// contractNumber returns the resolved contract number as a string, or a
// synthesized AUTO-<discriminator>-<index> identifier unique within the batch.
func contractNumber(v any, disc int64, index int) string {
	if s := strings.TrimSpace(coerceString(v)); s != "" {
		return s
	}
	return fmt.Sprintf("AUTO-%d-%d", disc, index)
}

// tradeDate truncates a resolved date to its date portion, dropping any
// time-of-day component, or falls back to the processing date.
func tradeDate(v any, today string) string {
	s := strings.TrimSpace(coerceString(v))
	if s == "" {
		return today
	}
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	return s
}

// coerceString renders a raw cell as a string. Numeric cells come out of
// JSON extraction as float64; integral values must not pick up a ".0"
// suffix (broker codes are numeric in NEPSE exports).
func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
