package floorsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/backend/internal/contracts"
)

func TestStockAggregator(t *testing.T) {
	trades := []contracts.NormalizedTrade{
		{Symbol: "SGHC", Date: "2025-06-30", Quantity: 220, Rate: 391, Amount: 86020},
		{Symbol: "SGHC", Date: "2025-06-30", Quantity: 100, Rate: 392, Amount: 39200},
		{Symbol: "NMIC", Date: "2025-06-30", Quantity: 50, Rate: 1000, Amount: 50000},
	}

	summaries := StockAggregator{}.Aggregate(trades)
	require.Len(t, summaries, 2)

	sghc := summaries[0]
	assert.Equal(t, "SGHC", sghc.Symbol)
	assert.Equal(t, "2025-06-30", sghc.Date)
	assert.Equal(t, 320.0, sghc.Volume)
	assert.Equal(t, 125220.0, sghc.TotalAmount)
	assert.Equal(t, 391.0, sghc.OpenPrice)
	assert.Equal(t, 392.0, sghc.ClosePrice)
	assert.Equal(t, 392.0, sghc.HighPrice)
	assert.Equal(t, 391.0, sghc.LowPrice)
	assert.Equal(t, sghc.ClosePrice, sghc.Rate, "rate mirrors close")
	assert.Equal(t, sghc.TotalAmount, sghc.Amount, "amount mirrors total")

	nmic := summaries[1]
	assert.Equal(t, "NMIC", nmic.Symbol)
	assert.Equal(t, 50.0, nmic.Volume)
	assert.Equal(t, 1000.0, nmic.OpenPrice)
	assert.Equal(t, 1000.0, nmic.LowPrice)
}

func TestStockAggregatorKeySplit(t *testing.T) {
	// Same symbol on two dates must not share a bucket.
	trades := []contracts.NormalizedTrade{
		{Symbol: "SGHC", Date: "2025-06-29", Quantity: 10, Rate: 380, Amount: 3800},
		{Symbol: "SGHC", Date: "2025-06-30", Quantity: 20, Rate: 391, Amount: 7820},
	}

	summaries := StockAggregator{}.Aggregate(trades)
	require.Len(t, summaries, 2)
	assert.Equal(t, 10.0, summaries[0].Volume)
	assert.Equal(t, 20.0, summaries[1].Volume)
}

func TestStockAggregatorNoPositiveRate(t *testing.T) {
	// Defensive path: validity filtering normally removes zero-rate
	// trades, but the low fallback must still hold if it ever runs on
	// unfiltered input.
	trades := []contracts.NormalizedTrade{
		{Symbol: "SGHC", Date: "2025-06-30", Quantity: 10, Rate: 0, Amount: 0},
	}

	summaries := StockAggregator{}.Aggregate(trades)
	require.Len(t, summaries, 1)
	assert.Equal(t, summaries[0].ClosePrice, summaries[0].LowPrice, "low falls back to close")
}

func TestStockAggregatorVolumeConservation(t *testing.T) {
	trades := []contracts.NormalizedTrade{
		{Symbol: "SGHC", Date: "2025-06-30", Quantity: 220, Rate: 391, Amount: 86020},
		{Symbol: "SGHC", Date: "2025-06-30", Quantity: 100, Rate: 392, Amount: 39200},
		{Symbol: "SGHC", Date: "2025-06-30", Quantity: 35, Rate: 390, Amount: 13650},
	}

	summaries := StockAggregator{}.Aggregate(trades)
	require.Len(t, summaries, 1)

	var want float64
	for _, tr := range trades {
		want += tr.Quantity
	}
	assert.Equal(t, want, summaries[0].Volume, "summary volume equals sum of trade quantities")
}
