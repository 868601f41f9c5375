package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/backend/internal/contracts"
)

func TestComputeMovers(t *testing.T) {
	summaries := []*contracts.StockDailySummary{
		{Symbol: "SGHC", Date: "2025-06-30", OpenPrice: 391, ClosePrice: 392, TotalAmount: 125220, Volume: 320},
		{Symbol: "NMIC", Date: "2025-06-30", OpenPrice: 1000, ClosePrice: 980, TotalAmount: 500000, Volume: 510},
		{Symbol: "NABIL", Date: "2025-06-30", OpenPrice: 500, ClosePrice: 500, TotalAmount: 90000, Volume: 180},
	}

	movers := ComputeMovers(summaries, 2)
	require.Len(t, movers, 2)

	assert.Equal(t, "NMIC", movers[0].Symbol, "largest traded amount first")
	assert.InDelta(t, -2.0, movers[0].ChangePercent, 1e-9)
	assert.Equal(t, "SGHC", movers[1].Symbol)
}

func TestComputeSentiment(t *testing.T) {
	tests := []struct {
		name      string
		summaries []*contracts.StockDailySummary
		want      string
	}{
		{
			name: "bullish",
			summaries: []*contracts.StockDailySummary{
				{OpenPrice: 100, ClosePrice: 110},
				{OpenPrice: 100, ClosePrice: 105},
				{OpenPrice: 100, ClosePrice: 101},
				{OpenPrice: 100, ClosePrice: 90},
			},
			want: "BULLISH",
		},
		{
			name: "bearish",
			summaries: []*contracts.StockDailySummary{
				{OpenPrice: 100, ClosePrice: 90},
				{OpenPrice: 100, ClosePrice: 95},
				{OpenPrice: 100, ClosePrice: 99},
				{OpenPrice: 100, ClosePrice: 120},
			},
			want: "BEARISH",
		},
		{
			name: "balanced",
			summaries: []*contracts.StockDailySummary{
				{OpenPrice: 100, ClosePrice: 110},
				{OpenPrice: 100, ClosePrice: 90},
			},
			want: "NEUTRAL",
		},
		{
			name:      "empty",
			summaries: nil,
			want:      "NEUTRAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSentiment(tt.summaries)
			assert.Equal(t, tt.want, got.Label)
		})
	}
}

func TestComputeConcentration(t *testing.T) {
	positions := []*contracts.BrokerPosition{
		{BrokerCode: "52", NetAmount: 600000},
		{BrokerCode: "52", NetAmount: -200000},
		{BrokerCode: "56", NetAmount: -100000},
		{BrokerCode: "44", NetAmount: 100000},
	}

	entries := ComputeConcentration(positions, 2)
	require.Len(t, entries, 2)

	assert.Equal(t, "52", entries[0].BrokerCode)
	assert.Equal(t, 800000.0, entries[0].Amount, "net amounts accumulate by absolute value")
	assert.InDelta(t, 80.0, entries[0].Percentage, 1e-9)

	var total float64
	for _, e := range ComputeConcentration(positions, 0) {
		total += e.Percentage
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}
