package floorsheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/backend/internal/contracts"
)

func TestBrokerAggregator(t *testing.T) {
	trades := []contracts.NormalizedTrade{
		{Symbol: "SGHC", Date: "2025-06-30", Buyer: "52", Seller: "56", Quantity: 220, Rate: 391, Amount: 86020},
		{Symbol: "SGHC", Date: "2025-06-30", Buyer: "56", Seller: "52", Quantity: 100, Rate: 392, Amount: 39200},
	}

	positions := NewBrokerAggregator().Aggregate(trades)
	require.Len(t, positions, 2)

	byBroker := make(map[string]*contracts.BrokerPosition)
	for _, p := range positions {
		byBroker[p.BrokerCode] = p
	}

	p52 := byBroker["52"]
	require.NotNil(t, p52)
	assert.Equal(t, 220.0, p52.TotalBuyQuantity)
	assert.Equal(t, 100.0, p52.TotalSellQuantity)
	assert.Equal(t, 120.0, p52.NetQuantity)
	assert.Equal(t, 86020.0, p52.BuyAmount)
	assert.Equal(t, 39200.0, p52.SellAmount)
	assert.Equal(t, 46820.0, p52.NetAmount)
	assert.Equal(t, contracts.ActivityAccumulating, p52.ActivityType)
	assert.Equal(t, contracts.AlertLow, p52.AlertLevel)

	p56 := byBroker["56"]
	require.NotNil(t, p56)
	assert.Equal(t, -120.0, p56.NetQuantity)
	assert.Equal(t, -46820.0, p56.NetAmount)
	assert.Equal(t, contracts.ActivityDistributing, p56.ActivityType)
	assert.Equal(t, contracts.AlertLow, p56.AlertLevel)

	// Net quantities and amounts across a closed set of brokers cancel out.
	assert.Equal(t, 0.0, p52.NetQuantity+p56.NetQuantity)
	assert.Equal(t, 0.0, p52.NetAmount+p56.NetAmount)
}

func TestBrokerAggregatorBothSidesOneRecord(t *testing.T) {
	// A broker crossing its own trade lands in a single record.
	trades := []contracts.NormalizedTrade{
		{Symbol: "SGHC", Date: "2025-06-30", Buyer: "52", Seller: "52", Quantity: 100, Rate: 392, Amount: 39200},
	}

	positions := NewBrokerAggregator().Aggregate(trades)
	require.Len(t, positions, 1)

	p := positions[0]
	assert.Equal(t, 100.0, p.TotalBuyQuantity)
	assert.Equal(t, 100.0, p.TotalSellQuantity)
	assert.Equal(t, 0.0, p.NetQuantity)
	assert.Equal(t, contracts.ActivityNeutral, p.ActivityType)
	assert.Equal(t, 100.0, p.MarketShare, "sole broker holds the whole turnover")
}

func TestBrokerAggregatorAccumulationScoreBounds(t *testing.T) {
	tests := []struct {
		name   string
		trades []contracts.NormalizedTrade
	}{
		{
			name: "one sided",
			trades: []contracts.NormalizedTrade{
				{Symbol: "A", Date: "2025-06-30", Buyer: "1", Seller: "2", Quantity: 1e9, Rate: 1, Amount: 1e9},
			},
		},
		{
			name: "balanced",
			trades: []contracts.NormalizedTrade{
				{Symbol: "A", Date: "2025-06-30", Buyer: "1", Seller: "1", Quantity: 500, Rate: 10, Amount: 5000},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, p := range NewBrokerAggregator().Aggregate(tt.trades) {
				assert.GreaterOrEqual(t, p.AccumulationScore, 0.0)
				assert.Less(t, p.AccumulationScore, 10.0)
			}
		})
	}
}

func TestBrokerAggregatorMarketShareSumsTo100(t *testing.T) {
	trades := []contracts.NormalizedTrade{
		{Symbol: "SGHC", Date: "2025-06-30", Buyer: "52", Seller: "56", Quantity: 220, Rate: 391, Amount: 86020},
		{Symbol: "SGHC", Date: "2025-06-30", Buyer: "44", Seller: "52", Quantity: 100, Rate: 392, Amount: 39200},
		{Symbol: "SGHC", Date: "2025-06-30", Buyer: "56", Seller: "44", Quantity: 35, Rate: 390, Amount: 13650},
	}

	var sum float64
	for _, p := range NewBrokerAggregator().Aggregate(trades) {
		sum += p.MarketShare
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestBrokerAggregatorInjectedShare(t *testing.T) {
	trades := []contracts.NormalizedTrade{
		{Symbol: "SGHC", Date: "2025-06-30", Buyer: "52", Seller: "56", Quantity: 10, Rate: 100, Amount: 1000},
	}

	fixed := shareFunc(func(*contracts.BrokerPosition, float64) float64 { return 7.5 })
	for _, p := range NewBrokerAggregatorWith(fixed).Aggregate(trades) {
		assert.Equal(t, 7.5, p.MarketShare)
	}
}

type shareFunc func(*contracts.BrokerPosition, float64) float64

func (f shareFunc) Share(p *contracts.BrokerPosition, turnover float64) float64 {
	return f(p, turnover)
}

func TestAlertLevelBoundaries(t *testing.T) {
	tests := []struct {
		netAmount float64
		want      contracts.AlertLevel
	}{
		{netAmount: 0, want: contracts.AlertLow},
		{netAmount: 500_000, want: contracts.AlertLow},
		{netAmount: 500_000.01, want: contracts.AlertMedium},
		{netAmount: 1_000_000, want: contracts.AlertMedium},
		{netAmount: 1_000_000.01, want: contracts.AlertHigh},
		{netAmount: -500_000.01, want: contracts.AlertMedium},
		{netAmount: -2_000_000, want: contracts.AlertHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, contracts.AlertLevelFor(tt.netAmount), "net_amount=%v", tt.netAmount)
	}
}
