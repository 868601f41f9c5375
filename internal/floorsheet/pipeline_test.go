package floorsheet

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorsight/backend/internal/contracts"
)

func testPipeline() *Pipeline {
	return NewWith(testNormalizer(), NewBrokerAggregator(), zerolog.Nop())
}

func TestPipelineProcess(t *testing.T) {
	rows := []contracts.RawRow{
		{"Symbol": "SGHC", "Buyer": "52", "Seller": "56", "Quantity": "220", "Rate": "391", "Amount": "86,020", "Date": "2025-06-30"},
		{"Symbol": "SGHC", "Buyer": "56", "Seller": "52", "Quantity": "100", "Rate": "392", "Amount": "39,200", "Date": "2025-06-30"},
	}

	result, err := testPipeline().Process(rows)
	require.NoError(t, err)

	require.Len(t, result.Stocks, 1)
	stock := result.Stocks[0]
	assert.Equal(t, "SGHC", stock.Symbol)
	assert.Equal(t, "2025-06-30", stock.Date)
	assert.Equal(t, 320.0, stock.Volume)
	assert.Equal(t, 125220.0, stock.TotalAmount)
	assert.Equal(t, 391.0, stock.OpenPrice)
	assert.Equal(t, 392.0, stock.ClosePrice)
	assert.Equal(t, 392.0, stock.HighPrice)
	assert.Equal(t, 391.0, stock.LowPrice)

	require.Len(t, result.Positions, 2)
	var p52 *contracts.BrokerPosition
	for _, p := range result.Positions {
		if p.BrokerCode == "52" {
			p52 = p
		}
	}
	require.NotNil(t, p52)
	assert.Equal(t, 220.0, p52.TotalBuyQuantity)
	assert.Equal(t, 100.0, p52.TotalSellQuantity)
	assert.Equal(t, 120.0, p52.NetQuantity)
	assert.Equal(t, 46820.0, p52.NetAmount)
	assert.Equal(t, contracts.ActivityAccumulating, p52.ActivityType)
	assert.Equal(t, contracts.AlertLow, p52.AlertLevel)

	assert.Equal(t, 2, result.Stats.RowsRead)
	assert.Equal(t, 2, result.Stats.ValidTrades)
	assert.Equal(t, 1, result.Stats.UniqueSymbols)
	assert.Equal(t, 2, result.Stats.UniqueBrokers)
	assert.Equal(t, 320.0, result.Stats.TotalVolume)
	assert.Equal(t, 125220.0, result.Stats.TotalValue)
}

func TestPipelineProcessNoRows(t *testing.T) {
	_, err := testPipeline().Process(nil)
	assert.ErrorIs(t, err, contracts.ErrNoRows)

	_, err = testPipeline().Process([]contracts.RawRow{})
	assert.ErrorIs(t, err, contracts.ErrNoRows)
}

func TestPipelineProcessNoValidTrades(t *testing.T) {
	rows := []contracts.RawRow{
		{"Symbol": "SGHC", "Seller": "56", "Quantity": "220", "Rate": "391"},   // no buyer
		{"Symbol": "SGHC", "Buyer": "52", "Seller": "56", "Quantity": "220"},   // no rate
		{"Buyer": "52", "Seller": "56", "Quantity": "220", "Rate": "391"},      // no symbol
		{"Symbol": "SGHC", "Buyer": "52", "Seller": "56", "Rate": "391"},       // no quantity
	}

	_, err := testPipeline().Process(rows)
	assert.ErrorIs(t, err, contracts.ErrNoValidTrades)
}

func TestPipelineProcessDropsInvalidRows(t *testing.T) {
	rows := []contracts.RawRow{
		{"Symbol": "SGHC", "Buyer": "52", "Seller": "56", "Quantity": "220", "Rate": "391", "Amount": "86,020", "Date": "2025-06-30"},
		// Invalid rows must not leak into either aggregation.
		{"Symbol": "SGHC", "Seller": "56", "Quantity": "999", "Rate": "391", "Date": "2025-06-30"},
		{"Symbol": "SGHC", "Buyer": "52", "Seller": "56", "Quantity": "999", "Rate": "0", "Date": "2025-06-30"},
	}

	result, err := testPipeline().Process(rows)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Stats.RowsRead, "dropped rows still count as read")
	assert.Equal(t, 1, result.Stats.ValidTrades)

	require.Len(t, result.Stocks, 1)
	assert.Equal(t, 220.0, result.Stocks[0].Volume)

	for _, p := range result.Positions {
		assert.NotEqual(t, 999.0, p.TotalBuyQuantity)
		assert.NotEqual(t, 999.0, p.TotalSellQuantity)
	}
}

func TestPipelineProcessMessyHeaders(t *testing.T) {
	// Headers as they come from hand-edited exports: odd case, spaces,
	// punctuation, comma-grouped numerics.
	rows := []contracts.RawRow{
		{
			"S.N.":          "1",
			"CONTRACT NO":   "2025063001018167",
			"stock":         "sghc",
			"BUYER BROKER":  "52",
			"Seller Broker": "56",
			"QTY":           "1,220",
			"PRICE":         "391",
			"Total Amount":  "477,020",
			"Trade Date":    "2025-06-30T00:00:00",
		},
	}

	result, err := testPipeline().Process(rows)
	require.NoError(t, err)
	require.Len(t, result.Trades, 1)

	tr := result.Trades[0]
	assert.Equal(t, "SGHC", tr.Symbol)
	assert.Equal(t, "52", tr.Buyer)
	assert.Equal(t, "56", tr.Seller)
	assert.Equal(t, 1220.0, tr.Quantity)
	assert.Equal(t, 477020.0, tr.Amount)
	assert.Equal(t, "2025-06-30", tr.Date)
}

func TestPipelineDeterministic(t *testing.T) {
	rows := []contracts.RawRow{
		{"Symbol": "SGHC", "Buyer": "52", "Seller": "56", "Quantity": "220", "Rate": "391", "Date": "2025-06-30"},
		{"Symbol": "NMIC", "Buyer": "44", "Seller": "52", "Quantity": "100", "Rate": "900", "Date": "2025-06-30"},
		{"Symbol": "SGHC", "Buyer": "56", "Seller": "44", "Quantity": "50", "Rate": "393", "Date": "2025-06-30"},
	}

	a, err := testPipeline().Process(rows)
	require.NoError(t, err)
	b, err := testPipeline().Process(rows)
	require.NoError(t, err)

	assert.Equal(t, a.Stocks, b.Stocks)
	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.Trades, b.Trades)
}
