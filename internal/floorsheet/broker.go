package floorsheet

import (
	"math"

	"github.com/floorsight/backend/internal/contracts"
)

// ShareCalculator derives a broker's market share for a symbol/day from its
// position and the total two-sided turnover of that symbol/day. Injected so
// the aggregation stays deterministic under test.
type ShareCalculator interface {
	Share(p *contracts.BrokerPosition, symbolDayTurnover float64) float64
}

// TurnoverShare computes market share as the broker's traded amount on both
// sides against the symbol/day turnover counted on both sides, so the shares
// of all brokers in a symbol/day sum to 100.
type TurnoverShare struct{}

// Share implements ShareCalculator.
func (TurnoverShare) Share(p *contracts.BrokerPosition, symbolDayTurnover float64) float64 {
	if symbolDayTurnover <= 0 {
		return 0
	}
	return (p.BuyAmount + p.SellAmount) / symbolDayTurnover * 100
}

// BrokerAggregator folds valid trades into per-broker per-symbol daily net
// positions. Every trade updates two records in the same keyed map: a
// credit-buy against the buyer and a credit-sell against the seller, so a
// broker active on both sides of a symbol accumulates into one record.
type BrokerAggregator struct {
	share ShareCalculator
}

// NewBrokerAggregator creates an aggregator with the real turnover-based
// market-share computation.
func NewBrokerAggregator() *BrokerAggregator {
	return &BrokerAggregator{share: TurnoverShare{}}
}

// NewBrokerAggregatorWith creates an aggregator with an explicit share
// calculator.
func NewBrokerAggregatorWith(share ShareCalculator) *BrokerAggregator {
	return &BrokerAggregator{share: share}
}

type brokerKey struct {
	broker string
	symbol string
	date   string
}

// Aggregate builds the positions and finalizes the derived fields: net
// quantities and amounts, activity type, accumulation score, market share
// and alert level. Positions are emitted in first-seen key order.
func (a *BrokerAggregator) Aggregate(trades []contracts.NormalizedTrade) []*contracts.BrokerPosition {
	positions := make(map[brokerKey]*contracts.BrokerPosition)
	var order []brokerKey

	// Two-sided turnover per symbol/day, for market share.
	turnover := make(map[stockKey]float64)

	touch := func(key brokerKey) *contracts.BrokerPosition {
		p, ok := positions[key]
		if !ok {
			p = &contracts.BrokerPosition{
				BrokerCode: key.broker,
				Symbol:     key.symbol,
				Date:       key.date,
			}
			positions[key] = p
			order = append(order, key)
		}
		return p
	}

	for _, t := range trades {
		buy := touch(brokerKey{broker: t.Buyer, symbol: t.Symbol, date: t.Date})
		buy.TotalBuyQuantity += t.Quantity
		buy.BuyAmount += t.Amount

		sell := touch(brokerKey{broker: t.Seller, symbol: t.Symbol, date: t.Date})
		sell.TotalSellQuantity += t.Quantity
		sell.SellAmount += t.Amount

		turnover[stockKey{symbol: t.Symbol, date: t.Date}] += 2 * t.Amount
	}

	result := make([]*contracts.BrokerPosition, 0, len(order))
	for _, key := range order {
		p := positions[key]
		p.NetQuantity = p.TotalBuyQuantity - p.TotalSellQuantity
		p.NetAmount = p.BuyAmount - p.SellAmount

		switch {
		case p.NetQuantity > 0:
			p.ActivityType = contracts.ActivityAccumulating
		case p.NetQuantity < 0:
			p.ActivityType = contracts.ActivityDistributing
		default:
			p.ActivityType = contracts.ActivityNeutral
		}

		// Bounded in [0, 10): the denominator always exceeds the numerator.
		total := p.TotalBuyQuantity + p.TotalSellQuantity
		p.AccumulationScore = math.Abs(p.NetQuantity) / (total + 1) * 10

		p.MarketShare = a.share.Share(p, turnover[stockKey{symbol: p.Symbol, date: p.Date}])
		p.AlertLevel = contracts.AlertLevelFor(p.NetAmount)

		result = append(result, p)
	}
	return result
}
