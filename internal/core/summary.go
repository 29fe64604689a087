package core

import "github.com/shopspring/decimal"

// markup is the fixed stand-in for a current-price source: every asset is
// assumed to be worth 10% more than what was paid for it.
var markup = decimal.RequireFromString("1.10")

type (
	// Summary is the dashboard headline: totals and averages over the
	// whole portfolio, valued with the fixed markup.
	Summary struct {
		AssetCount       int
		TotalCostBasis   Money
		TotalMarketValue Money
		TotalGainLoss    Money
		AvgCostBasis     Money
	}

	// ClassAllocation is the cost basis held in one asset class.
	ClassAllocation struct {
		Class     AssetClass
		CostBasis Money
	}

	// Insights are the aggregate-function metrics shown on the
	// Business Insights view.
	Insights struct {
		AssetCount     int
		TotalCostBasis Money
		AvgCostBasis   Money
		MinShares      Quantity
		MaxShares      Quantity
	}
)

// ComputeSummary derives the portfolio summary in application memory.
// The per-row current price is cost_basis x 1.10; current value is
// shares x current price; gain is current value minus cost basis.
// An empty portfolio yields the zero Summary.
func ComputeSummary(assets []Asset) Summary {
	if len(assets) == 0 {
		return Summary{}
	}

	totalCost := decimal.Zero
	totalValue := decimal.Zero
	for _, a := range assets {
		cost := a.CostBasis.Decimal()
		currentPrice := cost.Mul(markup)
		currentValue := a.Shares.Decimal().Mul(currentPrice)
		totalCost = totalCost.Add(cost)
		totalValue = totalValue.Add(currentValue)
	}

	count := decimal.NewFromInt(int64(len(assets)))
	return Summary{
		AssetCount:       len(assets),
		TotalCostBasis:   MoneyFromDecimal(totalCost),
		TotalMarketValue: MoneyFromDecimal(totalValue),
		TotalGainLoss:    MoneyFromDecimal(totalValue.Sub(totalCost)),
		AvgCostBasis:     MoneyFromDecimal(totalCost.DivRound(count, 4)),
	}
}
