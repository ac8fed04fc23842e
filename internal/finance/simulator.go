package finance

import "github.com/shopspring/decimal"

// Simulation compares the current pricing of a sale against a hypothetical
// sale price.
type Simulation struct {
	Current     ProfitResult    `json:"current"`
	Simulated   ProfitResult    `json:"simulated"`
	ProfitDelta decimal.Decimal `json:"profit_delta"`
	MarginDelta decimal.Decimal `json:"margin_delta"`
}

// SimulatePriceChange reruns the profit calculation with the sale price
// replaced and reports the resulting profit and margin movement. Both runs
// are independent; the input is never mutated.
func SimulatePriceChange(input ProfitInput, newSalesPrice decimal.Decimal) Simulation {
	current := CalculateProfit(input)

	simulatedInput := input
	simulatedInput.SalesPrice = newSalesPrice
	simulated := CalculateProfit(simulatedInput)

	return Simulation{
		Current:     current,
		Simulated:   simulated,
		ProfitDelta: simulated.NetProfit.Sub(current.NetProfit),
		MarginDelta: simulated.Margin.Sub(current.Margin),
	}
}
