package finance

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// ProfitInput carries everything needed to price a single sale. Monetary
// fields are VAT-inclusive Turkish lira amounts; CommissionRate is a fraction
// (0.15 for 15%), VATRate a percentage (20 for 20%).
type ProfitInput struct {
	SalesPrice     decimal.Decimal `json:"sales_price"`
	BuyPrice       decimal.Decimal `json:"buy_price"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	VATRate        decimal.Decimal `json:"vat_rate"`
	ShippingCost   decimal.Decimal `json:"shipping_cost"`
	ExtraCost      decimal.Decimal `json:"extra_cost"`
	AdCost         decimal.Decimal `json:"ad_cost"`
}

// ProfitResult is the immutable cost/profit breakdown for one sale. Monetary
// fields are rounded to two decimals, percentages to one.
type ProfitResult struct {
	ProfitInput

	VAT        decimal.Decimal `json:"vat"`
	Commission decimal.Decimal `json:"commission"`
	TotalCost  decimal.Decimal `json:"total_cost"`
	NetProfit  decimal.Decimal `json:"net_profit"`
	Margin     decimal.Decimal `json:"margin"`
	ROI        decimal.Decimal `json:"roi"`
}

// CalculateProfit prices a single sale into a full cost breakdown.
//
// VAT is extracted out of the VAT-inclusive sale price, not added on top.
// Each cost component is rounded independently and NetProfit is then derived
// from the rounded components, so the breakdown always reconciles with itself
// even when that puts it a kuruş away from the mathematically exact profit.
// Zero sale or buy prices yield zero margin/ROI instead of dividing.
func CalculateProfit(input ProfitInput) ProfitResult {
	vatMultiplier := one.Add(input.VATRate.Div(hundred))
	vat := input.SalesPrice.Sub(input.SalesPrice.Div(vatMultiplier)).Round(2)
	commission := input.SalesPrice.Mul(input.CommissionRate).Round(2)

	totalCost := input.BuyPrice.
		Add(vat).
		Add(commission).
		Add(input.ShippingCost).
		Add(input.ExtraCost).
		Add(input.AdCost).
		Round(2)
	netProfit := input.SalesPrice.Sub(totalCost)

	margin := decimal.Zero
	if input.SalesPrice.IsPositive() {
		margin = netProfit.Div(input.SalesPrice).Mul(hundred).Round(1)
	}
	roi := decimal.Zero
	if input.BuyPrice.IsPositive() {
		roi = netProfit.Div(input.BuyPrice).Mul(hundred).Round(1)
	}

	return ProfitResult{
		ProfitInput: input,
		VAT:         vat,
		Commission:  commission,
		TotalCost:   totalCost,
		NetProfit:   netProfit,
		Margin:      margin,
		ROI:         roi,
	}
}
