package estimators

import (
	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// DefaultCTR is assumed for ad-driven clicks when the caller has no
	// measured click-through rate.
	DefaultCTR = decimal.RequireFromString("0.02")
)

// TrafficInput describes what is known about a listing's traffic. PaidClicks
// takes precedence when measured; otherwise paid traffic is estimated from
// the ad impression share.
type TrafficInput struct {
	SearchVolume      decimal.Decimal `json:"search_volume"`
	ClickShare        decimal.Decimal `json:"click_share"`
	PaidClicks        decimal.Decimal `json:"paid_clicks"`
	AdImpressionShare decimal.Decimal `json:"ad_impression_share"`
	CTR               decimal.Decimal `json:"ctr"`
	ExternalClicks    decimal.Decimal `json:"external_clicks"`
}

// TrafficResult splits estimated traffic into organic, paid, and external
// buckets with each bucket's percentage of the whole.
type TrafficResult struct {
	Organic       decimal.Decimal `json:"organic"`
	Paid          decimal.Decimal `json:"paid"`
	External      decimal.Decimal `json:"external"`
	OrganicRatio  decimal.Decimal `json:"organic_ratio"`
	PaidRatio     decimal.Decimal `json:"paid_ratio"`
	ExternalRatio decimal.Decimal `json:"external_ratio"`
}

// AnalyzeTrafficSources estimates the organic/paid/external split for one
// listing. Organic traffic is whatever remains of the search clicks after
// paid, clamped at zero; a listing with no traffic at all reports all-zero
// ratios instead of dividing.
func AnalyzeTrafficSources(input TrafficInput) TrafficResult {
	totalSearchClicks := input.SearchVolume.Mul(input.ClickShare)

	paid := input.PaidClicks
	if !paid.IsPositive() && input.AdImpressionShare.IsPositive() {
		ctr := input.CTR
		if !ctr.IsPositive() {
			ctr = DefaultCTR
		}
		paid = input.SearchVolume.Mul(input.AdImpressionShare).Mul(ctr)
	}
	if paid.IsNegative() {
		paid = decimal.Zero
	}

	organic := totalSearchClicks.Sub(paid)
	if organic.IsNegative() {
		organic = decimal.Zero
	}

	external := input.ExternalClicks
	if external.IsNegative() {
		external = decimal.Zero
	}

	result := TrafficResult{
		Organic:  organic.Round(0),
		Paid:     paid.Round(0),
		External: external.Round(0),
	}

	total := organic.Add(paid).Add(external)
	if total.IsPositive() {
		result.OrganicRatio = organic.Div(total).Mul(hundred).Round(1)
		result.PaidRatio = paid.Div(total).Mul(hundred).Round(1)
		result.ExternalRatio = external.Div(total).Mul(hundred).Round(1)
	}
	return result
}
