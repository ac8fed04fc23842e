package estimators

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestAnalyzeTrafficSourcesMeasuredPaidClicks(t *testing.T) {
	result := AnalyzeTrafficSources(TrafficInput{
		SearchVolume:   dec("10000"),
		ClickShare:     dec("0.10"), // 1000 search clicks
		PaidClicks:     dec("300"),
		ExternalClicks: dec("200"),
	})

	if !result.Organic.Equal(dec("700")) {
		t.Errorf("organic = %s, want 700", result.Organic)
	}
	if !result.Paid.Equal(dec("300")) {
		t.Errorf("paid = %s, want 300", result.Paid)
	}
	if !result.External.Equal(dec("200")) {
		t.Errorf("external = %s, want 200", result.External)
	}

	// 700/1200, 300/1200, 200/1200
	if !result.OrganicRatio.Equal(dec("58.3")) {
		t.Errorf("organic ratio = %s, want 58.3", result.OrganicRatio)
	}
	if !result.PaidRatio.Equal(dec("25")) {
		t.Errorf("paid ratio = %s, want 25", result.PaidRatio)
	}
	if !result.ExternalRatio.Equal(dec("16.7")) {
		t.Errorf("external ratio = %s, want 16.7", result.ExternalRatio)
	}
}

func TestAnalyzeTrafficSourcesEstimatesPaidFromImpressionShare(t *testing.T) {
	result := AnalyzeTrafficSources(TrafficInput{
		SearchVolume:      dec("10000"),
		ClickShare:        dec("0.10"),
		AdImpressionShare: dec("0.50"),
		// CTR unset, default 0.02 applies: 10000 * 0.5 * 0.02 = 100
	})

	if !result.Paid.Equal(dec("100")) {
		t.Errorf("paid = %s, want 100", result.Paid)
	}
	if !result.Organic.Equal(dec("900")) {
		t.Errorf("organic = %s, want 900", result.Organic)
	}
}

func TestAnalyzeTrafficSourcesCustomCTR(t *testing.T) {
	result := AnalyzeTrafficSources(TrafficInput{
		SearchVolume:      dec("10000"),
		ClickShare:        dec("0.10"),
		AdImpressionShare: dec("0.50"),
		CTR:               dec("0.04"),
	})
	if !result.Paid.Equal(dec("200")) {
		t.Errorf("paid = %s, want 200", result.Paid)
	}
}

func TestAnalyzeTrafficSourcesClampsOrganic(t *testing.T) {
	result := AnalyzeTrafficSources(TrafficInput{
		SearchVolume: dec("100"),
		ClickShare:   dec("0.10"), // 10 search clicks
		PaidClicks:   dec("50"),   // more paid than search clicks
	})
	if !result.Organic.IsZero() {
		t.Fatalf("organic = %s, want clamped 0", result.Organic)
	}
	if !result.PaidRatio.Equal(dec("100")) {
		t.Fatalf("paid ratio = %s, want 100", result.PaidRatio)
	}
}

func TestAnalyzeTrafficSourcesZeroTotalGuard(t *testing.T) {
	result := AnalyzeTrafficSources(TrafficInput{})
	if !result.OrganicRatio.IsZero() || !result.PaidRatio.IsZero() || !result.ExternalRatio.IsZero() {
		t.Fatalf("expected all-zero ratios, got %+v", result)
	}
}
