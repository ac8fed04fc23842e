package reports

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/internal/analytics"
	"github.com/sellerboard/sellerboard-backend/internal/finance"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func pricedProduct(barcode string, input finance.ProfitInput) analytics.PricedProduct {
	return analytics.PricedProduct{
		Barcode:  barcode,
		Title:    "product " + barcode,
		Category: "Electronics",
		Profit:   finance.CalculateProfit(input),
	}
}

func TestBuildEmptyProductSet(t *testing.T) {
	data := Build(nil, nil, "my store", enums.MarketplaceTrendyol)

	if data.KPI.ProductCount != 0 {
		t.Errorf("product count = %d, want 0", data.KPI.ProductCount)
	}
	if !data.KPI.AvgMargin.IsZero() || !data.KPI.AvgROI.IsZero() {
		t.Errorf("averages not zero on empty set: %+v", data.KPI)
	}
	if data.KPI.LossCount != 0 {
		t.Errorf("loss count = %d, want 0", data.KPI.LossCount)
	}
	if len(data.Rows) != 0 {
		t.Errorf("expected no rows, got %d", len(data.Rows))
	}
	if data.StoreName != "my store" || data.Marketplace != enums.MarketplaceTrendyol {
		t.Errorf("header fields wrong: %+v", data)
	}
}

func TestBuildFlattensCostComponents(t *testing.T) {
	product := pricedProduct("abc", finance.ProfitInput{
		SalesPrice:     dec("500"),
		BuyPrice:       dec("250"),
		CommissionRate: dec("0.15"),
		VATRate:        dec("20"),
		ShippingCost:   dec("30"),
	})

	data := Build([]analytics.PricedProduct{product}, nil, "s", enums.MarketplaceTrendyol)
	if len(data.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(data.Rows))
	}

	row := data.Rows[0]
	if !row.VAT.Equal(dec("83.33")) {
		t.Errorf("vat = %s, want 83.33", row.VAT)
	}
	if !row.Commission.Equal(dec("75")) {
		t.Errorf("commission = %s, want 75", row.Commission)
	}
	if !row.TotalCost.Equal(dec("438.33")) {
		t.Errorf("total cost = %s, want 438.33", row.TotalCost)
	}
	if !row.NetProfit.Equal(dec("61.67")) {
		t.Errorf("net profit = %s, want 61.67", row.NetProfit)
	}

	// the flat row must reconcile with itself
	sum := row.BuyPrice.Add(row.VAT).Add(row.Commission).
		Add(row.ShippingCost).Add(row.ExtraCost).Add(row.AdCost)
	if !sum.Equal(row.TotalCost) {
		t.Errorf("components sum %s != total cost %s", sum, row.TotalCost)
	}
	if !row.SalesPrice.Sub(row.TotalCost).Equal(row.NetProfit) {
		t.Errorf("net profit does not reconcile")
	}
}

func TestBuildKPIAveragesAndLossCount(t *testing.T) {
	products := []analytics.PricedProduct{
		pricedProduct("a", finance.ProfitInput{
			SalesPrice: dec("500"), BuyPrice: dec("250"),
			CommissionRate: dec("0.15"), VATRate: dec("20"), ShippingCost: dec("30"),
		}),
		pricedProduct("b", finance.ProfitInput{
			SalesPrice: dec("100"), BuyPrice: dec("250"),
			CommissionRate: dec("0.15"), VATRate: dec("20"), ShippingCost: dec("30"),
		}),
	}

	data := Build(products, nil, "s", enums.MarketplaceHepsiburada)
	if data.KPI.ProductCount != 2 {
		t.Fatalf("product count = %d", data.KPI.ProductCount)
	}
	if !data.KPI.TotalRevenue.Equal(dec("600")) {
		t.Errorf("total revenue = %s, want 600", data.KPI.TotalRevenue)
	}
	if data.KPI.LossCount != 1 {
		t.Errorf("loss count = %d, want 1", data.KPI.LossCount)
	}

	wantAvgMargin := products[0].Profit.Margin.Add(products[1].Profit.Margin).
		Div(dec("2")).Round(1)
	if !data.KPI.AvgMargin.Equal(wantAvgMargin) {
		t.Errorf("avg margin = %s, want %s", data.KPI.AvgMargin, wantAvgMargin)
	}
}

func TestBuildCarriesAggregates(t *testing.T) {
	result := &analytics.Result{
		Categories: []analytics.CategoryRollup{{Category: "Electronics"}},
		Campaigns:  []analytics.CampaignImpact{{CampaignName: "flash"}},
		Worst:      []analytics.PricedProduct{{Barcode: "loss"}},
	}

	data := Build(nil, result, "s", enums.MarketplaceAmazonTR)
	if len(data.Categories) != 1 || len(data.Campaigns) != 1 || len(data.Worst) != 1 {
		t.Fatalf("aggregates not carried: %+v", data)
	}
}
