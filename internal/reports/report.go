package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/internal/analytics"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

var hundred = decimal.NewFromInt(100)

// Row is one product flattened for export, every cost component broken out.
// Values are plain numbers; currency and locale formatting belong to the
// document renderer.
type Row struct {
	Barcode      string          `json:"barcode"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	SalesPrice   decimal.Decimal `json:"sales_price"`
	BuyPrice     decimal.Decimal `json:"buy_price"`
	VAT          decimal.Decimal `json:"vat"`
	Commission   decimal.Decimal `json:"commission"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	ExtraCost    decimal.Decimal `json:"extra_cost"`
	AdCost       decimal.Decimal `json:"ad_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	Margin       decimal.Decimal `json:"margin"`
	ROI          decimal.Decimal `json:"roi"`
	ReturnRate   decimal.Decimal `json:"return_rate"`
	MonthlySales int             `json:"monthly_sales"`
}

// KPI is the report's headline block.
type KPI struct {
	ProductCount int             `json:"product_count"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
	AvgMargin    decimal.Decimal `json:"avg_margin"`
	AvgROI       decimal.Decimal `json:"avg_roi"`
	LossCount    int             `json:"loss_count"`
}

// ReportData is everything a document renderer needs for one store export.
type ReportData struct {
	StoreName   string                     `json:"store_name"`
	Marketplace enums.Marketplace          `json:"marketplace"`
	GeneratedAt time.Time                  `json:"generated_at"`
	KPI         KPI                        `json:"kpi"`
	Rows        []Row                      `json:"rows"`
	Categories  []analytics.CategoryRollup `json:"categories"`
	Campaigns   []analytics.CampaignImpact `json:"campaigns"`
	Worst       []analytics.PricedProduct  `json:"worst"`
}

// Build flattens priced products and a finished aggregation pass into one
// export structure. A single pass accumulates the KPI sums while projecting
// rows; an empty product set yields a zero KPI block rather than dividing.
func Build(products []analytics.PricedProduct, result *analytics.Result, storeName string, marketplace enums.Marketplace) ReportData {
	rows := make([]Row, 0, len(products))

	totalRevenue := decimal.Zero
	totalProfit := decimal.Zero
	marginSum := decimal.Zero
	roiSum := decimal.Zero
	lossCount := 0

	for _, p := range products {
		profit := p.Profit
		rows = append(rows, Row{
			Barcode:      p.Barcode,
			Title:        p.Title,
			Category:     p.Category,
			SalesPrice:   profit.SalesPrice.Round(2),
			BuyPrice:     profit.BuyPrice.Round(2),
			VAT:          profit.VAT,
			Commission:   profit.Commission,
			ShippingCost: profit.ShippingCost.Round(2),
			ExtraCost:    profit.ExtraCost.Round(2),
			AdCost:       profit.AdCost.Round(2),
			TotalCost:    profit.TotalCost,
			NetProfit:    profit.NetProfit,
			Margin:       profit.Margin,
			ROI:          profit.ROI,
			ReturnRate:   p.ReturnRate,
			MonthlySales: p.MonthlySales,
		})

		totalRevenue = totalRevenue.Add(profit.SalesPrice)
		totalProfit = totalProfit.Add(profit.NetProfit)
		marginSum = marginSum.Add(profit.Margin)
		roiSum = roiSum.Add(profit.ROI)
		if profit.NetProfit.IsNegative() {
			lossCount++
		}
	}

	divisor := decimal.NewFromInt(int64(max(1, len(products))))
	kpi := KPI{
		ProductCount: len(products),
		TotalRevenue: totalRevenue.Round(2),
		TotalProfit:  totalProfit.Round(2),
		AvgMargin:    marginSum.Div(divisor).Round(1),
		AvgROI:       roiSum.Div(divisor).Round(1),
		LossCount:    lossCount,
	}

	data := ReportData{
		StoreName:   storeName,
		Marketplace: marketplace,
		GeneratedAt: time.Now().UTC(),
		KPI:         kpi,
		Rows:        rows,
	}
	if result != nil {
		data.Categories = result.Categories
		data.Campaigns = result.Campaigns
		data.Worst = result.Worst
	}
	return data
}
