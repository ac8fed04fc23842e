package analytics

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/internal/finance"
	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
)

// Scraped rows arrive with whatever the extension managed to parse. All of
// the defaulting happens here, once, so the fold functions can assume clean
// values.

// NormalizeProduct pairs a raw product row with its profit breakdown and
// fills the gaps scraping leaves behind. A missing or blank category lands in
// the shared default bucket; negative counts and rates are clamped to zero.
func NormalizeProduct(row models.Product, profit finance.ProfitResult) PricedProduct {
	category := DefaultCategory
	if row.Category != nil {
		if trimmed := strings.TrimSpace(*row.Category); trimmed != "" {
			category = trimmed
		}
	}

	returnRate := row.ReturnRate
	if returnRate.IsNegative() {
		returnRate = decimal.Zero
	}
	monthlySales := row.MonthlySales
	if monthlySales < 0 {
		monthlySales = 0
	}

	return PricedProduct{
		Barcode:         row.Barcode,
		Title:           row.Title,
		Category:        category,
		ReturnRate:      returnRate,
		MonthlySales:    monthlySales,
		CompetitorPrice: row.CompetitorPrice,
		Profit:          profit,
	}
}

// NormalizeCampaignOrder turns an order row into a campaign-attributed sale.
// Orders outside any campaign window return false. perUnitProfit is the
// product's net profit for one unit without any campaign share applied.
func NormalizeCampaignOrder(row models.Order, perUnitProfit decimal.Decimal) (CampaignOrder, bool) {
	if row.CampaignName == nil || strings.TrimSpace(*row.CampaignName) == "" {
		return CampaignOrder{}, false
	}

	quantity := row.Quantity
	if quantity < 0 {
		quantity = 0
	}
	sellerShare := row.SellerShare
	if sellerShare.IsNegative() {
		sellerShare = decimal.Zero
	}

	revenue := row.SalesPrice.Mul(decimal.NewFromInt(int64(quantity)))
	shareCost := revenue.Mul(sellerShare)
	profit := perUnitProfit.Mul(decimal.NewFromInt(int64(quantity))).Sub(shareCost)

	var validFrom, validUntil time.Time
	if row.CampaignFrom != nil {
		validFrom = *row.CampaignFrom
	}
	if row.CampaignUntil != nil {
		validUntil = *row.CampaignUntil
	}

	return CampaignOrder{
		Name:             strings.TrimSpace(*row.CampaignName),
		ValidFrom:        validFrom,
		ValidUntil:       validUntil,
		CampaignRate:     row.CampaignRate,
		SellerShare:      sellerShare,
		MarketplaceShare: row.MarketplaceShare,
		Orders:           quantity,
		Revenue:          revenue,
		Profit:           profit,
	}, true
}
