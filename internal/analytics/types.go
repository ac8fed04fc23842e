package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/internal/finance"
)

// DefaultCategory is the bucket that absorbs products scraped without a
// category value.
const DefaultCategory = "Other"

// PricedProduct is one product snapshot after normalization and pricing. It
// is the unit every aggregation fold operates on.
type PricedProduct struct {
	Barcode         string               `json:"barcode"`
	Title           string               `json:"title"`
	Category        string               `json:"category"`
	ReturnRate      decimal.Decimal      `json:"return_rate"`
	MonthlySales    int                  `json:"monthly_sales"`
	CompetitorPrice *decimal.Decimal     `json:"competitor_price,omitempty"`
	Profit          finance.ProfitResult `json:"profit"`
}

// CategoryRollup sums revenue and profit across every product sharing a
// category.
type CategoryRollup struct {
	Category      string          `json:"category"`
	Revenue       decimal.Decimal `json:"revenue"`
	Profit        decimal.Decimal `json:"profit"`
	Margin        decimal.Decimal `json:"margin"`
	ProductCount  int             `json:"product_count"`
	AvgReturnRate decimal.Decimal `json:"avg_return_rate"`
}

// CampaignOrder is one campaign-attributed sale, normalized from an order row
// and priced against its product. Profit is the order's profit with the
// campaign's seller share already deducted.
type CampaignOrder struct {
	Name             string          `json:"name"`
	ValidFrom        time.Time       `json:"valid_from"`
	ValidUntil       time.Time       `json:"valid_until"`
	CampaignRate     decimal.Decimal `json:"campaign_rate"`
	SellerShare      decimal.Decimal `json:"seller_share"`
	MarketplaceShare decimal.Decimal `json:"marketplace_share"`
	Orders           int             `json:"orders"`
	Revenue          decimal.Decimal `json:"revenue"`
	Profit           decimal.Decimal `json:"profit"`
}

// CampaignImpact summarizes every order attributed to one campaign run.
// ProfitDelta is the average per-order profit movement against the same
// orders priced without the campaign's seller share.
type CampaignImpact struct {
	CampaignName     string          `json:"campaign_name"`
	ValidFrom        time.Time       `json:"valid_from"`
	ValidUntil       time.Time       `json:"valid_until"`
	CampaignRate     decimal.Decimal `json:"campaign_rate"`
	SellerShare      decimal.Decimal `json:"seller_share"`
	MarketplaceShare decimal.Decimal `json:"marketplace_share"`
	CampaignOrders   int             `json:"campaign_orders"`
	CampaignRevenue  decimal.Decimal `json:"campaign_revenue"`
	CampaignProfit   decimal.Decimal `json:"campaign_profit"`
	ProfitDelta      decimal.Decimal `json:"profit_delta"`
}

// Result is one full aggregation pass over a store's current product and
// order sets.
type Result struct {
	Products   []PricedProduct  `json:"products"`
	Categories []CategoryRollup `json:"categories"`
	Campaigns  []CampaignImpact `json:"campaigns"`
	Worst      []PricedProduct  `json:"worst"`
}
