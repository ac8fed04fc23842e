package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	"github.com/sellerboard/sellerboard-backend/pkg/pagination"
)

// VariantInput is one variant inside a scraped snapshot.
type VariantInput struct {
	Name        string `json:"name" validate:"required"`
	ReviewCount int    `json:"review_count"`
}

// SnapshotInput is a scraped product snapshot as pushed by the browser
// extension. Numeric fields arrive as whatever the extension parsed; the
// service clamps obviously broken values instead of rejecting the snapshot.
type SnapshotInput struct {
	Marketplace     enums.Marketplace `json:"marketplace" validate:"required"`
	Barcode         string            `json:"barcode" validate:"required"`
	Title           string            `json:"title" validate:"required"`
	Category        *string           `json:"category,omitempty"`
	SalesPrice      decimal.Decimal   `json:"sales_price"`
	BuyPrice        decimal.Decimal   `json:"buy_price"`
	CommissionRate  decimal.Decimal   `json:"commission_rate"`
	VATRate         decimal.Decimal   `json:"vat_rate"`
	Desi            decimal.Decimal   `json:"desi"`
	ExtraCost       decimal.Decimal   `json:"extra_cost"`
	AdCost          decimal.Decimal   `json:"ad_cost"`
	ReturnRate      decimal.Decimal   `json:"return_rate"`
	CompetitorPrice *decimal.Decimal  `json:"competitor_price,omitempty"`
	MonthlySales    int               `json:"monthly_sales"`
	Variants        []VariantInput    `json:"variants,omitempty"`
	ScrapedAt       time.Time         `json:"scraped_at"`
}

// ListInput captures the knobs for the paginated product listing.
type ListInput struct {
	Marketplace enums.Marketplace
	Pagination  pagination.Params
}

// ListResult is one page of product snapshots.
type ListResult struct {
	Products   []models.Product `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
