package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

// Product is the scraped snapshot of one marketplace listing. Rows are
// replaced wholesale whenever the extension pushes a fresh snapshot; the
// analytics engine never mutates them.
type Product struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID         uuid.UUID         `gorm:"column:store_id;type:uuid;not null"`
	Marketplace     enums.Marketplace `gorm:"column:marketplace;type:marketplace;not null"`
	Barcode         string            `gorm:"column:barcode;not null"`
	Title           string            `gorm:"column:title;not null"`
	Category        *string           `gorm:"column:category"`
	SalesPrice      decimal.Decimal   `gorm:"column:sales_price;type:numeric(12,2);not null"`
	BuyPrice        decimal.Decimal   `gorm:"column:buy_price;type:numeric(12,2);not null"`
	CommissionRate  decimal.Decimal   `gorm:"column:commission_rate;type:numeric(6,4);not null"`
	VATRate         decimal.Decimal   `gorm:"column:vat_rate;type:numeric(5,2);not null"`
	Desi            decimal.Decimal   `gorm:"column:desi;type:numeric(8,2);not null;default:0"`
	ExtraCost       decimal.Decimal   `gorm:"column:extra_cost;type:numeric(12,2);not null;default:0"`
	AdCost          decimal.Decimal   `gorm:"column:ad_cost;type:numeric(12,2);not null;default:0"`
	ReturnRate      decimal.Decimal   `gorm:"column:return_rate;type:numeric(5,2);not null;default:0"`
	CompetitorPrice *decimal.Decimal  `gorm:"column:competitor_price;type:numeric(12,2)"`
	MonthlySales    int               `gorm:"column:monthly_sales;not null;default:0"`
	Variants        []ProductVariant  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	ScrapedAt       time.Time         `gorm:"column:scraped_at;not null"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductVariant carries per-variant review counts used by the sales estimator.
type ProductVariant struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name        string    `gorm:"column:name;not null"`
	ReviewCount int       `gorm:"column:review_count;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
