package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

// Order is one sale row imported from the marketplace's order export. Campaign
// fields are nil for sales that happened outside any campaign window.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID          uuid.UUID         `gorm:"column:store_id;type:uuid;not null"`
	Marketplace      enums.Marketplace `gorm:"column:marketplace;type:marketplace;not null"`
	ProductID        uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	SalesPrice       decimal.Decimal   `gorm:"column:sales_price;type:numeric(12,2);not null"`
	Quantity         int               `gorm:"column:quantity;not null;default:1"`
	CampaignName     *string           `gorm:"column:campaign_name"`
	CampaignFrom     *time.Time        `gorm:"column:campaign_from"`
	CampaignUntil    *time.Time        `gorm:"column:campaign_until"`
	CampaignRate     decimal.Decimal   `gorm:"column:campaign_rate;type:numeric(6,4);not null;default:0"`
	SellerShare      decimal.Decimal   `gorm:"column:seller_share;type:numeric(6,4);not null;default:0"`
	MarketplaceShare decimal.Decimal   `gorm:"column:marketplace_share;type:numeric(6,4);not null;default:0"`
	OrderedAt        time.Time         `gorm:"column:ordered_at;not null"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
}
