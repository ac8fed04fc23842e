package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

// ShippingRate is one tier of a marketplace shipping table. Rows with a nil
// StoreID are the system-wide defaults; rows scoped to a store override the
// default tier sharing the same (rate_type, min_value) key.
type ShippingRate struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Marketplace enums.Marketplace `gorm:"column:marketplace;type:marketplace;not null"`
	StoreID     *uuid.UUID        `gorm:"column:store_id;type:uuid"`
	RateType    enums.RateType    `gorm:"column:rate_type;type:rate_type;not null"`
	MinValue    decimal.Decimal   `gorm:"column:min_value;type:numeric(10,2);not null"`
	MaxValue    decimal.Decimal   `gorm:"column:max_value;type:numeric(10,2);not null"`
	Cost        decimal.Decimal   `gorm:"column:cost;type:numeric(12,2);not null"`
	VATIncluded bool              `gorm:"column:vat_included;not null;default:true"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
