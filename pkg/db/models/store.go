package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

// Store represents one seller account on one marketplace.
type Store struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string            `gorm:"column:name;not null"`
	Marketplace  enums.Marketplace `gorm:"column:marketplace;type:marketplace;not null"`
	SellerNumber *string           `gorm:"column:seller_number"`
	Categories   pq.StringArray    `gorm:"column:categories;type:text[]"`
	OwnerID      uuid.UUID         `gorm:"column:owner;type:uuid;not null"`
	LastSyncedAt *time.Time        `gorm:"column:last_synced_at"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
