package stores

import (
	"time"

	"github.com/google/uuid"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

// StoreDTO exposes safe tenant data in API responses.
type StoreDTO struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Marketplace  enums.Marketplace `json:"marketplace"`
	SellerNumber *string           `json:"seller_number,omitempty"`
	Categories   []string          `json:"categories,omitempty"`
	OwnerID      uuid.UUID         `json:"owner"`
	LastSyncedAt *time.Time        `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func toDTO(store *models.Store) *StoreDTO {
	return &StoreDTO{
		ID:           store.ID,
		Name:         store.Name,
		Marketplace:  store.Marketplace,
		SellerNumber: store.SellerNumber,
		Categories:   store.Categories,
		OwnerID:      store.OwnerID,
		LastSyncedAt: store.LastSyncedAt,
		CreatedAt:    store.CreatedAt,
		UpdatedAt:    store.UpdatedAt,
	}
}
