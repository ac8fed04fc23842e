package shipping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

// Repository exposes persistence for shipping rate tables.
type Repository interface {
	ListDefaults(ctx context.Context, marketplace enums.Marketplace) ([]models.ShippingRate, error)
	ListOverrides(ctx context.Context, marketplace enums.Marketplace, storeID uuid.UUID) ([]models.ShippingRate, error)
	FindOverride(ctx context.Context, id uuid.UUID, storeID uuid.UUID) (*models.ShippingRate, error)
	CreateOverride(ctx context.Context, rate *models.ShippingRate) (*models.ShippingRate, error)
	UpdateOverride(ctx context.Context, rate *models.ShippingRate) (*models.ShippingRate, error)
	DeleteOverride(ctx context.Context, id uuid.UUID, storeID uuid.UUID) error
	DeleteOverrides(ctx context.Context, marketplace enums.Marketplace, storeID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListDefaults(ctx context.Context, marketplace enums.Marketplace) ([]models.ShippingRate, error) {
	var rows []models.ShippingRate
	err := r.db.WithContext(ctx).
		Where("marketplace = ? AND store_id IS NULL", marketplace).
		Order("rate_type, min_value").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListOverrides(ctx context.Context, marketplace enums.Marketplace, storeID uuid.UUID) ([]models.ShippingRate, error) {
	var rows []models.ShippingRate
	err := r.db.WithContext(ctx).
		Where("marketplace = ? AND store_id = ?", marketplace, storeID).
		Order("rate_type, min_value").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindOverride(ctx context.Context, id uuid.UUID, storeID uuid.UUID) (*models.ShippingRate, error) {
	var row models.ShippingRate
	err := r.db.WithContext(ctx).
		First(&row, "id = ? AND store_id = ?", id, storeID).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) CreateOverride(ctx context.Context, rate *models.ShippingRate) (*models.ShippingRate, error) {
	if err := r.db.WithContext(ctx).Create(rate).Error; err != nil {
		return nil, err
	}
	return rate, nil
}

func (r *repository) UpdateOverride(ctx context.Context, rate *models.ShippingRate) (*models.ShippingRate, error) {
	if err := r.db.WithContext(ctx).Save(rate).Error; err != nil {
		return nil, err
	}
	return rate, nil
}

func (r *repository) DeleteOverride(ctx context.Context, id uuid.UUID, storeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND store_id = ?", id, storeID).
		Delete(&models.ShippingRate{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteOverrides(ctx context.Context, marketplace enums.Marketplace, storeID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("marketplace = ? AND store_id = ?", marketplace, storeID).
		Delete(&models.ShippingRate{}).Error
}
