package product

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	"github.com/sellerboard/sellerboard-backend/pkg/pagination"
)

// Repository defines persistence for product snapshots and order rows.
type Repository interface {
	ListByStore(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]models.Product, error)
	ListPage(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, params pagination.Params) ([]models.Product, error)
	FindByBarcode(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, barcode string) (*models.Product, error)
	UpsertSnapshot(ctx context.Context, snapshot *models.Product) (*models.Product, error)
	ListOrders(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, since time.Time) ([]models.Order, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByStore(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("store_id = ? AND marketplace = ?", storeID, marketplace).
		Order("created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListPage(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, params pagination.Params) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("Variants").
		Where("store_id = ? AND marketplace = ?", storeID, marketplace).
		Order("created_at, id").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"created_at > ? OR (created_at = ? AND id > ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Product
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByBarcode(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, barcode string) (*models.Product, error) {
	var row models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		First(&row, "store_id = ? AND marketplace = ? AND barcode = ?", storeID, marketplace, barcode).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// UpsertSnapshot replaces the stored snapshot matching the row's
// (store, marketplace, barcode) key, variants included. The whole swap runs
// in one transaction so a reader never sees a half-applied snapshot.
func (r *repository) UpsertSnapshot(ctx context.Context, snapshot *models.Product) (*models.Product, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.
			First(&existing, "store_id = ? AND marketplace = ? AND barcode = ?",
				snapshot.StoreID, snapshot.Marketplace, snapshot.Barcode).Error
		switch {
		case err == nil:
			snapshot.ID = existing.ID
			snapshot.CreatedAt = existing.CreatedAt
		case errors.Is(err, gorm.ErrRecordNotFound):
			if snapshot.ID == uuid.Nil {
				snapshot.ID = uuid.New()
			}
		default:
			return err
		}

		variants := snapshot.Variants
		snapshot.Variants = nil
		if err := tx.Save(snapshot).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", snapshot.ID).
			Delete(&models.ProductVariant{}).Error; err != nil {
			return err
		}
		for i := range variants {
			variants[i].ID = uuid.New()
			variants[i].ProductID = snapshot.ID
		}
		if len(variants) > 0 {
			if err := tx.Create(&variants).Error; err != nil {
				return err
			}
		}
		snapshot.Variants = variants
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (r *repository) ListOrders(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, since time.Time) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Where("store_id = ? AND marketplace = ?", storeID, marketplace)
	if !since.IsZero() {
		query = query.Where("ordered_at >= ?", since)
	}

	var rows []models.Order
	if err := query.Order("ordered_at, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
