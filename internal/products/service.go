package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/pagination"
)

// Service is the read/ingest surface over a store's scraped products and
// imported orders. The analytics engine consumes it read-only; only snapshot
// ingestion writes.
type Service interface {
	ListProducts(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]models.Product, error)
	ListOrders(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, since time.Time) ([]models.Order, error)
	ListPage(ctx context.Context, storeID uuid.UUID, input ListInput) (*ListResult, error)
	GetByBarcode(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, barcode string) (*models.Product, error)
	ApplySnapshot(ctx context.Context, storeID uuid.UUID, input SnapshotInput) (*models.Product, error)
}

type service struct {
	repo Repository
}

// NewService wires a product service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]models.Product, error) {
	if err := validateScope(storeID, marketplace); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByStore(ctx, storeID, marketplace)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

func (s *service) ListOrders(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, since time.Time) ([]models.Order, error) {
	if err := validateScope(storeID, marketplace); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListOrders(ctx, storeID, marketplace, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

func (s *service) ListPage(ctx context.Context, storeID uuid.UUID, input ListInput) (*ListResult, error) {
	if err := validateScope(storeID, input.Marketplace); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListPage(ctx, storeID, input.Marketplace, input.Pagination)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	result := &ListResult{Products: rows}
	if len(rows) > limit {
		result.Products = rows[:limit]
		last := result.Products[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

func (s *service) GetByBarcode(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, barcode string) (*models.Product, error) {
	if err := validateScope(storeID, marketplace); err != nil {
		return nil, err
	}
	if strings.TrimSpace(barcode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}

	row, err := s.repo.FindByBarcode(ctx, storeID, marketplace, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return row, nil
}

// ApplySnapshot validates and persists one scraped snapshot, replacing any
// previous snapshot of the same listing.
func (s *service) ApplySnapshot(ctx context.Context, storeID uuid.UUID, input SnapshotInput) (*models.Product, error) {
	if err := validateScope(storeID, input.Marketplace); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Barcode) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}

	scrapedAt := input.ScrapedAt
	if scrapedAt.IsZero() {
		scrapedAt = time.Now().UTC()
	}

	row := &models.Product{
		StoreID:         storeID,
		Marketplace:     input.Marketplace,
		Barcode:         strings.TrimSpace(input.Barcode),
		Title:           strings.TrimSpace(input.Title),
		Category:        input.Category,
		SalesPrice:      clampNegative(input.SalesPrice),
		BuyPrice:        clampNegative(input.BuyPrice),
		CommissionRate:  clampNegative(input.CommissionRate),
		VATRate:         clampNegative(input.VATRate),
		Desi:            clampNegative(input.Desi),
		ExtraCost:       clampNegative(input.ExtraCost),
		AdCost:          clampNegative(input.AdCost),
		ReturnRate:      clampNegative(input.ReturnRate),
		CompetitorPrice: input.CompetitorPrice,
		MonthlySales:    input.MonthlySales,
		ScrapedAt:       scrapedAt,
	}
	if row.MonthlySales < 0 {
		row.MonthlySales = 0
	}
	for _, v := range input.Variants {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			continue
		}
		reviews := v.ReviewCount
		if reviews < 0 {
			reviews = 0
		}
		row.Variants = append(row.Variants, models.ProductVariant{
			Name:        name,
			ReviewCount: reviews,
		})
	}

	saved, err := s.repo.UpsertSnapshot(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply snapshot")
	}
	return saved, nil
}

func validateScope(storeID uuid.UUID, marketplace enums.Marketplace) error {
	if storeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if !marketplace.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid marketplace")
	}
	return nil
}

func clampNegative(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}
