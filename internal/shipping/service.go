package shipping

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sellerboard/sellerboard-backend/pkg/db"
	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
)

// Service exposes the shipping rate table surface: the merged view a store
// actually pays, single-value cost resolution, and the override lifecycle.
type Service interface {
	MergedTable(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]Tier, error)
	ResolveShippingCost(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, rateType enums.RateType, value decimal.Decimal) (decimal.Decimal, error)
	CreateOverride(ctx context.Context, storeID uuid.UUID, input OverrideInput) (*models.ShippingRate, error)
	UpdateOverride(ctx context.Context, storeID uuid.UUID, id uuid.UUID, input OverrideInput) (*models.ShippingRate, error)
	DeleteOverride(ctx context.Context, storeID uuid.UUID, id uuid.UUID) error
	ResetOverrides(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) error
}

// OverrideInput captures one store-scoped tier to create or replace.
type OverrideInput struct {
	Marketplace enums.Marketplace `json:"marketplace"`
	RateType    enums.RateType    `json:"rate_type"`
	MinValue    decimal.Decimal   `json:"min_value"`
	MaxValue    decimal.Decimal   `json:"max_value"`
	Cost        decimal.Decimal   `json:"cost"`
	VATIncluded bool              `json:"vat_included"`
}

type service struct {
	repo Repository
}

// NewService wires a shipping service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipping repository required")
	}
	return &service{repo: repo}, nil
}

// MergedTable returns the store's effective tier table: marketplace defaults
// with the store's overrides applied on top.
func (s *service) MergedTable(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]Tier, error) {
	if storeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if !marketplace.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid marketplace")
	}

	defaults, err := s.repo.ListDefaults(ctx, marketplace)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load default rates")
	}
	overrides, err := s.repo.ListOverrides(ctx, marketplace, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rate overrides")
	}

	return MergeTiers(TiersFromModels(defaults), TiersFromModels(overrides)), nil
}

// ResolveShippingCost prices one shipment against the store's merged table.
// A store with no configured desi table falls back to the built-in ladder;
// price-bracket resolution has no fallback and surfaces ErrNoRateTable.
func (s *service) ResolveShippingCost(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, rateType enums.RateType, value decimal.Decimal) (decimal.Decimal, error) {
	if !rateType.IsValid() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid rate type")
	}
	if value.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "lookup value cannot be negative")
	}

	tiers, err := s.MergedTable(ctx, storeID, marketplace)
	if err != nil {
		return decimal.Zero, err
	}

	cost, err := ResolveCost(tiers, rateType, value)
	if errors.Is(err, ErrNoRateTable) && rateType == enums.RateTypeDesi {
		return ResolveCost(DefaultDesiTiers(), rateType, value)
	}
	return cost, err
}

func (s *service) CreateOverride(ctx context.Context, storeID uuid.UUID, input OverrideInput) (*models.ShippingRate, error) {
	if err := validateOverride(storeID, input); err != nil {
		return nil, err
	}

	sid := storeID
	row := &models.ShippingRate{
		Marketplace: input.Marketplace,
		StoreID:     &sid,
		RateType:    input.RateType,
		MinValue:    input.MinValue,
		MaxValue:    input.MaxValue,
		Cost:        input.Cost,
		VATIncluded: input.VATIncluded,
	}

	created, err := s.repo.CreateOverride(ctx, row)
	if err != nil {
		if db.IsUniqueViolation(err, "idx_shipping_rates_store_tier") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "override for this tier already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist override")
	}
	return created, nil
}

func (s *service) UpdateOverride(ctx context.Context, storeID uuid.UUID, id uuid.UUID, input OverrideInput) (*models.ShippingRate, error) {
	if err := validateOverride(storeID, input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindOverride(ctx, id, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "override not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load override")
	}

	existing.Marketplace = input.Marketplace
	existing.RateType = input.RateType
	existing.MinValue = input.MinValue
	existing.MaxValue = input.MaxValue
	existing.Cost = input.Cost
	existing.VATIncluded = input.VATIncluded

	updated, err := s.repo.UpdateOverride(ctx, existing)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist override")
	}
	return updated, nil
}

func (s *service) DeleteOverride(ctx context.Context, storeID uuid.UUID, id uuid.UUID) error {
	if storeID == uuid.Nil || id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id and override id are required")
	}
	if err := s.repo.DeleteOverride(ctx, id, storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "override not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete override")
	}
	return nil
}

// ResetOverrides drops every override the store holds for the marketplace,
// reverting it to the shared defaults.
func (s *service) ResetOverrides(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) error {
	if storeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if !marketplace.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid marketplace")
	}
	if err := s.repo.DeleteOverrides(ctx, marketplace, storeID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset overrides")
	}
	return nil
}

func validateOverride(storeID uuid.UUID, input OverrideInput) error {
	if storeID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if !input.Marketplace.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid marketplace")
	}
	if !input.RateType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid rate type")
	}
	if input.MinValue.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "min value cannot be negative")
	}
	if input.MaxValue.LessThanOrEqual(input.MinValue) {
		return pkgerrors.New(pkgerrors.CodeValidation, "max value must exceed min value")
	}
	if input.Cost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "cost cannot be negative")
	}
	return nil
}
