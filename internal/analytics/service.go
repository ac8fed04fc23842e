package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/internal/finance"
	"github.com/sellerboard/sellerboard-backend/internal/shipping"
	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
)

// Source supplies the raw rows an aggregation pass reads. Implemented by the
// products service; the aggregator never writes through it.
type Source interface {
	ListProducts(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]models.Product, error)
	ListOrders(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, since time.Time) ([]models.Order, error)
}

// Service runs full aggregation passes for a store.
type Service interface {
	Dashboard(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, since time.Time) (*Result, error)
	PriceProducts(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]PricedProduct, error)
}

type service struct {
	source   Source
	shipping shipping.Service
}

// NewService wires the aggregator against its row source and the shipping
// resolver.
func NewService(source Source, shippingSvc shipping.Service) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("analytics source required")
	}
	if shippingSvc == nil {
		return nil, fmt.Errorf("shipping service required")
	}
	return &service{source: source, shipping: shippingSvc}, nil
}

// Dashboard recomputes the store's full analytics picture from scratch. Every
// call prices the current product set, then runs the category, campaign, and
// worst-performer folds over it.
func (s *service) Dashboard(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace, since time.Time) (*Result, error) {
	priced, profitByProduct, err := s.priceStore(ctx, storeID, marketplace)
	if err != nil {
		return nil, err
	}

	orders, err := s.source.ListOrders(ctx, storeID, marketplace, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load orders")
	}

	campaignOrders := make([]CampaignOrder, 0, len(orders))
	for _, order := range orders {
		perUnit := profitByProduct[order.ProductID]
		if normalized, ok := NormalizeCampaignOrder(order, perUnit); ok {
			campaignOrders = append(campaignOrders, normalized)
		}
	}

	return &Result{
		Products:   priced,
		Categories: CategoryRollups(priced),
		Campaigns:  CampaignImpacts(campaignOrders),
		Worst:      WorstProducts(priced),
	}, nil
}

// PriceProducts prices the store's current product snapshots without running
// the folds. Used by the product listing surface.
func (s *service) PriceProducts(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]PricedProduct, error) {
	priced, _, err := s.priceStore(ctx, storeID, marketplace)
	return priced, err
}

func (s *service) priceStore(ctx context.Context, storeID uuid.UUID, marketplace enums.Marketplace) ([]PricedProduct, map[uuid.UUID]decimal.Decimal, error) {
	rows, err := s.source.ListProducts(ctx, storeID, marketplace)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	priced := make([]PricedProduct, 0, len(rows))
	profitByProduct := make(map[uuid.UUID]decimal.Decimal, len(rows))
	for _, row := range rows {
		shippingCost, err := s.shipping.ResolveShippingCost(ctx, storeID, marketplace, enums.RateTypeDesi, row.Desi)
		if err != nil {
			return nil, nil, err
		}

		profit := finance.CalculateProfit(finance.ProfitInput{
			SalesPrice:     row.SalesPrice,
			BuyPrice:       row.BuyPrice,
			CommissionRate: row.CommissionRate,
			VATRate:        row.VATRate,
			ShippingCost:   shippingCost,
			ExtraCost:      row.ExtraCost,
			AdCost:         row.AdCost,
		})
		priced = append(priced, NormalizeProduct(row, profit))
		profitByProduct[row.ID] = profit.NetProfit
	}
	return priced, profitByProduct, nil
}
