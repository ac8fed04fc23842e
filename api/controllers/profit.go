package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/api/responses"
	"github.com/sellerboard/sellerboard-backend/api/validators"
	"github.com/sellerboard/sellerboard-backend/internal/finance"
	"github.com/sellerboard/sellerboard-backend/internal/shipping"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
)

type profitRequest struct {
	Marketplace    enums.Marketplace `json:"marketplace" validate:"required"`
	SalesPrice     decimal.Decimal   `json:"sales_price" validate:"required"`
	BuyPrice       decimal.Decimal   `json:"buy_price" validate:"required"`
	CommissionRate decimal.Decimal   `json:"commission_rate"`
	VATRate        decimal.Decimal   `json:"vat_rate"`
	ShippingCost   *decimal.Decimal  `json:"shipping_cost,omitempty"`
	Desi           *decimal.Decimal  `json:"desi,omitempty"`
	ExtraCost      decimal.Decimal   `json:"extra_cost"`
	AdCost         decimal.Decimal   `json:"ad_cost"`
}

type simulateRequest struct {
	profitRequest
	NewSalesPrice decimal.Decimal `json:"new_sales_price" validate:"required"`
}

// toInput resolves the shipping cost and maps the request onto the
// calculator's input. An explicit shipping_cost wins over desi resolution.
func (req profitRequest) toInput(r *http.Request, rates shipping.Service) (finance.ProfitInput, error) {
	if !req.Marketplace.IsValid() {
		return finance.ProfitInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid marketplace")
	}

	shippingCost := decimal.Zero
	switch {
	case req.ShippingCost != nil:
		shippingCost = *req.ShippingCost
	case req.Desi != nil:
		storeID, err := storeScope(r)
		if err != nil {
			return finance.ProfitInput{}, err
		}
		if rates == nil {
			return finance.ProfitInput{}, pkgerrors.New(pkgerrors.CodeInternal, "rate service unavailable")
		}
		cost, err := rates.ResolveShippingCost(r.Context(), storeID, req.Marketplace, enums.RateTypeDesi, *req.Desi)
		if err != nil {
			return finance.ProfitInput{}, err
		}
		shippingCost = cost
	}

	return finance.ProfitInput{
		SalesPrice:     req.SalesPrice,
		BuyPrice:       req.BuyPrice,
		CommissionRate: req.CommissionRate,
		VATRate:        req.VATRate,
		ShippingCost:   shippingCost,
		ExtraCost:      req.ExtraCost,
		AdCost:         req.AdCost,
	}, nil
}

// ProfitCalculate prices a single sale into a full cost breakdown.
func ProfitCalculate(rates shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload profitRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(r, rates)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, finance.CalculateProfit(input))
	}
}

// ProfitSimulate compares the current pricing against a hypothetical price.
func ProfitSimulate(rates shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload simulateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(r, rates)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, finance.SimulatePriceChange(input, payload.NewSalesPrice))
	}
}
