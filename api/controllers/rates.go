package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/api/responses"
	"github.com/sellerboard/sellerboard-backend/api/validators"
	"github.com/sellerboard/sellerboard-backend/internal/shipping"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
)

type overrideRequest struct {
	Marketplace enums.Marketplace `json:"marketplace" validate:"required"`
	RateType    enums.RateType    `json:"rate_type" validate:"required"`
	MinValue    decimal.Decimal   `json:"min_value"`
	MaxValue    decimal.Decimal   `json:"max_value" validate:"required"`
	Cost        decimal.Decimal   `json:"cost" validate:"required"`
	VATIncluded bool              `json:"vat_included"`
}

func (req overrideRequest) toInput() shipping.OverrideInput {
	return shipping.OverrideInput{
		Marketplace: req.Marketplace,
		RateType:    req.RateType,
		MinValue:    req.MinValue,
		MaxValue:    req.MaxValue,
		Cost:        req.Cost,
		VATIncluded: req.VATIncluded,
	}
}

// RateTable returns the store's effective tier table for one marketplace.
func RateTable(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rate service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		marketplace, err := marketplaceParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tiers, err := svc.MergedTable(r.Context(), storeID, marketplace)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"tiers": tiers})
	}
}

// RateResolve resolves the shipping cost for a single desi or price value.
func RateResolve(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rate service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		marketplace, err := marketplaceParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rateType := enums.RateType(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("rate_type"))))
		if !rateType.IsValid() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid rate type").
				WithDetails(map[string]any{"field": "rate_type"}))
			return
		}

		value, err := decimalParam(r, "value")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cost, err := svc.ResolveShippingCost(r.Context(), storeID, marketplace, rateType, value)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"rate_type": rateType,
			"value":     value,
			"cost":      cost,
		})
	}
}

// RateOverrideCreate stores one store-scoped tier override.
func RateOverrideCreate(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rate service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload overrideRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rate, err := svc.CreateOverride(r.Context(), storeID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, rate)
	}
}

// RateOverrideUpdate replaces an existing override's tier values.
func RateOverrideUpdate(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rate service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rateID, err := pathUUID("rateId", chi.URLParam(r, "rateId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload overrideRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rate, err := svc.UpdateOverride(r.Context(), storeID, rateID, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rate)
	}
}

// RateOverrideDelete removes one override, falling back to the default tier.
func RateOverrideDelete(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rate service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rateID, err := pathUUID("rateId", chi.URLParam(r, "rateId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteOverride(r.Context(), storeID, rateID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// RateOverridesReset drops every override for one marketplace.
func RateOverridesReset(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "rate service unavailable"))
			return
		}

		storeID, err := storeScope(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		marketplace, err := marketplaceParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.ResetOverrides(r.Context(), storeID, marketplace); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
