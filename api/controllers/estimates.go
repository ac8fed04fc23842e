package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sellerboard/sellerboard-backend/api/responses"
	"github.com/sellerboard/sellerboard-backend/api/validators"
	"github.com/sellerboard/sellerboard-backend/internal/estimators"
	product "github.com/sellerboard/sellerboard-backend/internal/products"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
)

// VariantEstimates splits a product's monthly sales across its variants in
// proportion to review counts.
func VariantEstimates(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
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

		barcode := strings.TrimSpace(chi.URLParam(r, "barcode"))
		if barcode == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "barcode is required"))
			return
		}

		row, err := svc.GetByBarcode(r.Context(), storeID, marketplace, barcode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		estimates := estimators.EstimateVariantSales(row.Variants, row.MonthlySales)
		responses.WriteSuccess(w, map[string]any{
			"barcode":       row.Barcode,
			"monthly_sales": row.MonthlySales,
			"variants":      estimates,
		})
	}
}

// TrafficAnalysis estimates a listing's organic/paid/external traffic split.
func TrafficAnalysis(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload estimators.TrafficInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, estimators.AnalyzeTrafficSources(payload))
	}
}
