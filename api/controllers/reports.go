package controllers

import (
	"net/http"

	"github.com/sellerboard/sellerboard-backend/api/responses"
	"github.com/sellerboard/sellerboard-backend/internal/analytics"
	"github.com/sellerboard/sellerboard-backend/internal/reports"
	"github.com/sellerboard/sellerboard-backend/internal/stores"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
)

// Report flattens the store's analytics into an export-ready dataset with
// headline KPIs, one row per product, and the aggregate tables.
func Report(analyticsSvc analytics.Service, storeSvc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if analyticsSvc == nil || storeSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "report service unavailable"))
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
		since, err := rangeParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := storeSvc.GetByID(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := analyticsSvc.Dashboard(r.Context(), storeID, marketplace, since)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report := reports.Build(result.Products, result, store.Name, marketplace)
		responses.WriteSuccess(w, report)
	}
}
