package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/sellerboard/sellerboard-backend/api/responses"
	"github.com/sellerboard/sellerboard-backend/internal/analytics"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
)

var rangePresets = map[string]time.Duration{
	"7d":  7 * 24 * time.Hour,
	"30d": 30 * 24 * time.Hour,
	"90d": 90 * 24 * time.Hour,
}

const defaultRange = "30d"

func rangeParam(r *http.Request) (time.Time, error) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("range")))
	if raw == "" {
		raw = defaultRange
	}
	window, ok := rangePresets[raw]
	if !ok {
		return time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid range").
			WithDetails(map[string]any{"field": "range", "allowed": []string{"7d", "30d", "90d"}})
	}
	return time.Now().UTC().Add(-window), nil
}

// AnalyticsDashboard aggregates the store's priced products, category
// rollups, campaign impact, and worst performers for one time window.
func AnalyticsDashboard(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
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

		result, err := svc.Dashboard(r.Context(), storeID, marketplace, since)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
