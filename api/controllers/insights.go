package controllers

import (
	"net/http"

	"github.com/sellerboard/sellerboard-backend/api/responses"
	"github.com/sellerboard/sellerboard-backend/internal/analytics"
	"github.com/sellerboard/sellerboard-backend/internal/insights"
	"github.com/sellerboard/sellerboard-backend/internal/reports"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
	"github.com/sellerboard/sellerboard-backend/pkg/logger"
)

// Prompt size caps for the projection handed to the summarizer.
const (
	maxProjectionCategories = 10
	maxProjectionCampaigns  = 10
	maxProjectionWorst      = 5
)

// InsightSummary runs the dashboard aggregation and asks the summarizer for
// a narrative readout of the result.
func InsightSummary(analyticsSvc analytics.Service, insightSvc insights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if analyticsSvc == nil || insightSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "insight service unavailable"))
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

		result, err := analyticsSvc.Dashboard(r.Context(), storeID, marketplace, since)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report := reports.Build(result.Products, result, "", marketplace)
		projection := insights.Projection{
			Marketplace: marketplace,
			KPI:         report.KPI,
			Categories:  truncateCategories(result.Categories),
			Campaigns:   truncateCampaigns(result.Campaigns),
			Worst:       analytics.TopWorst(result.Worst, maxProjectionWorst),
		}

		insight, err := insightSvc.Summarize(r.Context(), storeID, projection)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, insight)
	}
}

func truncateCategories(rollups []analytics.CategoryRollup) []analytics.CategoryRollup {
	if len(rollups) <= maxProjectionCategories {
		return rollups
	}
	return rollups[:maxProjectionCategories]
}

func truncateCampaigns(impacts []analytics.CampaignImpact) []analytics.CampaignImpact {
	if len(impacts) <= maxProjectionCampaigns {
		return impacts
	}
	return impacts[:maxProjectionCampaigns]
}
