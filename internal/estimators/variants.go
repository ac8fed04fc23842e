package estimators

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
)

// VariantEstimate allocates a slice of the product's monthly sales to one
// variant, proportional to its share of the review count.
type VariantEstimate struct {
	Name           string          `json:"name"`
	ReviewCount    int             `json:"review_count"`
	ReviewShare    decimal.Decimal `json:"review_share"`
	EstimatedSales int             `json:"estimated_sales"`
}

// EstimateVariantSales splits totalMonthlySales across variants by review
// share, rounded to whole units. No reviews at all means no signal, so every
// variant gets a zero share rather than an even split. Output is sorted by
// estimated sales descending, variant name breaking ties.
func EstimateVariantSales(variants []models.ProductVariant, totalMonthlySales int) []VariantEstimate {
	if totalMonthlySales < 0 {
		totalMonthlySales = 0
	}

	totalReviews := 0
	for _, v := range variants {
		if v.ReviewCount > 0 {
			totalReviews += v.ReviewCount
		}
	}

	estimates := make([]VariantEstimate, 0, len(variants))
	for _, v := range variants {
		reviews := v.ReviewCount
		if reviews < 0 {
			reviews = 0
		}

		estimate := VariantEstimate{Name: v.Name, ReviewCount: reviews}
		if totalReviews > 0 {
			share := decimal.NewFromInt(int64(reviews)).
				Div(decimal.NewFromInt(int64(totalReviews)))
			estimate.ReviewShare = share.Round(4)
			estimate.EstimatedSales = int(share.
				Mul(decimal.NewFromInt(int64(totalMonthlySales))).
				Round(0).IntPart())
		}
		estimates = append(estimates, estimate)
	}

	sort.SliceStable(estimates, func(i, j int) bool {
		if estimates[i].EstimatedSales != estimates[j].EstimatedSales {
			return estimates[i].EstimatedSales > estimates[j].EstimatedSales
		}
		return estimates[i].Name < estimates[j].Name
	})
	return estimates
}
