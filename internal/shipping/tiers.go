package shipping

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sellerboard/sellerboard-backend/pkg/db/models"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
	pkgerrors "github.com/sellerboard/sellerboard-backend/pkg/errors"
)

// ErrNoRateTable signals that a resolution was attempted against an empty
// tier set. Callers must surface it; silently pricing shipping at zero would
// corrupt every profit figure downstream.
var ErrNoRateTable = pkgerrors.New(pkgerrors.CodeStateConflict, "no shipping tiers configured for rate type")

// Tier is one bracket of a shipping rate table.
type Tier struct {
	RateType    enums.RateType  `json:"rate_type"`
	MinValue    decimal.Decimal `json:"min_value"`
	MaxValue    decimal.Decimal `json:"max_value"`
	Cost        decimal.Decimal `json:"cost"`
	VATIncluded bool            `json:"vat_included"`
}

// TierFromModel converts a persisted rate row into its value form.
func TierFromModel(row models.ShippingRate) Tier {
	return Tier{
		RateType:    row.RateType,
		MinValue:    row.MinValue,
		MaxValue:    row.MaxValue,
		Cost:        row.Cost,
		VATIncluded: row.VATIncluded,
	}
}

// TiersFromModels converts persisted rate rows into value form, preserving order.
func TiersFromModels(rows []models.ShippingRate) []Tier {
	tiers := make([]Tier, 0, len(rows))
	for _, row := range rows {
		tiers = append(tiers, TierFromModel(row))
	}
	return tiers
}

// ResolveCost returns the cost of the first tier of the requested rate type
// whose bracket contains value, scanning in ascending min-value order. Values
// above every bracket resolve to the top tier's cost (the table is treated as
// open-ended at the top). An empty tier set for the rate type returns
// ErrNoRateTable.
func ResolveCost(tiers []Tier, rateType enums.RateType, value decimal.Decimal) (decimal.Decimal, error) {
	matching := make([]Tier, 0, len(tiers))
	for _, tier := range tiers {
		if tier.RateType == rateType {
			matching = append(matching, tier)
		}
	}
	if len(matching) == 0 {
		return decimal.Zero, ErrNoRateTable
	}

	sort.Slice(matching, func(i, j int) bool {
		return matching[i].MinValue.LessThan(matching[j].MinValue)
	})

	for _, tier := range matching {
		if value.LessThanOrEqual(tier.MaxValue) {
			return tier.Cost, nil
		}
	}
	return matching[len(matching)-1].Cost, nil
}

// desiLadder is the fixed fallback table used when neither the marketplace
// nor the store has a configured desi table. Costs are VAT inclusive.
var desiLadder = []struct {
	min, max, cost string
}{
	{"0", "1", "29.90"},
	{"1", "2", "39.90"},
	{"2", "3", "49.90"},
	{"3", "5", "64.90"},
	{"5", "10", "99.90"},
	{"10", "15", "149.90"},
	{"15", "20", "199.90"},
	{"20", "30", "279.90"},
}

// DefaultDesiTiers returns the built-in eight bucket desi ladder. Shipments
// above 30 desi resolve to the top bucket's cost.
func DefaultDesiTiers() []Tier {
	tiers := make([]Tier, 0, len(desiLadder))
	for _, bucket := range desiLadder {
		tiers = append(tiers, Tier{
			RateType:    enums.RateTypeDesi,
			MinValue:    decimal.RequireFromString(bucket.min),
			MaxValue:    decimal.RequireFromString(bucket.max),
			Cost:        decimal.RequireFromString(bucket.cost),
			VATIncluded: true,
		})
	}
	return tiers
}
