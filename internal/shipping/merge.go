package shipping

import (
	"fmt"
	"sort"
)

// tierKey identifies a tier for override matching. The lower bound is the
// unique key within one rate type.
func tierKey(tier Tier) string {
	return fmt.Sprintf("%s|%s", tier.RateType, tier.MinValue.Round(2))
}

// MergeTiers combines a default table with a store's overrides. An override
// sharing a default's (rate type, min value) key replaces that default tier
// entirely; overrides with no matching default are store-added tiers and are
// kept as-is. The result is sorted by rate type then ascending min value so
// repeated merges of the same inputs are byte-for-byte identical.
func MergeTiers(defaults, overrides []Tier) []Tier {
	merged := make(map[string]Tier, len(defaults)+len(overrides))
	for _, tier := range defaults {
		merged[tierKey(tier)] = tier
	}
	for _, tier := range overrides {
		merged[tierKey(tier)] = tier
	}

	result := make([]Tier, 0, len(merged))
	for _, tier := range merged {
		result = append(result, tier)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RateType != result[j].RateType {
			return result[i].RateType < result[j].RateType
		}
		return result[i].MinValue.LessThan(result[j].MinValue)
	})
	return result
}
