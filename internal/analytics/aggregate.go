package analytics

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type campaignKey struct {
	name      string
	validFrom int64
}

// CategoryRollups folds priced products into one rollup per category. Output
// is sorted by revenue descending, category name breaking ties.
func CategoryRollups(products []PricedProduct) []CategoryRollup {
	groups := make(map[string]*CategoryRollup)
	returnRateSums := make(map[string]decimal.Decimal)

	for _, p := range products {
		group, ok := groups[p.Category]
		if !ok {
			group = &CategoryRollup{Category: p.Category}
			groups[p.Category] = group
		}
		group.Revenue = group.Revenue.Add(p.Profit.SalesPrice)
		group.Profit = group.Profit.Add(p.Profit.NetProfit)
		group.ProductCount++
		returnRateSums[p.Category] = returnRateSums[p.Category].Add(p.ReturnRate)
	}

	rollups := make([]CategoryRollup, 0, len(groups))
	for category, group := range groups {
		count := decimal.NewFromInt(int64(group.ProductCount))
		if group.Revenue.IsPositive() {
			group.Margin = group.Profit.Div(group.Revenue).Mul(hundred).Round(1)
		}
		group.Revenue = group.Revenue.Round(2)
		group.Profit = group.Profit.Round(2)
		group.AvgReturnRate = returnRateSums[category].Div(count).Round(1)
		rollups = append(rollups, *group)
	}

	sort.Slice(rollups, func(i, j int) bool {
		if !rollups[i].Revenue.Equal(rollups[j].Revenue) {
			return rollups[i].Revenue.GreaterThan(rollups[j].Revenue)
		}
		return rollups[i].Category < rollups[j].Category
	})
	return rollups
}

// CampaignImpacts folds campaign-attributed orders into one impact row per
// campaign run. Runs are identified by (name, validFrom) so a recurring
// campaign yields one row per window. ProfitDelta compares the run's average
// per-order profit against the same orders with the seller share removed,
// isolating what the campaign itself cost.
func CampaignImpacts(orders []CampaignOrder) []CampaignImpact {
	groups := make(map[campaignKey]*CampaignImpact)
	shareCosts := make(map[campaignKey]decimal.Decimal)

	for _, o := range orders {
		key := campaignKey{name: o.Name, validFrom: o.ValidFrom.UnixNano()}
		group, ok := groups[key]
		if !ok {
			group = &CampaignImpact{
				CampaignName:     o.Name,
				ValidFrom:        o.ValidFrom,
				ValidUntil:       o.ValidUntil,
				CampaignRate:     o.CampaignRate,
				SellerShare:      o.SellerShare,
				MarketplaceShare: o.MarketplaceShare,
			}
			groups[key] = group
		}
		group.CampaignOrders += o.Orders
		group.CampaignRevenue = group.CampaignRevenue.Add(o.Revenue)
		group.CampaignProfit = group.CampaignProfit.Add(o.Profit)
		shareCosts[key] = shareCosts[key].Add(o.Revenue.Mul(o.SellerShare))
	}

	impacts := make([]CampaignImpact, 0, len(groups))
	for key, group := range groups {
		if group.CampaignOrders > 0 {
			orderCount := decimal.NewFromInt(int64(group.CampaignOrders))
			group.ProfitDelta = shareCosts[key].Neg().Div(orderCount).Round(2)
		}
		group.CampaignRevenue = group.CampaignRevenue.Round(2)
		group.CampaignProfit = group.CampaignProfit.Round(2)
		impacts = append(impacts, *group)
	}

	sort.Slice(impacts, func(i, j int) bool {
		if !impacts[i].CampaignRevenue.Equal(impacts[j].CampaignRevenue) {
			return impacts[i].CampaignRevenue.GreaterThan(impacts[j].CampaignRevenue)
		}
		if impacts[i].CampaignName != impacts[j].CampaignName {
			return impacts[i].CampaignName < impacts[j].CampaignName
		}
		return impacts[i].ValidFrom.Before(impacts[j].ValidFrom)
	})
	return impacts
}

// WorstProducts returns the loss-makers, worst first. Products at or above
// break-even never appear.
func WorstProducts(products []PricedProduct) []PricedProduct {
	worst := make([]PricedProduct, 0)
	for _, p := range products {
		if p.Profit.NetProfit.IsNegative() {
			worst = append(worst, p)
		}
	}
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].Profit.NetProfit.LessThan(worst[j].Profit.NetProfit)
	})
	return worst
}

// TopWorst truncates a worst-product list for dashboard display.
func TopWorst(worst []PricedProduct, n int) []PricedProduct {
	if n < 0 {
		n = 0
	}
	if len(worst) <= n {
		return worst
	}
	return worst[:n]
}
