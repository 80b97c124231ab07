package wardrobe

import (
	"cmp"
	"slices"
	"strings"
)

// DefaultTopN bounds the ranked lists in Analytics.
const DefaultTopN = 5

// ItemUsage is the per-item view used in analytics rankings.
type ItemUsage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WearCount   int64  `json:"wearCount"`
	Price       int64  `json:"price"`
	CostPerWear int64  `json:"costPerWear"`
}

// ColorShare is the number and fraction of items of one color.
type ColorShare struct {
	Color string  `json:"color"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// Analytics summarizes a user's wardrobe.
type Analytics struct {
	TotalItems        int          `json:"totalItems"`
	TotalValue        int64        `json:"totalValue"`
	TotalWears        int64        `json:"totalWears"`
	CostPerWear       int64        `json:"costPerWear"`
	MostWorn          []ItemUsage  `json:"mostWorn"`
	WorstCostPerWear  []ItemUsage  `json:"worstCostPerWear"`
	ColorDistribution []ColorShare `json:"colorDistribution"`
}

// CostPerWear divides price by wears. An unworn item costs its full price.
func CostPerWear(price, wears int64) int64 {
	if wears <= 0 {
		return price
	}

	return price / wears
}

// ComputeAnalytics aggregates items into an Analytics summary. Ranked lists
// hold at most topN entries.
func ComputeAnalytics(items []Item, topN int) *Analytics {
	if topN <= 0 {
		topN = DefaultTopN
	}

	a := &Analytics{
		TotalItems:        len(items),
		MostWorn:          []ItemUsage{},
		WorstCostPerWear:  []ItemUsage{},
		ColorDistribution: []ColorShare{},
	}

	if len(items) == 0 {
		return a
	}

	usages := make([]ItemUsage, 0, len(items))
	colors := map[string]int{}

	for _, it := range items {
		a.TotalValue += it.Price
		a.TotalWears += it.WearCount

		usages = append(usages, ItemUsage{
			ID:          it.ID,
			Name:        it.Name,
			WearCount:   it.WearCount,
			Price:       it.Price,
			CostPerWear: CostPerWear(it.Price, it.WearCount),
		})

		color := strings.ToLower(strings.TrimSpace(it.Color))
		if color == "" {
			color = "unknown"
		}

		colors[color]++
	}

	a.CostPerWear = CostPerWear(a.TotalValue, a.TotalWears)

	mostWorn := slices.Clone(usages)
	slices.SortStableFunc(mostWorn, func(x, y ItemUsage) int {
		return cmp.Or(cmp.Compare(y.WearCount, x.WearCount), cmp.Compare(x.Name, y.Name))
	})
	a.MostWorn = mostWorn[:min(topN, len(mostWorn))]

	worst := slices.Clone(usages)
	slices.SortStableFunc(worst, func(x, y ItemUsage) int {
		return cmp.Or(cmp.Compare(y.CostPerWear, x.CostPerWear), cmp.Compare(x.Name, y.Name))
	})
	a.WorstCostPerWear = worst[:min(topN, len(worst))]

	for color, n := range colors {
		a.ColorDistribution = append(a.ColorDistribution, ColorShare{
			Color: color,
			Count: n,
			Share: float64(n) / float64(len(items)),
		})
	}

	slices.SortFunc(a.ColorDistribution, func(x, y ColorShare) int {
		return cmp.Or(cmp.Compare(y.Count, x.Count), cmp.Compare(x.Color, y.Color))
	})

	return a
}
