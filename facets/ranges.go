package facets

import (
	"math"

	"marketplace/api/models"
)

// PriceRangeOf returns the min and max of the usable prices, or nil when
// there are none. Null, zero and NaN prices are not usable.
func PriceRangeOf(prices []*float64) *models.PriceRange {
	var r *models.PriceRange
	for _, p := range prices {
		if p == nil || *p == 0 || math.IsNaN(*p) {
			continue
		}
		if r == nil {
			r = &models.PriceRange{Min: *p, Max: *p}
			continue
		}
		r.Min = math.Min(r.Min, *p)
		r.Max = math.Max(r.Max, *p)
	}
	return r
}

// SubcategoryCounts tallies active items per category id. The requested
// category itself is left out so only drill-down targets remain.
func SubcategoryCounts(itemCategoryIDs []string, requested string) map[string]int64 {
	counts := make(map[string]int64)
	for _, id := range itemCategoryIDs {
		counts[id]++
	}
	if requested != "" {
		delete(counts, requested)
	}
	return counts
}
