package facets

import (
	"sort"

	"marketplace/api/logger"
	"marketplace/api/models"
)

// Merge folds category-specific and general attribute counts into facet
// groups keyed by attribute key.
//
// Category-specific rows are visited first, so their label and type win
// when both sources carry the same key. Counts for a repeated
// (key, value) pair are summed. Each group's values end up sorted by count,
// highest first, keeping first-seen order on ties. Rows with neither or both
// value columns set, or with a NaN or infinite number, are logged and skipped.
func Merge(categorySpecific, general []models.AttributeCount, log *logger.Logger) *models.FacetGroups {
	groups := models.NewFacetGroups()
	positions := make(map[string]map[models.FacetValue]int)

	for _, source := range [][]models.AttributeCount{categorySpecific, general} {
		for _, row := range source {
			value, err := row.Value()
			if err != nil {
				log.Warn("Skipping malformed attribute count",
					"attribute_key", row.AttributeKey,
					"category_id", row.CategoryID,
					"error", err,
				)
				continue
			}

			group, ok := groups.Get(row.AttributeKey)
			if !ok {
				group = &models.FacetGroup{
					Label:  row.AttributeLabel,
					Type:   row.AttributeType,
					Values: []models.FacetValueCount{},
				}
				groups.Set(row.AttributeKey, group)
				positions[row.AttributeKey] = make(map[models.FacetValue]int)
			}

			index := positions[row.AttributeKey]
			if i, seen := index[value]; seen {
				group.Values[i].Count += row.ItemCount
				continue
			}
			index[value] = len(group.Values)
			group.Values = append(group.Values, models.FacetValueCount{Value: value, Count: row.ItemCount})
		}
	}

	for pair := groups.Oldest(); pair != nil; pair = pair.Next() {
		values := pair.Value.Values
		sort.SliceStable(values, func(i, j int) bool {
			return values[i].Count > values[j].Count
		})
	}
	return groups
}
