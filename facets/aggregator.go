// Package facets turns pre-aggregated attribute and item counts into the
// filter sidebar structure for a marketplace category.
package facets

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"marketplace/api/logger"
	"marketplace/api/models"
)

// Read sources, as reported in QueryError.Source.
const (
	SourceCategories        = "categories"
	SourceCategorySpecific  = "category-specific attribute counts"
	SourceGeneral           = "general attribute counts"
	SourceActivePrices      = "active item prices"
	SourceActiveCount       = "active item count"
	SourceActiveCategoryIDs = "active item categories"
)

type CategoryStore interface {
	ListAll(ctx context.Context) ([]models.Category, error)
}

type AttributeCountStore interface {
	QueryCategorySpecific(ctx context.Context, categoryIDs []string) ([]models.AttributeCount, error)
	QueryGeneral(ctx context.Context, categoryIDs []string) ([]models.AttributeCount, error)
}

// ItemStore reads active items only. All three methods must apply the same
// active predicate (published and not expired) or the figures disagree.
type ItemStore interface {
	QueryActivePrices(ctx context.Context, categoryIDs []string) ([]*float64, error)
	CountActive(ctx context.Context, categoryIDs []string) (int64, error)
	QueryActiveCategoryIDs(ctx context.Context, categoryIDs []string) ([]string, error)
}

// QueryError reports which read failed.
type QueryError struct {
	Source string
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to query %s: %v", e.Source, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Aggregator computes the filter-count structure for a category. It keeps
// no state between calls.
type Aggregator struct {
	Categories CategoryStore
	Counts     AttributeCountStore
	Items      ItemStore
	Log        *logger.Logger
}

func NewAggregator(categories CategoryStore, counts AttributeCountStore, items ItemStore, log *logger.Logger) *Aggregator {
	return &Aggregator{
		Categories: categories,
		Counts:     counts,
		Items:      items,
		Log:        log,
	}
}

// Compute builds the facet response for categoryID, or for the whole
// catalog when categoryID is empty.
//
// The category list is read first. The five scoped reads then run
// concurrently; the first failure cancels the rest and is returned as a
// *QueryError. No partial response is ever produced.
func (a *Aggregator) Compute(ctx context.Context, categoryID string) (*models.FacetResponse, error) {
	categories, err := a.Categories.ListAll(ctx)
	if err != nil {
		return nil, &QueryError{Source: SourceCategories, Err: err}
	}
	scope := Expand(categoryID, categories)

	var (
		specific        []models.AttributeCount
		general         []models.AttributeCount
		prices          []*float64
		totalItems      int64
		itemCategoryIDs []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := a.Counts.QueryCategorySpecific(gctx, scope)
		if err != nil {
			return &QueryError{Source: SourceCategorySpecific, Err: err}
		}
		specific = rows
		return nil
	})
	g.Go(func() error {
		rows, err := a.Counts.QueryGeneral(gctx, scope)
		if err != nil {
			return &QueryError{Source: SourceGeneral, Err: err}
		}
		general = rows
		return nil
	})
	g.Go(func() error {
		rows, err := a.Items.QueryActivePrices(gctx, scope)
		if err != nil {
			return &QueryError{Source: SourceActivePrices, Err: err}
		}
		prices = rows
		return nil
	})
	g.Go(func() error {
		n, err := a.Items.CountActive(gctx, scope)
		if err != nil {
			return &QueryError{Source: SourceActiveCount, Err: err}
		}
		totalItems = n
		return nil
	})
	g.Go(func() error {
		rows, err := a.Items.QueryActiveCategoryIDs(gctx, scope)
		if err != nil {
			return &QueryError{Source: SourceActiveCategoryIDs, Err: err}
		}
		itemCategoryIDs = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	echo := categoryID
	if echo == "" {
		echo = models.AllCategories
	}

	resp := &models.FacetResponse{
		CategoryID:        echo,
		Filters:           Merge(specific, general, a.Log),
		TotalItems:        totalItems,
		PriceRange:        PriceRangeOf(prices),
		SubcategoryCounts: SubcategoryCounts(itemCategoryIDs, categoryID),
	}

	a.Log.Debug("Computed filter counts",
		"category_id", echo,
		"scope_size", len(scope),
		"facets", resp.Filters.Len(),
		"total_items", totalItems,
	)
	return resp, nil
}
