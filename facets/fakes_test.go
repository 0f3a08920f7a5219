package facets

import (
	"context"

	"marketplace/api/models"
)

// fakeStore implements every store interface with overridable funcs and
// static data for the rest.
type fakeStore struct {
	categories []models.Category
	specific   []models.AttributeCount
	general    []models.AttributeCount
	prices     []*float64
	total      int64
	itemCats   []string

	listAll    func(ctx context.Context) ([]models.Category, error)
	specificFn func(ctx context.Context, ids []string) ([]models.AttributeCount, error)
	generalFn  func(ctx context.Context, ids []string) ([]models.AttributeCount, error)
	pricesFn   func(ctx context.Context, ids []string) ([]*float64, error)
	countFn    func(ctx context.Context, ids []string) (int64, error)
	itemCatsFn func(ctx context.Context, ids []string) ([]string, error)
	lastScope  []string
}

func (f *fakeStore) ListAll(ctx context.Context) ([]models.Category, error) {
	if f.listAll != nil {
		return f.listAll(ctx)
	}
	return f.categories, nil
}

func (f *fakeStore) QueryCategorySpecific(ctx context.Context, ids []string) ([]models.AttributeCount, error) {
	f.lastScope = ids
	if f.specificFn != nil {
		return f.specificFn(ctx, ids)
	}
	return f.specific, nil
}

func (f *fakeStore) QueryGeneral(ctx context.Context, ids []string) ([]models.AttributeCount, error) {
	if f.generalFn != nil {
		return f.generalFn(ctx, ids)
	}
	return f.general, nil
}

func (f *fakeStore) QueryActivePrices(ctx context.Context, ids []string) ([]*float64, error) {
	if f.pricesFn != nil {
		return f.pricesFn(ctx, ids)
	}
	return f.prices, nil
}

func (f *fakeStore) CountActive(ctx context.Context, ids []string) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, ids)
	}
	return f.total, nil
}

func (f *fakeStore) QueryActiveCategoryIDs(ctx context.Context, ids []string) ([]string, error) {
	if f.itemCatsFn != nil {
		return f.itemCatsFn(ctx, ids)
	}
	return f.itemCats, nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func category(id string, parent string) models.Category {
	c := models.Category{ID: id}
	if parent != "" {
		c.ParentID = strPtr(parent)
	}
	return c
}

func textCount(categoryID, key, label, value string, n int64) models.AttributeCount {
	return models.AttributeCount{
		CategoryID:     categoryID,
		AttributeKey:   key,
		AttributeLabel: label,
		ValueText:      strPtr(value),
		ItemCount:      n,
	}
}
