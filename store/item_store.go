package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// activeItemPredicate is shared by every item query so prices, totals and
// per-category tallies always describe the same set of items.
const activeItemPredicate = `status = 'published' AND (expires_at IS NULL OR expires_at > NOW())`

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

// QueryActivePrices returns one entry per active item in the given
// categories. Items without a price yield a nil entry.
func (s *ItemStore) QueryActivePrices(ctx context.Context, categoryIDs []string) ([]*float64, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	query := `SELECT price::float8 FROM items WHERE category_id = ANY($1) AND ` + activeItemPredicate
	rows, err := s.db.QueryContext(ctx, query, pq.Array(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query active item prices: %w", err)
	}
	defer rows.Close()

	var prices []*float64
	for rows.Next() {
		var price sql.NullFloat64
		if err := rows.Scan(&price); err != nil {
			return nil, fmt.Errorf("failed to scan item price: %w", err)
		}
		if price.Valid {
			p := price.Float64
			prices = append(prices, &p)
		} else {
			prices = append(prices, nil)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item prices: %w", err)
	}
	return prices, nil
}

// CountActive counts active items in the given categories.
func (s *ItemStore) CountActive(ctx context.Context, categoryIDs []string) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM items WHERE category_id = ANY($1) AND ` + activeItemPredicate
	var count int64
	if err := s.db.QueryRowContext(ctx, query, pq.Array(categoryIDs)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active items: %w", err)
	}
	return count, nil
}

// QueryActiveCategoryIDs returns the category id of every active item in
// the given categories, one entry per item.
func (s *ItemStore) QueryActiveCategoryIDs(ctx context.Context, categoryIDs []string) ([]string, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	query := `SELECT category_id FROM items WHERE category_id = ANY($1) AND ` + activeItemPredicate
	rows, err := s.db.QueryContext(ctx, query, pq.Array(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query active item categories: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan item category: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item categories: %w", err)
	}
	return ids, nil
}
