// api/store/clickhouse_count_store.go
package store

import (
	"context"
	"fmt"

	"marketplace/api/database"
	"marketplace/api/models"
)

// ClickHouseCountStore serves attribute counts from SummingMergeTree tables
// in ClickHouse. It is a drop-in replacement for AttributeCountStore,
// selected with COUNTS_BACKEND=clickhouse.
type ClickHouseCountStore struct {
	DB *database.ClickHouseClient
}

func NewClickHouseCountStore(chClient *database.ClickHouseClient) *ClickHouseCountStore {
	return &ClickHouseCountStore{
		DB: chClient,
	}
}

func (s *ClickHouseCountStore) QueryCategorySpecific(ctx context.Context, categoryIDs []string) ([]models.AttributeCount, error) {
	return s.query(ctx, categorySpecificCountsView, categoryIDs)
}

func (s *ClickHouseCountStore) QueryGeneral(ctx context.Context, categoryIDs []string) ([]models.AttributeCount, error) {
	return s.query(ctx, generalCountsView, categoryIDs)
}

func (s *ClickHouseCountStore) query(ctx context.Context, table string, categoryIDs []string) ([]models.AttributeCount, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	// Parts may not be merged yet, so rows are summed at read time.
	query := fmt.Sprintf(`
		SELECT category_id, attribute_key, any(attribute_label), any(attribute_type),
		       value_text, value_number, sum(item_count) AS item_count
		FROM %s
		WHERE has(?, category_id)
		GROUP BY category_id, attribute_key, value_text, value_number
		ORDER BY attribute_key, value_text, value_number
	`, table)

	rows, err := s.DB.Conn.Query(ctx, query, categoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var results []models.AttributeCount
	for rows.Next() {
		var (
			row       models.AttributeCount
			itemCount uint64
		)
		if err := rows.Scan(
			&row.CategoryID,
			&row.AttributeKey,
			&row.AttributeLabel,
			&row.AttributeType,
			&row.ValueText,
			&row.ValueNumber,
			&itemCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		row.ItemCount = int64(itemCount)
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows for %s: %w", table, err)
	}
	return results, nil
}
