package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"marketplace/api/models"
)

const (
	categorySpecificCountsView = "category_attribute_counts"
	generalCountsView          = "general_attribute_counts"
)

// AttributeCountStore reads the pre-aggregated attribute count views in
// PostgreSQL. Refreshing the views is someone else's job.
type AttributeCountStore struct {
	db *sql.DB
}

func NewAttributeCountStore(db *sql.DB) *AttributeCountStore {
	return &AttributeCountStore{db: db}
}

func (s *AttributeCountStore) QueryCategorySpecific(ctx context.Context, categoryIDs []string) ([]models.AttributeCount, error) {
	return s.query(ctx, categorySpecificCountsView, categoryIDs)
}

func (s *AttributeCountStore) QueryGeneral(ctx context.Context, categoryIDs []string) ([]models.AttributeCount, error) {
	return s.query(ctx, generalCountsView, categoryIDs)
}

func (s *AttributeCountStore) query(ctx context.Context, view string, categoryIDs []string) ([]models.AttributeCount, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	// view is one of the constants above, never user input.
	query := fmt.Sprintf(`
		SELECT category_id, attribute_key, attribute_label, attribute_type,
		       value_text, value_number, item_count
		FROM %s
		WHERE category_id = ANY($1)
		ORDER BY attribute_key, value_text, value_number
	`, view)

	rows, err := s.db.QueryContext(ctx, query, pq.Array(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", view, err)
	}
	defer rows.Close()

	var results []models.AttributeCount
	for rows.Next() {
		var (
			row         models.AttributeCount
			attrType    sql.NullString
			valueText   sql.NullString
			valueNumber sql.NullFloat64
		)
		if err := rows.Scan(
			&row.CategoryID,
			&row.AttributeKey,
			&row.AttributeLabel,
			&attrType,
			&valueText,
			&valueNumber,
			&row.ItemCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", view, err)
		}
		if attrType.Valid {
			row.AttributeType = &attrType.String
		}
		if valueText.Valid {
			row.ValueText = &valueText.String
		}
		if valueNumber.Valid {
			row.ValueNumber = &valueNumber.Float64
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", view, err)
	}
	return results, nil
}
