package store

import (
	"context"
	"database/sql"
	"fmt"

	"marketplace/api/models"
)

type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore creates a new CategoryStore instance.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// ListAll returns every category as an (id, parent_id) pair.
func (s *CategoryStore) ListAll(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, parent_id FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var (
			id       string
			parentID sql.NullString
		)
		if err := rows.Scan(&id, &parentID); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		c := models.Category{ID: id}
		if parentID.Valid {
			c.ParentID = &parentID.String
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}
