package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/finflow/finflow/internal/finance/domain"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) FindByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	query := `
		SELECT id, user_id, name, type, budget_limit, color
		FROM categories
		WHERE user_id = $1
		ORDER BY type, name
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.BudgetLimit, &category.Color); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// InsertBatch inserts all categories in one statement and returns the stored
// rows with their generated ids.
func (r *CategoryRepository) InsertBatch(ctx context.Context, categories []domain.Category) ([]domain.Category, error) {
	if len(categories) == 0 {
		return nil, nil
	}

	placeholders := make([]string, 0, len(categories))
	args := make([]interface{}, 0, len(categories)*5)
	for i, category := range categories {
		base := i * 5
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5))
		args = append(args, category.UserID, category.Name, category.Type, category.BudgetLimit, category.Color)
	}

	query := `
		INSERT INTO categories (user_id, name, type, budget_limit, color)
		VALUES ` + strings.Join(placeholders, ", ") + `
		RETURNING id, user_id, name, type, budget_limit, color
	`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var inserted []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.UserID, &category.Name, &category.Type, &category.BudgetLimit, &category.Color); err != nil {
			return nil, err
		}
		inserted = append(inserted, category)
	}
	return inserted, rows.Err()
}
