package domain

import (
	"context"

	"github.com/google/uuid"
)

type Category struct {
	ID          uuid.UUID `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"` // "income" or "expense"
	BudgetLimit *float64  `json:"budget_limit"`
	Color       string    `json:"color"`
}

type CategoryRepository interface {
	// FindByUser returns every category row for the user ordered by type
	// then name. Duplicate (type, name) rows are returned as stored.
	FindByUser(ctx context.Context, userID string) ([]Category, error)
	InsertBatch(ctx context.Context, categories []Category) ([]Category, error)
}
