package domain

import (
	"context"
	"regexp"

	"github.com/google/uuid"

	financeErrors "github.com/finflow/finflow/internal/finance/errors"
)

type Budget struct {
	ID         uuid.UUID `json:"id"`
	UserID     string    `json:"user_id"`
	CategoryID uuid.UUID `json:"category_id"`
	Amount     float64   `json:"amount"`
	Month      string    `json:"month"` // "YYYY-MM"
}

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func (b *Budget) Validate() error {
	if b.Amount <= 0 {
		return financeErrors.NewValidationError("budget amount must be greater than zero")
	}
	if !monthPattern.MatchString(b.Month) {
		return financeErrors.NewValidationError("budget month must be in YYYY-MM format")
	}
	return nil
}

type BudgetRepository interface {
	FindByUserAndMonth(ctx context.Context, userID, month string) ([]Budget, error)
	// Upsert inserts the budget or, when one exists for the same
	// (user, category, month), replaces its amount.
	Upsert(ctx context.Context, budget *Budget) error
	UpdateAmount(ctx context.Context, id uuid.UUID, userID string, amount float64) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) (int64, error)
}
