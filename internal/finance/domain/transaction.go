package domain

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	financeErrors "github.com/finflow/finflow/internal/finance/errors"
)

type Transaction struct {
	ID         uuid.UUID  `json:"id"`
	UserID     string     `json:"user_id"`
	CategoryID *uuid.UUID `json:"category_id"`
	Type       string     `json:"type"` // "income" or "expense"
	Amount     float64    `json:"amount"`
	Note       string     `json:"note"`
	Date       time.Time  `json:"date"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (t *Transaction) RoundToTwoDecimalPlaces() {
	t.Amount = math.Round(t.Amount*100) / 100
}

func (t *Transaction) Validate() error {
	if t.Type != "income" && t.Type != "expense" {
		return financeErrors.NewValidationError("transaction type must be income or expense")
	}
	if t.Amount <= 0 {
		return financeErrors.NewValidationError("transaction amount must be greater than zero")
	}
	if t.Date.IsZero() {
		return financeErrors.NewValidationError("transaction date is required")
	}
	return nil
}

type TransactionFilter struct {
	Type      string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
	Page      int
}

type TransactionRepository interface {
	Insert(ctx context.Context, transaction *Transaction) error
	// FindByUser returns transactions newest-first, optionally filtered by
	// type and date range, paginated.
	FindByUser(ctx context.Context, userID string, filter TransactionFilter) ([]Transaction, error)
	FindInDateRange(ctx context.Context, userID string, startDate, endDate time.Time) ([]Transaction, error)
	Delete(ctx context.Context, id uuid.UUID, userID string) (int64, error)
}
