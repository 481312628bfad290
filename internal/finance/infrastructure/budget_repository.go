package infrastructure

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/finflow/finflow/internal/finance/domain"
)

type BudgetRepository struct {
	db *sql.DB
}

func NewBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

func (r *BudgetRepository) FindByUserAndMonth(ctx context.Context, userID, month string) ([]domain.Budget, error) {
	query := `
		SELECT id, user_id, category_id, amount, month
		FROM budgets
		WHERE user_id = $1 AND month = $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(&budget.ID, &budget.UserID, &budget.CategoryID, &budget.Amount, &budget.Month); err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) Upsert(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (id, user_id, category_id, amount, month)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, category_id, month) DO UPDATE SET amount = EXCLUDED.amount
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		budget.ID, budget.UserID, budget.CategoryID, budget.Amount, budget.Month).Scan(&budget.ID)
}

func (r *BudgetRepository) UpdateAmount(ctx context.Context, id uuid.UUID, userID string, amount float64) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"UPDATE budgets SET amount = $1 WHERE id = $2 AND user_id = $3", amount, id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *BudgetRepository) Delete(ctx context.Context, id uuid.UUID, userID string) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
