package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/finflow/finflow/internal/finance/domain"
)

type SavingsGoalRepository struct {
	db *sql.DB
}

func NewSavingsGoalRepository(db *sql.DB) *SavingsGoalRepository {
	return &SavingsGoalRepository{db: db}
}

func (r *SavingsGoalRepository) FindByUser(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, deadline, created_at
		FROM savings_goals
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []domain.SavingsGoal
	for rows.Next() {
		var goal domain.SavingsGoal
		if err := rows.Scan(&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

func (r *SavingsGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.SavingsGoal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, deadline, created_at
		FROM savings_goals
		WHERE id = $1
	`
	var goal domain.SavingsGoal
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *SavingsGoalRepository) Insert(ctx context.Context, goal *domain.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (id, user_id, name, target_amount, current_amount, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		goal.ID, goal.UserID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.CreatedAt)
	return err
}

// Update writes only the fields present in the partial update and returns
// the row as stored afterwards.
func (r *SavingsGoalRepository) Update(ctx context.Context, id uuid.UUID, update domain.SavingsGoalUpdate) (*domain.SavingsGoal, error) {
	var assignments []string
	var args []interface{}

	if update.Name != nil {
		args = append(args, *update.Name)
		assignments = append(assignments, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.TargetAmount != nil {
		args = append(args, *update.TargetAmount)
		assignments = append(assignments, fmt.Sprintf("target_amount = $%d", len(args)))
	}
	if update.CurrentAmount != nil {
		args = append(args, *update.CurrentAmount)
		assignments = append(assignments, fmt.Sprintf("current_amount = $%d", len(args)))
	}
	if update.SetDeadline {
		args = append(args, update.Deadline)
		assignments = append(assignments, fmt.Sprintf("deadline = $%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE savings_goals
		SET %s
		WHERE id = $%d
		RETURNING id, user_id, name, target_amount, current_amount, deadline, created_at
	`, strings.Join(assignments, ", "), len(args))

	var goal domain.SavingsGoal
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&goal.ID, &goal.UserID, &goal.Name, &goal.TargetAmount, &goal.CurrentAmount, &goal.Deadline, &goal.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *SavingsGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM savings_goals WHERE id = $1", id)
	return err
}
