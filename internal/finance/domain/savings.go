package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type SavingsGoal struct {
	ID            uuid.UUID  `json:"id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	Deadline      *time.Time `json:"deadline"`
	CreatedAt     time.Time  `json:"created_at"`
}

// SavingsGoalUpdate carries a partial update. Nil pointer means "leave the
// field alone". Deadline is the exception: it is nullable on the row, so a
// caller clearing it sets SetDeadline with a nil Deadline.
type SavingsGoalUpdate struct {
	Name          *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      *time.Time
	SetDeadline   bool
}

func (u SavingsGoalUpdate) Empty() bool {
	return u.Name == nil && u.TargetAmount == nil && u.CurrentAmount == nil && !u.SetDeadline
}

type SavingsGoalRepository interface {
	// FindByUser returns the user's goals newest-first.
	FindByUser(ctx context.Context, userID string) ([]SavingsGoal, error)
	FindByID(ctx context.Context, id uuid.UUID) (*SavingsGoal, error)
	Insert(ctx context.Context, goal *SavingsGoal) error
	Update(ctx context.Context, id uuid.UUID, update SavingsGoalUpdate) (*SavingsGoal, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
