package application

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/finflow/internal/finance/domain"
	financeErrors "github.com/finflow/finflow/internal/finance/errors"
)

type CreateGoalInput struct {
	UserID       string
	Name         string
	TargetAmount float64
	Deadline     *time.Time
}

type SavingsService struct {
	repo domain.SavingsGoalRepository
}

func NewSavingsService(repo domain.SavingsGoalRepository) *SavingsService {
	return &SavingsService{repo: repo}
}

func (s *SavingsService) List(ctx context.Context, userID string) ([]domain.SavingsGoal, error) {
	goals, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goals == nil {
		return []domain.SavingsGoal{}, nil
	}
	return goals, nil
}

func (s *SavingsService) Create(ctx context.Context, input CreateGoalInput) (*domain.SavingsGoal, error) {
	if input.Name == "" {
		return nil, financeErrors.NewValidationError("goal name is required")
	}
	if input.TargetAmount <= 0 {
		return nil, financeErrors.NewValidationError("target amount must be greater than zero")
	}

	goal := &domain.SavingsGoal{
		ID:            uuid.New(),
		UserID:        input.UserID,
		Name:          input.Name,
		TargetAmount:  input.TargetAmount,
		CurrentAmount: 0,
		Deadline:      input.Deadline,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Insert(ctx, goal); err != nil {
		return nil, err
	}
	return goal, nil
}

// Update applies only the fields present in the partial update. Whether
// current_amount stays below target_amount is deliberately not checked here.
func (s *SavingsService) Update(ctx context.Context, id uuid.UUID, userID string, update domain.SavingsGoalUpdate) (*domain.SavingsGoal, error) {
	if update.Empty() {
		return nil, financeErrors.ErrEmptyUpdate
	}
	if update.Name != nil && *update.Name == "" {
		return nil, financeErrors.NewValidationError("goal name cannot be empty")
	}
	if update.TargetAmount != nil && *update.TargetAmount <= 0 {
		return nil, financeErrors.NewValidationError("target amount must be greater than zero")
	}

	if err := s.checkOwnership(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, update)
}

func (s *SavingsService) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	if err := s.checkOwnership(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *SavingsService) checkOwnership(ctx context.Context, id uuid.UUID, userID string) error {
	goal, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return financeErrors.ErrGoalNotFound
		}
		return err
	}
	if goal.UserID != userID {
		return financeErrors.ErrUnauthorizedAccess
	}
	return nil
}
