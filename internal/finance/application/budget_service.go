package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/finflow/finflow/internal/finance/domain"
	financeErrors "github.com/finflow/finflow/internal/finance/errors"
)

type BudgetService struct {
	repo            domain.BudgetRepository
	categoryService CategoryServiceInterface
}

func NewBudgetService(repo domain.BudgetRepository, categoryService CategoryServiceInterface) *BudgetService {
	return &BudgetService{repo: repo, categoryService: categoryService}
}

func (s *BudgetService) ListForMonth(ctx context.Context, userID, month string) ([]domain.Budget, error) {
	budgets, err := s.repo.FindByUserAndMonth(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

// Set creates or replaces the budget for (user, category, month). The
// category must belong to the user.
func (s *BudgetService) Set(ctx context.Context, budget *domain.Budget) error {
	budget.ID = uuid.New()
	if err := budget.Validate(); err != nil {
		return err
	}

	categories, err := s.categoryService.List(ctx, budget.UserID)
	if err != nil {
		return err
	}
	valid := false
	for _, category := range categories {
		if category.ID == budget.CategoryID {
			valid = true
			break
		}
	}
	if !valid {
		return financeErrors.ErrInvalidCategory
	}

	return s.repo.Upsert(ctx, budget)
}

func (s *BudgetService) UpdateAmount(ctx context.Context, id uuid.UUID, userID string, amount float64) error {
	if amount <= 0 {
		return financeErrors.NewValidationError("budget amount must be greater than zero")
	}
	affected, err := s.repo.UpdateAmount(ctx, id, userID, amount)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrBudgetNotFound
	}
	return nil
}

func (s *BudgetService) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	affected, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrBudgetNotFound
	}
	return nil
}
