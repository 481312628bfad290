package interfaces

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/finflow/internal/finance/application"
	"github.com/finflow/finflow/internal/finance/domain"
)

var errMockFailure = errors.New("mock failure")

type MockCategoryService struct {
	categories []domain.Category
	shouldFail bool
}

func (m *MockCategoryService) List(_ context.Context, _ string) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errMockFailure
	}
	return m.categories, nil
}

func (m *MockCategoryService) EnsureDefaults(_ context.Context, _ string) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errMockFailure
	}
	return m.categories, nil
}

type MockSavingsService struct {
	goals      []domain.SavingsGoal
	created    *domain.SavingsGoal
	lastUpdate domain.SavingsGoalUpdate
	err        error
}

func (m *MockSavingsService) List(_ context.Context, _ string) ([]domain.SavingsGoal, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.goals, nil
}

func (m *MockSavingsService) Create(_ context.Context, input application.CreateGoalInput) (*domain.SavingsGoal, error) {
	if m.err != nil {
		return nil, m.err
	}
	goal := &domain.SavingsGoal{
		ID:           uuid.New(),
		UserID:       input.UserID,
		Name:         input.Name,
		TargetAmount: input.TargetAmount,
		Deadline:     input.Deadline,
		CreatedAt:    time.Now(),
	}
	m.created = goal
	return goal, nil
}

func (m *MockSavingsService) Update(_ context.Context, id uuid.UUID, _ string, update domain.SavingsGoalUpdate) (*domain.SavingsGoal, error) {
	m.lastUpdate = update
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SavingsGoal{ID: id}, nil
}

func (m *MockSavingsService) Delete(_ context.Context, _ uuid.UUID, _ string) error {
	return m.err
}

type MockSettingsService struct {
	settings  *domain.UserSettings
	lastInput application.SettingsInput
	err       error
}

func (m *MockSettingsService) GetForUser(_ context.Context, _ string) (*domain.UserSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.settings, nil
}

func (m *MockSettingsService) Upsert(_ context.Context, userID string, input application.SettingsInput) (*domain.UserSettings, error) {
	m.lastInput = input
	if m.err != nil {
		return nil, m.err
	}
	return &domain.UserSettings{
		ID:            uuid.New(),
		UserID:        userID,
		GrossIncome:   input.GrossIncome,
		RedLineAmount: input.RedLineAmount,
		Currency:      input.Currency,
		Theme:         input.Theme,
	}, nil
}

type MockTransactionHandlerService struct {
	transactions []domain.Transaction
	summary      *application.TransactionSummary
	err          error
}

func (m *MockTransactionHandlerService) CreateTransaction(_ context.Context, transaction *domain.Transaction) error {
	if m.err != nil {
		return m.err
	}
	transaction.ID = uuid.New()
	m.transactions = append(m.transactions, *transaction)
	return nil
}

func (m *MockTransactionHandlerService) GetUserTransactions(_ context.Context, _ string, _ domain.TransactionFilter) ([]domain.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.transactions, nil
}

func (m *MockTransactionHandlerService) DeleteTransaction(_ context.Context, _ uuid.UUID, _ string) error {
	return m.err
}

func (m *MockTransactionHandlerService) GetTransactionSummary(_ context.Context, _ string, _, _ time.Time) (*application.TransactionSummary, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.summary, nil
}

type MockErasureService struct {
	clearedFor []string
	err        error
}

func (m *MockErasureService) ClearAllUserData(_ context.Context, userID string) error {
	if m.err != nil {
		return m.err
	}
	m.clearedFor = append(m.clearedFor, userID)
	return nil
}
