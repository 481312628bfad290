package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/finflow/finflow/internal/finance/domain"
)

// In-memory repositories used by the service tests.

type MockCategoryRepository struct {
	Categories  []domain.Category
	InsertCalls int
	FindErr     error
}

func (m *MockCategoryRepository) FindByUser(_ context.Context, userID string) ([]domain.Category, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	var found []domain.Category
	for _, category := range m.Categories {
		if category.UserID == userID {
			found = append(found, category)
		}
	}
	return found, nil
}

func (m *MockCategoryRepository) InsertBatch(_ context.Context, categories []domain.Category) ([]domain.Category, error) {
	m.InsertCalls++
	inserted := make([]domain.Category, len(categories))
	for i, category := range categories {
		category.ID = uuid.New()
		inserted[i] = category
	}
	m.Categories = append(m.Categories, inserted...)
	return inserted, nil
}

// MockSettingsRepository simulates a remote whose schema may lack optional
// columns: any upsert naming one of MissingColumns fails the way Postgres
// would.
type MockSettingsRepository struct {
	Settings       *domain.UserSettings
	MissingColumns []string
	UpsertAttempts [][]string
	UpsertErr      error
}

func (m *MockSettingsRepository) FindByUser(_ context.Context, userID string) (*domain.UserSettings, error) {
	if m.Settings == nil || m.Settings.UserID != userID {
		return nil, nil
	}
	return m.Settings, nil
}

func (m *MockSettingsRepository) Upsert(_ context.Context, settings domain.UserSettings, columns []string) (*domain.UserSettings, error) {
	m.UpsertAttempts = append(m.UpsertAttempts, columns)
	if m.UpsertErr != nil {
		return nil, m.UpsertErr
	}
	for _, column := range columns {
		for _, missing := range m.MissingColumns {
			if column == missing {
				return nil, &pgconn.PgError{
					Code:    "42703",
					Message: fmt.Sprintf("column %q of relation \"user_settings\" does not exist", column),
				}
			}
		}
	}

	saved := domain.UserSettings{ID: uuid.New(), UserID: settings.UserID}
	for _, column := range columns {
		switch column {
		case domain.SettingsColGrossIncome:
			saved.GrossIncome = settings.GrossIncome
		case domain.SettingsColRedLineAmount:
			saved.RedLineAmount = settings.RedLineAmount
		case domain.SettingsColCurrency:
			saved.Currency = settings.Currency
		case domain.SettingsColTheme:
			saved.Theme = settings.Theme
		}
	}
	m.Settings = &saved
	return &saved, nil
}

type MockSavingsGoalRepository struct {
	Goals []domain.SavingsGoal
}

func (m *MockSavingsGoalRepository) FindByUser(_ context.Context, userID string) ([]domain.SavingsGoal, error) {
	var found []domain.SavingsGoal
	for _, goal := range m.Goals {
		if goal.UserID == userID {
			found = append(found, goal)
		}
	}
	return found, nil
}

func (m *MockSavingsGoalRepository) FindByID(_ context.Context, id uuid.UUID) (*domain.SavingsGoal, error) {
	for i := range m.Goals {
		if m.Goals[i].ID == id {
			goal := m.Goals[i]
			return &goal, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockSavingsGoalRepository) Insert(_ context.Context, goal *domain.SavingsGoal) error {
	m.Goals = append(m.Goals, *goal)
	return nil
}

func (m *MockSavingsGoalRepository) Update(_ context.Context, id uuid.UUID, update domain.SavingsGoalUpdate) (*domain.SavingsGoal, error) {
	for i := range m.Goals {
		if m.Goals[i].ID != id {
			continue
		}
		if update.Name != nil {
			m.Goals[i].Name = *update.Name
		}
		if update.TargetAmount != nil {
			m.Goals[i].TargetAmount = *update.TargetAmount
		}
		if update.CurrentAmount != nil {
			m.Goals[i].CurrentAmount = *update.CurrentAmount
		}
		if update.SetDeadline {
			m.Goals[i].Deadline = update.Deadline
		}
		goal := m.Goals[i]
		return &goal, nil
	}
	return nil, sql.ErrNoRows
}

func (m *MockSavingsGoalRepository) Delete(_ context.Context, id uuid.UUID) error {
	for i := range m.Goals {
		if m.Goals[i].ID == id {
			m.Goals = append(m.Goals[:i], m.Goals[i+1:]...)
			return nil
		}
	}
	return nil
}

type MockTransactionRepository struct {
	Transactions []domain.Transaction
}

func (m *MockTransactionRepository) Insert(_ context.Context, transaction *domain.Transaction) error {
	m.Transactions = append(m.Transactions, *transaction)
	return nil
}

func (m *MockTransactionRepository) FindByUser(_ context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	var found []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if filter.Type != "" && transaction.Type != filter.Type {
			continue
		}
		found = append(found, transaction)
	}
	return found, nil
}

func (m *MockTransactionRepository) FindInDateRange(_ context.Context, userID string, startDate, endDate time.Time) ([]domain.Transaction, error) {
	var found []domain.Transaction
	for _, transaction := range m.Transactions {
		if transaction.UserID != userID {
			continue
		}
		if transaction.Date.Before(startDate) || transaction.Date.After(endDate) {
			continue
		}
		found = append(found, transaction)
	}
	return found, nil
}

func (m *MockTransactionRepository) Delete(_ context.Context, id uuid.UUID, userID string) (int64, error) {
	for i := range m.Transactions {
		if m.Transactions[i].ID == id && m.Transactions[i].UserID == userID {
			m.Transactions = append(m.Transactions[:i], m.Transactions[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

type MockBudgetRepository struct {
	Budgets []domain.Budget
}

func (m *MockBudgetRepository) FindByUserAndMonth(_ context.Context, userID, month string) ([]domain.Budget, error) {
	var found []domain.Budget
	for _, budget := range m.Budgets {
		if budget.UserID == userID && budget.Month == month {
			found = append(found, budget)
		}
	}
	return found, nil
}

func (m *MockBudgetRepository) Upsert(_ context.Context, budget *domain.Budget) error {
	for i := range m.Budgets {
		if m.Budgets[i].UserID == budget.UserID &&
			m.Budgets[i].CategoryID == budget.CategoryID &&
			m.Budgets[i].Month == budget.Month {
			m.Budgets[i].Amount = budget.Amount
			budget.ID = m.Budgets[i].ID
			return nil
		}
	}
	m.Budgets = append(m.Budgets, *budget)
	return nil
}

func (m *MockBudgetRepository) UpdateAmount(_ context.Context, id uuid.UUID, userID string, amount float64) (int64, error) {
	for i := range m.Budgets {
		if m.Budgets[i].ID == id && m.Budgets[i].UserID == userID {
			m.Budgets[i].Amount = amount
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockBudgetRepository) Delete(_ context.Context, id uuid.UUID, userID string) (int64, error) {
	for i := range m.Budgets {
		if m.Budgets[i].ID == id && m.Budgets[i].UserID == userID {
			m.Budgets = append(m.Budgets[:i], m.Budgets[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// MockUserDataRepository records erasure order and can fail on a chosen
// table.
type MockUserDataRepository struct {
	Deleted   []string
	FailTable string
	FailErr   error
}

func (m *MockUserDataRepository) DeleteAllForUser(_ context.Context, table string, _ string) error {
	if table == m.FailTable {
		return m.FailErr
	}
	m.Deleted = append(m.Deleted, table)
	return nil
}
