package application

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/finflow/internal/finance/domain"
	financeErrors "github.com/finflow/finflow/internal/finance/errors"
)

type CategoryServiceInterface interface {
	List(ctx context.Context, userID string) ([]domain.Category, error)
	EnsureDefaults(ctx context.Context, userID string) ([]domain.Category, error)
	GetUncategorizedID(ctx context.Context, userID string) (uuid.UUID, error)
}

type TransactionService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
}

func NewTransactionService(repo domain.TransactionRepository, categoryService CategoryServiceInterface) *TransactionService {
	return &TransactionService{repo: repo, categoryService: categoryService}
}

// CreateTransaction validates the transaction against the user's reconciled
// categories and stores it. An expense without a category falls back to the
// seeded "Uncategorized" category.
func (s *TransactionService) CreateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	transaction.ID = uuid.New()
	transaction.RoundToTwoDecimalPlaces()
	if err := transaction.Validate(); err != nil {
		return err
	}

	categories, err := s.categoryService.EnsureDefaults(ctx, transaction.UserID)
	if err != nil {
		return err
	}

	if transaction.CategoryID == nil {
		if transaction.Type == "expense" {
			uncategorizedID, err := s.categoryService.GetUncategorizedID(ctx, transaction.UserID)
			if err != nil {
				return err
			}
			if uncategorizedID != uuid.Nil {
				transaction.CategoryID = &uncategorizedID
			}
		}
	} else {
		valid := false
		for _, category := range categories {
			if category.ID == *transaction.CategoryID && category.Type == transaction.Type {
				valid = true
				break
			}
		}
		if !valid {
			return financeErrors.ErrInvalidCategory
		}
	}

	return s.repo.Insert(ctx, transaction)
}

func (s *TransactionService) GetUserTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	transactions, err := s.repo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		return []domain.Transaction{}, nil
	}
	return transactions, nil
}

func (s *TransactionService) DeleteTransaction(ctx context.Context, id uuid.UUID, userID string) error {
	affected, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return financeErrors.ErrTransactionNotFound
	}
	return nil
}

type MonthSummary struct {
	Month        string  `json:"month"` // "YYYY-MM"
	IncomeTotal  float64 `json:"income_total"`
	ExpenseTotal float64 `json:"expense_total"`
}

type CategoryTotal struct {
	CategoryID *uuid.UUID `json:"category_id"`
	Type       string     `json:"type"`
	Total      float64    `json:"total"`
}

type TransactionSummary struct {
	IncomeTotal  float64         `json:"income_total"`
	ExpenseTotal float64         `json:"expense_total"`
	Months       []MonthSummary  `json:"months"`
	ByCategory   []CategoryTotal `json:"by_category"`
}

// GetTransactionSummary aggregates the user's transactions in the date range
// into overall, monthly and per-category income/expense totals.
func (s *TransactionService) GetTransactionSummary(ctx context.Context, userID string, startDate, endDate time.Time) (*TransactionSummary, error) {
	transactions, err := s.repo.FindInDateRange(ctx, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	summary := &TransactionSummary{
		Months:     []MonthSummary{},
		ByCategory: []CategoryTotal{},
	}
	months := make(map[string]*MonthSummary)
	categoryTotals := make(map[string]*CategoryTotal)

	for _, transaction := range transactions {
		month := transaction.Date.Format("2006-01")
		monthSummary, exists := months[month]
		if !exists {
			monthSummary = &MonthSummary{Month: month}
			months[month] = monthSummary
		}

		switch transaction.Type {
		case "income":
			summary.IncomeTotal += transaction.Amount
			monthSummary.IncomeTotal += transaction.Amount
		case "expense":
			summary.ExpenseTotal += transaction.Amount
			monthSummary.ExpenseTotal += transaction.Amount
		}

		categoryKey := transaction.Type
		if transaction.CategoryID != nil {
			categoryKey += ":" + transaction.CategoryID.String()
		}
		categoryTotal, exists := categoryTotals[categoryKey]
		if !exists {
			categoryTotal = &CategoryTotal{CategoryID: transaction.CategoryID, Type: transaction.Type}
			categoryTotals[categoryKey] = categoryTotal
		}
		categoryTotal.Total += transaction.Amount
	}

	for _, monthSummary := range months {
		summary.Months = append(summary.Months, *monthSummary)
	}
	sort.Slice(summary.Months, func(i, j int) bool {
		return summary.Months[i].Month < summary.Months[j].Month
	})

	for _, categoryTotal := range categoryTotals {
		summary.ByCategory = append(summary.ByCategory, *categoryTotal)
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Total > summary.ByCategory[j].Total
	})

	return summary, nil
}
