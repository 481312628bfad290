package application

import (
	"context"

	"github.com/google/uuid"

	"github.com/finflow/finflow/internal/finance/domain"
)

const uncategorizedName = "Uncategorized"

// defaultCategories is the canonical catalog seeded for every new user:
// one entry per (name, type), never duplicated.
var defaultCategories = []domain.Category{
	// Income
	{Name: "Salary", Type: "income", Color: "#059669"},
	{Name: "Freelance", Type: "income", Color: "#10b981"},
	{Name: "Bonus", Type: "income", Color: "#0d9488"},
	{Name: "Investments", Type: "income", Color: "#34d399"},
	{Name: "Rental Income", Type: "income", Color: "#6ee7b7"},
	{Name: "Side Hustle", Type: "income", Color: "#5eead4"},
	{Name: "Gifts Received", Type: "income", Color: "#a7f3d0"},
	{Name: "Refunds", Type: "income", Color: "#86efac"},
	{Name: "Interest & Dividends", Type: "income", Color: "#4ade80"},
	{Name: "Other Income", Type: "income", Color: "#bbf7d0"},
	// Expense
	{Name: uncategorizedName, Type: "expense", Color: "#64748b"},
	{Name: "Food & Dining", Type: "expense", Color: "#f59e0b"},
	{Name: "Groceries", Type: "expense", Color: "#fbbf24"},
	{Name: "Transport", Type: "expense", Color: "#3b82f6"},
	{Name: "Bills & Utilities", Type: "expense", Color: "#8b5cf6"},
	{Name: "Rent / Mortgage", Type: "expense", Color: "#a855f7"},
	{Name: "Shopping", Type: "expense", Color: "#ec4899"},
	{Name: "Healthcare", Type: "expense", Color: "#06b6d4"},
	{Name: "Insurance", Type: "expense", Color: "#0ea5e9"},
	{Name: "Entertainment", Type: "expense", Color: "#eab308"},
	{Name: "Personal Care", Type: "expense", Color: "#f97316"},
	{Name: "Subscriptions", Type: "expense", Color: "#c084fc"},
	{Name: "Education", Type: "expense", Color: "#14b8a6"},
	{Name: "Travel", Type: "expense", Color: "#f43f5e"},
	{Name: "Charity & Donations", Type: "expense", Color: "#e11d48"},
	{Name: "Kids & Family", Type: "expense", Color: "#db2777"},
	{Name: "Pets", Type: "expense", Color: "#ca8a04"},
	{Name: "Other Expense", Type: "expense", Color: "#94a3b8"},
}

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// List returns the user's categories ordered by type then name, with
// duplicate (type, name) rows collapsed to the first-seen one. Seeding is
// not guarded against concurrent double-initialization, so the store may
// hold redundant rows; this read boundary hides them.
func (s *CategoryService) List(ctx context.Context, userID string) ([]domain.Category, error) {
	rows, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(rows))
	categories := make([]domain.Category, 0, len(rows))
	for _, category := range rows {
		key := category.Type + ":" + category.Name
		if seen[key] {
			continue
		}
		seen[key] = true
		categories = append(categories, category)
	}
	return categories, nil
}

// EnsureDefaults seeds the default catalog for a user with no categories and
// returns the inserted rows. A user with any categories is returned as-is,
// so calling it repeatedly never re-seeds.
func (s *CategoryService) EnsureDefaults(ctx context.Context, userID string) ([]domain.Category, error) {
	existing, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return existing, nil
	}

	toInsert := make([]domain.Category, len(defaultCategories))
	for i, category := range defaultCategories {
		category.UserID = userID
		toInsert[i] = category
	}
	return s.repo.InsertBatch(ctx, toInsert)
}

// GetUncategorizedID resolves the id of the ("Uncategorized", expense)
// category, seeding defaults first if needed. The catalog guarantees the row
// exists, but if it is ever missing the first ensured category is used, and
// uuid.Nil only when the user somehow has none at all.
func (s *CategoryService) GetUncategorizedID(ctx context.Context, userID string) (uuid.UUID, error) {
	categories, err := s.EnsureDefaults(ctx, userID)
	if err != nil {
		return uuid.Nil, err
	}

	for _, category := range categories {
		if category.Name == uncategorizedName && category.Type == "expense" {
			return category.ID, nil
		}
	}
	if len(categories) > 0 {
		return categories[0].ID, nil
	}
	return uuid.Nil, nil
}
