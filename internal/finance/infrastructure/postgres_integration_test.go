package infrastructure

import (
	"context"
	"database/sql"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	database "github.com/finflow/finflow/internal/db"
	"github.com/finflow/finflow/internal/finance/application"
	"github.com/finflow/finflow/internal/finance/domain"
)

// startTestDatabase boots a throwaway Postgres container, applies the
// embedded migrations and hands back an open connection. Requires a local
// Docker daemon, so the whole suite is skipped under -short.
func startTestDatabase(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test: requires docker")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("finflow_test"),
		tcpostgres.WithUsername("finflow"),
		tcpostgres.WithPassword("finflow"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(connStr))

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sql.DB, email, login string) string {
	t.Helper()
	var userID string
	err := db.QueryRow(`
		INSERT INTO users (email, login, password_hash, hash_token)
		VALUES ($1, $2, 'x', 'x')
		RETURNING id
	`, email, login).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func countUserRows(t *testing.T, db *sql.DB, table, userID string) int {
	t.Helper()
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM "+table+" WHERE user_id = $1", userID).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestCategoryRepository_InsertBatchAndFindByUser(t *testing.T) {
	db := startTestDatabase(t)
	userID := createTestUser(t, db, "categories@example.com", "cat_tester")
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	limit := 400.0
	inserted, err := repo.InsertBatch(ctx, []domain.Category{
		{UserID: userID, Name: "Groceries", Type: "expense", BudgetLimit: &limit, Color: "#16a34a"},
		{UserID: userID, Name: "Salary", Type: "income", Color: "#2563eb"},
		{UserID: userID, Name: "Entertainment", Type: "expense", Color: "#db2777"},
	})
	require.NoError(t, err)
	require.Len(t, inserted, 3)
	for _, category := range inserted {
		assert.NotEqual(t, uuid.Nil, category.ID)
		assert.Equal(t, userID, category.UserID)
	}

	found, err := repo.FindByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, found, 3)

	// Ordered by type then name.
	assert.Equal(t, "Entertainment", found[0].Name)
	assert.Equal(t, "Groceries", found[1].Name)
	assert.Equal(t, "Salary", found[2].Name)

	require.NotNil(t, found[1].BudgetLimit)
	assert.Equal(t, 400.0, *found[1].BudgetLimit)
	assert.Nil(t, found[0].BudgetLimit)
	assert.Equal(t, "#2563eb", found[2].Color)
}

func TestSettingsService_UpsertFullSchema(t *testing.T) {
	db := startTestDatabase(t)
	userID := createTestUser(t, db, "settings@example.com", "set_tester")
	service := application.NewSettingsService(NewSettingsRepository(db))
	ctx := context.Background()

	gross := 5200.0
	redLine := 800.0
	theme := "dark"
	saved, err := service.Upsert(ctx, userID, application.SettingsInput{
		GrossIncome:   &gross,
		RedLineAmount: &redLine,
		Currency:      "EUR",
		Theme:         &theme,
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", saved.Currency)
	require.NotNil(t, saved.RedLineAmount)
	assert.Equal(t, 800.0, *saved.RedLineAmount)

	// A second upsert updates the existing row instead of adding one.
	saved, err = service.Upsert(ctx, userID, application.SettingsInput{
		GrossIncome: &gross,
		Currency:    "GBP",
	})
	require.NoError(t, err)
	assert.Equal(t, "GBP", saved.Currency)
	assert.Equal(t, 1, countUserRows(t, db, "user_settings", userID))

	found, err := service.GetForUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "GBP", found.Currency)
	require.NotNil(t, found.GrossIncome)
	assert.Equal(t, 5200.0, *found.GrossIncome)
}

func TestSettingsService_NarrowsWhenOptionalColumnsMissing(t *testing.T) {
	db := startTestDatabase(t)
	userID := createTestUser(t, db, "legacy@example.com", "legacy_tester")
	service := application.NewSettingsService(NewSettingsRepository(db))
	ctx := context.Background()

	// Roll the settings table back to the shape older deployments run with.
	_, err := db.Exec("ALTER TABLE user_settings DROP COLUMN theme, DROP COLUMN red_line_amount")
	require.NoError(t, err)

	gross := 3100.0
	redLine := 500.0
	theme := "light"
	saved, err := service.Upsert(ctx, userID, application.SettingsInput{
		GrossIncome:   &gross,
		RedLineAmount: &redLine,
		Currency:      "USD",
		Theme:         &theme,
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", saved.Currency)
	assert.Nil(t, saved.RedLineAmount)
	assert.Nil(t, saved.Theme)
	assert.Equal(t, 1, countUserRows(t, db, "user_settings", userID))

	// The dynamic read copes with the narrower schema too.
	found, err := service.GetForUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, found)
	require.NotNil(t, found.GrossIncome)
	assert.Equal(t, 3100.0, *found.GrossIncome)
	assert.Nil(t, found.Theme)
}

func TestErasureService_ClearsEveryUserTable(t *testing.T) {
	db := startTestDatabase(t)
	userID := createTestUser(t, db, "erasure@example.com", "erase_tester")
	otherID := createTestUser(t, db, "bystander@example.com", "bystander")
	ctx := context.Background()

	categoryRepo := NewCategoryRepository(db)
	categories, err := categoryRepo.InsertBatch(ctx, []domain.Category{
		{UserID: userID, Name: "Groceries", Type: "expense", Color: "#16a34a"},
		{UserID: otherID, Name: "Groceries", Type: "expense", Color: "#16a34a"},
	})
	require.NoError(t, err)
	require.Len(t, categories, 2)

	_, err = db.Exec(`
		INSERT INTO transactions (user_id, category_id, type, amount, date)
		VALUES ($1, $2, 'expense', 42.50, '2026-08-01')
	`, userID, categories[0].ID)
	require.NoError(t, err)

	_, err = db.Exec(`
		INSERT INTO budgets (user_id, category_id, amount, month)
		VALUES ($1, $2, 300, '2026-08')
	`, userID, categories[0].ID)
	require.NoError(t, err)

	var goalID string
	err = db.QueryRow(`
		INSERT INTO savings_goals (user_id, name, target_amount)
		VALUES ($1, 'Vacation', 2500)
		RETURNING id
	`, userID).Scan(&goalID)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO savings_contributions (goal_id, amount) VALUES ($1, 150)", goalID)
	require.NoError(t, err)

	_, err = db.Exec("INSERT INTO user_settings (user_id, currency) VALUES ($1, 'USD')", userID)
	require.NoError(t, err)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	service := application.NewErasureService(NewUserDataRepository(db), logger)

	require.NoError(t, service.ClearAllUserData(ctx, userID))

	for _, table := range []string{"savings_goals", "budgets", "transactions", "categories", "user_settings"} {
		assert.Equal(t, 0, countUserRows(t, db, table, userID), "table %s should be empty", table)
	}

	// Contributions go with their goal via the cascade.
	var contributions int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM savings_contributions").Scan(&contributions))
	assert.Equal(t, 0, contributions)

	// The other user's rows are untouched.
	assert.Equal(t, 1, countUserRows(t, db, "categories", otherID))
}
