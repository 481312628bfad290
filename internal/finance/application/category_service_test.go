package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/finflow/finflow/internal/finance/domain"
	"github.com/finflow/finflow/internal/finance/infrastructure"
)

const testUserID = "b6f9c6e0-8f48-4f1e-9f2b-0d9272b6a001"

func TestList_DeduplicatesByTypeAndName(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{
		Categories: []domain.Category{
			{ID: uuid.New(), UserID: testUserID, Name: "Salary", Type: "income", Color: "#059669"},
			{ID: uuid.New(), UserID: testUserID, Name: "Groceries", Type: "expense", Color: "#fbbf24"},
			{ID: uuid.New(), UserID: testUserID, Name: "Groceries", Type: "expense", Color: "#fbbf24"},
			{ID: uuid.New(), UserID: testUserID, Name: "Groceries", Type: "income", Color: "#aaaaaa"},
			{ID: uuid.New(), UserID: testUserID, Name: "Salary", Type: "income", Color: "#059669"},
		},
	}
	service := NewCategoryService(repo)

	categories, err := service.List(context.Background(), testUserID)
	assert.NoError(t, err)
	assert.Len(t, categories, 3)

	// First-seen rows win, in input order.
	assert.Equal(t, repo.Categories[0].ID, categories[0].ID)
	assert.Equal(t, repo.Categories[1].ID, categories[1].ID)
	assert.Equal(t, repo.Categories[3].ID, categories[2].ID)
}

func TestEnsureDefaults_SeedsOnceForNewUser(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{}
	service := NewCategoryService(repo)

	seeded, err := service.EnsureDefaults(context.Background(), testUserID)
	assert.NoError(t, err)
	assert.Len(t, seeded, 28)
	assert.Equal(t, 1, repo.InsertCalls)

	var income, expense int
	for _, category := range seeded {
		assert.Equal(t, testUserID, category.UserID)
		assert.Nil(t, category.BudgetLimit)
		assert.NotEmpty(t, category.Color)
		switch category.Type {
		case "income":
			income++
		case "expense":
			expense++
		}
	}
	assert.Equal(t, 10, income)
	assert.Equal(t, 18, expense)

	// Second call must return the existing rows without inserting again.
	again, err := service.EnsureDefaults(context.Background(), testUserID)
	assert.NoError(t, err)
	assert.Len(t, again, 28)
	assert.Equal(t, 1, repo.InsertCalls)
}

func TestGetUncategorizedID_ResolvesSeededCategory(t *testing.T) {
	repo := &infrastructure.MockCategoryRepository{}
	service := NewCategoryService(repo)

	id, err := service.GetUncategorizedID(context.Background(), testUserID)
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	var want uuid.UUID
	for _, category := range repo.Categories {
		if category.Name == "Uncategorized" && category.Type == "expense" {
			want = category.ID
		}
	}
	assert.Equal(t, want, id)
}

func TestGetUncategorizedID_FallsBackToFirstCategory(t *testing.T) {
	first := domain.Category{ID: uuid.New(), UserID: testUserID, Name: "Custom", Type: "expense", Color: "#000000"}
	repo := &infrastructure.MockCategoryRepository{Categories: []domain.Category{first}}
	service := NewCategoryService(repo)

	id, err := service.GetUncategorizedID(context.Background(), testUserID)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, id)
	// The user already had a category, so no seeding happened.
	assert.Equal(t, 0, repo.InsertCalls)
}
