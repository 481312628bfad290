package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/finflow/finflow/internal/finance/domain"
	financeErrors "github.com/finflow/finflow/internal/finance/errors"
	"github.com/finflow/finflow/internal/finance/infrastructure"
)

func TestCreateGoal_Defaults(t *testing.T) {
	repo := &infrastructure.MockSavingsGoalRepository{}
	service := NewSavingsService(repo)

	goal, err := service.Create(context.Background(), CreateGoalInput{
		UserID:       testUserID,
		Name:         "Car",
		TargetAmount: 10000,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, goal.ID)
	assert.Equal(t, float64(0), goal.CurrentAmount)
	assert.Nil(t, goal.Deadline)
	assert.Len(t, repo.Goals, 1)
}

func TestCreateGoal_Validation(t *testing.T) {
	service := NewSavingsService(&infrastructure.MockSavingsGoalRepository{})

	_, err := service.Create(context.Background(), CreateGoalInput{UserID: testUserID, TargetAmount: 100})
	assert.True(t, financeErrors.IsValidationError(err))

	_, err = service.Create(context.Background(), CreateGoalInput{UserID: testUserID, Name: "Car", TargetAmount: 0})
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestUpdateGoal_PartialUpdatePreservesOtherFields(t *testing.T) {
	deadline := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	goal := domain.SavingsGoal{
		ID:           uuid.New(),
		UserID:       testUserID,
		Name:         "Car",
		TargetAmount: 10000,
		Deadline:     &deadline,
		CreatedAt:    time.Now(),
	}
	repo := &infrastructure.MockSavingsGoalRepository{Goals: []domain.SavingsGoal{goal}}
	service := NewSavingsService(repo)

	updated, err := service.Update(context.Background(), goal.ID, testUserID, domain.SavingsGoalUpdate{
		CurrentAmount: floatPtr(500),
	})
	assert.NoError(t, err)
	assert.Equal(t, "Car", updated.Name)
	assert.Equal(t, float64(10000), updated.TargetAmount)
	assert.Equal(t, float64(500), updated.CurrentAmount)
	assert.Equal(t, &deadline, updated.Deadline)
}

func TestUpdateGoal_ClearsDeadline(t *testing.T) {
	deadline := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	goal := domain.SavingsGoal{ID: uuid.New(), UserID: testUserID, Name: "Trip", TargetAmount: 3000, Deadline: &deadline}
	repo := &infrastructure.MockSavingsGoalRepository{Goals: []domain.SavingsGoal{goal}}
	service := NewSavingsService(repo)

	updated, err := service.Update(context.Background(), goal.ID, testUserID, domain.SavingsGoalUpdate{
		Deadline:    nil,
		SetDeadline: true,
	})
	assert.NoError(t, err)
	assert.Nil(t, updated.Deadline)
	assert.Equal(t, "Trip", updated.Name)
}

func TestUpdateGoal_EmptyUpdateRejected(t *testing.T) {
	service := NewSavingsService(&infrastructure.MockSavingsGoalRepository{})

	_, err := service.Update(context.Background(), uuid.New(), testUserID, domain.SavingsGoalUpdate{})
	assert.ErrorIs(t, err, financeErrors.ErrEmptyUpdate)
}

func TestUpdateGoal_OwnershipEnforced(t *testing.T) {
	goal := domain.SavingsGoal{ID: uuid.New(), UserID: "someone-else", Name: "Car", TargetAmount: 10000}
	repo := &infrastructure.MockSavingsGoalRepository{Goals: []domain.SavingsGoal{goal}}
	service := NewSavingsService(repo)

	_, err := service.Update(context.Background(), goal.ID, testUserID, domain.SavingsGoalUpdate{
		CurrentAmount: floatPtr(1),
	})
	assert.ErrorIs(t, err, financeErrors.ErrUnauthorizedAccess)

	_, err = service.Update(context.Background(), uuid.New(), testUserID, domain.SavingsGoalUpdate{
		CurrentAmount: floatPtr(1),
	})
	assert.ErrorIs(t, err, financeErrors.ErrGoalNotFound)
}

func TestDeleteGoal(t *testing.T) {
	goal := domain.SavingsGoal{ID: uuid.New(), UserID: testUserID, Name: "Car", TargetAmount: 10000}
	repo := &infrastructure.MockSavingsGoalRepository{Goals: []domain.SavingsGoal{goal}}
	service := NewSavingsService(repo)

	assert.NoError(t, service.Delete(context.Background(), goal.ID, testUserID))
	assert.Empty(t, repo.Goals)

	assert.ErrorIs(t, service.Delete(context.Background(), goal.ID, testUserID), financeErrors.ErrGoalNotFound)
}

func TestListGoals_EmptyIsNotNil(t *testing.T) {
	service := NewSavingsService(&infrastructure.MockSavingsGoalRepository{})

	goals, err := service.List(context.Background(), testUserID)
	assert.NoError(t, err)
	assert.NotNil(t, goals)
	assert.Empty(t, goals)
}
