package application

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/finflow/finflow/internal/finance/infrastructure"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestClearAllUserData_DeletesInOrder(t *testing.T) {
	repo := &infrastructure.MockUserDataRepository{}
	service := NewErasureService(repo, quietLogger())

	err := service.ClearAllUserData(context.Background(), testUserID)
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"savings_goals",
		"budgets",
		"transactions",
		"categories",
		"user_settings",
	}, repo.Deleted)
}

func TestClearAllUserData_AbortsOnFirstFailure(t *testing.T) {
	repo := &infrastructure.MockUserDataRepository{
		FailTable: "transactions",
		FailErr:   errors.New("deadlock detected"),
	}
	service := NewErasureService(repo, quietLogger())

	err := service.ClearAllUserData(context.Background(), testUserID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "clear transactions")
	assert.ErrorIs(t, err, repo.FailErr)

	// Everything before the failing table went through; nothing after it ran.
	assert.Equal(t, []string{"savings_goals", "budgets"}, repo.Deleted)
}
