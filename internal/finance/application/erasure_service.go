package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/finflow/finflow/internal/finance/domain"
)

// erasureOrder lists the user-scoped tables in FK-safe deletion order.
// savings_contributions is absent because the database cascades it from
// savings_goals.
var erasureOrder = []string{
	"savings_goals",
	"budgets",
	"transactions",
	"categories",
	"user_settings",
}

type ErasureService struct {
	repo domain.UserDataRepository
	log  *logrus.Logger
}

func NewErasureService(repo domain.UserDataRepository, logger *logrus.Logger) *ErasureService {
	return &ErasureService{repo: repo, log: logger}
}

// ClearAllUserData deletes every row the user owns, one table at a time in
// erasureOrder. The five deletes are independent round-trips, not one
// transaction: the first failure aborts the sequence and already-completed
// deletions stay deleted. Callers must treat the error as "cleanup may be
// incomplete".
func (s *ErasureService) ClearAllUserData(ctx context.Context, userID string) error {
	for _, table := range erasureOrder {
		if err := s.repo.DeleteAllForUser(ctx, table, userID); err != nil {
			s.log.WithFields(logrus.Fields{
				"table":   table,
				"user_id": userID,
			}).WithError(err).Error("user data erasure aborted")
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return nil
}
