package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables the erasure flow may wipe. The table name is interpolated into the
// statement, so anything outside this set is rejected.
var erasableTables = map[string]bool{
	"savings_goals": true,
	"budgets":       true,
	"transactions":  true,
	"categories":    true,
	"user_settings": true,
}

type UserDataRepository struct {
	db *sql.DB
}

func NewUserDataRepository(db *sql.DB) *UserDataRepository {
	return &UserDataRepository{db: db}
}

func (r *UserDataRepository) DeleteAllForUser(ctx context.Context, table string, userID string) error {
	if !erasableTables[table] {
		return fmt.Errorf("table %q is not user-erasable", table)
	}
	_, err := r.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", table), userID)
	return err
}
