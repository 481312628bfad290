package domain

import "context"

// UserDataRepository wipes all rows a user owns in a single table. The
// erasure service drives it over an explicit, FK-safe table order.
type UserDataRepository interface {
	DeleteAllForUser(ctx context.Context, table string, userID string) error
}
