package domain

import (
	"context"

	"github.com/google/uuid"
)

type UserSettings struct {
	ID            uuid.UUID `json:"id"`
	UserID        string    `json:"user_id"`
	GrossIncome   *float64  `json:"gross_income"`
	RedLineAmount *float64  `json:"red_line_amount"`
	Currency      string    `json:"currency"`
	Theme         *string   `json:"theme"` // "light" or "dark" when set
}

// Settings column names as they exist in the remote schema. The service
// narrows its upsert payload by dropping optional columns from this set.
const (
	SettingsColGrossIncome   = "gross_income"
	SettingsColRedLineAmount = "red_line_amount"
	SettingsColCurrency      = "currency"
	SettingsColTheme         = "theme"
)

type SettingsRepository interface {
	// FindByUser returns (nil, nil) when the user has no settings row.
	FindByUser(ctx context.Context, userID string) (*UserSettings, error)
	// Upsert inserts or updates the user's single settings row, keyed on
	// user_id, writing only the listed value columns.
	Upsert(ctx context.Context, settings UserSettings, columns []string) (*UserSettings, error)
}
