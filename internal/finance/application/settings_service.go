package application

import (
	"context"

	"github.com/finflow/finflow/internal/finance/domain"
	financeErrors "github.com/finflow/finflow/internal/finance/errors"
)

var (
	fullSettingsColumns = []string{
		domain.SettingsColGrossIncome,
		domain.SettingsColRedLineAmount,
		domain.SettingsColCurrency,
		domain.SettingsColTheme,
	}
	// Columns that may be absent from older deployments.
	optionalSettingsColumns = []string{
		domain.SettingsColRedLineAmount,
		domain.SettingsColTheme,
	}
	minimalSettingsColumns = []string{
		domain.SettingsColGrossIncome,
		domain.SettingsColCurrency,
	}
)

type SettingsInput struct {
	GrossIncome   *float64
	RedLineAmount *float64
	Currency      string
	Theme         *string
}

type SettingsService struct {
	repo domain.SettingsRepository
}

func NewSettingsService(repo domain.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// GetForUser returns the user's settings row, or nil when none exists.
func (s *SettingsService) GetForUser(ctx context.Context, userID string) (*domain.UserSettings, error) {
	return s.repo.FindByUser(ctx, userID)
}

// Upsert writes the user's single settings row, keyed on user_id. The write
// starts with the full column set and degrades when the deployed schema
// rejects optional columns: first retry with exactly the columns named in
// the error removed, then one final retry with the minimal payload of
// user_id, gross_income and currency. Errors that are not schema mismatches
// propagate immediately with no retry.
func (s *SettingsService) Upsert(ctx context.Context, userID string, input SettingsInput) (*domain.UserSettings, error) {
	settings := domain.UserSettings{
		UserID:        userID,
		GrossIncome:   input.GrossIncome,
		RedLineAmount: input.RedLineAmount,
		Currency:      input.Currency,
		Theme:         input.Theme,
	}

	saved, err := s.repo.Upsert(ctx, settings, fullSettingsColumns)
	if err == nil {
		return saved, nil
	}

	missing, ok := financeErrors.MissingColumns(err, optionalSettingsColumns)
	if !ok {
		return nil, err
	}

	saved, err = s.repo.Upsert(ctx, settings, withoutColumns(fullSettingsColumns, missing))
	if err == nil {
		return saved, nil
	}

	return s.repo.Upsert(ctx, settings, minimalSettingsColumns)
}

func withoutColumns(columns, drop []string) []string {
	kept := make([]string, 0, len(columns))
	for _, col := range columns {
		dropped := false
		for _, d := range drop {
			if col == d {
				dropped = true
				break
			}
		}
		if !dropped {
			kept = append(kept, col)
		}
	}
	return kept
}
