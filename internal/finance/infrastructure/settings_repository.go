package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/finflow/finflow/internal/finance/domain"
)

type SettingsRepository struct {
	db *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// FindByUser reads the user's settings row. Columns are resolved dynamically
// so the read works against deployments that predate the optional columns.
func (r *SettingsRepository) FindByUser(ctx context.Context, userID string) (*domain.UserSettings, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT * FROM user_settings WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, rows.Err()
	}

	var settings domain.UserSettings
	dest := make([]interface{}, len(columns))
	for i, column := range columns {
		switch column {
		case "id":
			dest[i] = &settings.ID
		case "user_id":
			dest[i] = &settings.UserID
		case domain.SettingsColGrossIncome:
			dest[i] = &settings.GrossIncome
		case domain.SettingsColRedLineAmount:
			dest[i] = &settings.RedLineAmount
		case domain.SettingsColCurrency:
			dest[i] = &settings.Currency
		case domain.SettingsColTheme:
			dest[i] = &settings.Theme
		default:
			dest[i] = new(sql.RawBytes)
		}
	}
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert builds an insert-or-update statement over exactly the requested
// value columns, keyed on user_id. The caller controls the column set so it
// can shrink the payload when the deployed schema lacks optional columns.
func (r *SettingsRepository) Upsert(ctx context.Context, settings domain.UserSettings, columns []string) (*domain.UserSettings, error) {
	insertColumns := make([]string, 0, len(columns)+1)
	placeholders := make([]string, 0, len(columns)+1)
	updates := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+1)

	insertColumns = append(insertColumns, "user_id")
	placeholders = append(placeholders, "$1")
	args = append(args, settings.UserID)

	for _, column := range columns {
		value, err := settingsValue(settings, column)
		if err != nil {
			return nil, err
		}
		insertColumns = append(insertColumns, column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)+1))
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
		args = append(args, value)
	}
	updates = append(updates, "updated_at = NOW()")

	query := fmt.Sprintf(`
		INSERT INTO user_settings (%s)
		VALUES (%s)
		ON CONFLICT (user_id) DO UPDATE SET %s
		RETURNING id, user_id, %s
	`,
		strings.Join(insertColumns, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(updates, ", "),
		strings.Join(columns, ", "),
	)

	saved := domain.UserSettings{}
	dest := []interface{}{&saved.ID, &saved.UserID}
	for _, column := range columns {
		switch column {
		case domain.SettingsColGrossIncome:
			dest = append(dest, &saved.GrossIncome)
		case domain.SettingsColRedLineAmount:
			dest = append(dest, &saved.RedLineAmount)
		case domain.SettingsColCurrency:
			dest = append(dest, &saved.Currency)
		case domain.SettingsColTheme:
			dest = append(dest, &saved.Theme)
		}
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(dest...); err != nil {
		return nil, err
	}
	return &saved, nil
}

func settingsValue(settings domain.UserSettings, column string) (interface{}, error) {
	switch column {
	case domain.SettingsColGrossIncome:
		return settings.GrossIncome, nil
	case domain.SettingsColRedLineAmount:
		return settings.RedLineAmount, nil
	case domain.SettingsColCurrency:
		return settings.Currency, nil
	case domain.SettingsColTheme:
		return settings.Theme, nil
	default:
		return nil, fmt.Errorf("unknown settings column %q", column)
	}
}
