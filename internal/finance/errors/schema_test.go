package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

var optionalColumns = []string{"red_line_amount", "theme"}

func TestMissingColumns_PgErrorUndefinedColumn(t *testing.T) {
	err := &pgconn.PgError{
		Code:    "42703",
		Message: `column "theme" of relation "user_settings" does not exist`,
	}

	named, ok := MissingColumns(err, optionalColumns)
	assert.True(t, ok)
	assert.Equal(t, []string{"theme"}, named)
}

func TestMissingColumns_PgErrorOtherCode(t *testing.T) {
	err := &pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "user_settings_user_id_key"`,
	}

	named, ok := MissingColumns(err, optionalColumns)
	assert.False(t, ok)
	assert.Nil(t, named)
}

func TestMissingColumns_WrappedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "42703",
		Message: `column "red_line_amount" of relation "user_settings" does not exist`,
	}
	wrapped := fmt.Errorf("upsert settings: %w", pgErr)

	named, ok := MissingColumns(wrapped, optionalColumns)
	assert.True(t, ok)
	assert.Equal(t, []string{"red_line_amount"}, named)
}

func TestMissingColumns_TextFallbackShapes(t *testing.T) {
	cases := []struct {
		name    string
		message string
		want    []string
	}{
		{
			name:    "postgres text both columns",
			message: `column "red_line_amount" does not exist, column "theme" does not exist`,
			want:    []string{"red_line_amount", "theme"},
		},
		{
			name:    "mysql style unknown column",
			message: `Unknown column 'theme' in 'field list'`,
			want:    []string{"theme"},
		},
		{
			name:    "uppercase message",
			message: `COLUMN "THEME" DOES NOT EXIST`,
			want:    []string{"theme"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			named, ok := MissingColumns(errors.New(tc.message), optionalColumns)
			assert.True(t, ok)
			assert.Equal(t, tc.want, named)
		})
	}
}

func TestMissingColumns_NonSchemaErrors(t *testing.T) {
	for _, err := range []error{
		nil,
		errors.New("connection refused"),
		errors.New("permission denied for table user_settings"),
	} {
		named, ok := MissingColumns(err, optionalColumns)
		assert.False(t, ok)
		assert.Nil(t, named)
	}
}
