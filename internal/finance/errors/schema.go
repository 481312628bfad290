package errors

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error code for undefined_column.
const pgUndefinedColumn = "42703"

// Message shapes seen from remotes that do not surface structured codes.
var missingColumnPattern = regexp.MustCompile(`(?i)column .* does not exist|unknown column`)

// MissingColumns reports whether err signals that one or more columns are
// absent from the deployed schema, and which of the candidate column names
// the error message mentions. The structured Postgres error code is checked
// first; message sniffing is only the fallback for errors that arrive as
// plain text. All detection lives here so call sites never inspect error
// strings themselves.
func MissingColumns(err error, candidates []string) ([]string, bool) {
	if err == nil {
		return nil, false
	}

	msg := err.Error()
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUndefinedColumn {
			return nil, false
		}
		msg = pgErr.Message
	} else if !missingColumnPattern.MatchString(msg) {
		return nil, false
	}

	lower := strings.ToLower(msg)
	var named []string
	for _, col := range candidates {
		if strings.Contains(lower, col) {
			named = append(named, col)
		}
	}
	return named, true
}
