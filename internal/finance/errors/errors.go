package errors

import (
	"errors"
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

func IsValidationError(err error) bool {
	var validationError *ValidationError
	ok := errors.As(err, &validationError)
	return ok
}

var (
	ErrCategoryNotFound    = errors.New("category not found")
	ErrInvalidCategory     = errors.New("category does not belong to this user")
	ErrGoalNotFound        = errors.New("savings goal not found")
	ErrBudgetNotFound      = errors.New("budget not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUnauthorizedAccess  = errors.New("unauthorized: user does not own this resource")
	ErrEmptyUpdate         = errors.New("update contains no fields")
)
