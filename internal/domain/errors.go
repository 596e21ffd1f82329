package domain

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrAlreadyExists      = errors.New("resource already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInternalError      = errors.New("internal error")
	ErrUserIDRequired     = errors.New("user id is required")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidType        = errors.New("invalid transaction type")
	ErrInvalidPeriod      = errors.New("invalid period")
	ErrInvalidFrequency   = errors.New("invalid frequency")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidDate        = errors.New("invalid date, expected YYYY-MM-DD")
	ErrNotConfigured      = errors.New("collaborator not configured")
	ErrActionExpired      = errors.New("pending action expired")
	ErrActionNotFound     = errors.New("pending action not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound     = errors.New("budget not found")
	ErrGoalNotFound       = errors.New("goal not found")
	ErrPaymentNotFound    = errors.New("scheduled payment not found")
	ErrRuleNotFound       = errors.New("merchant rule not found")
	ErrCancelled          = errors.New("request cancelled")
	ErrExtractionFailed   = errors.New("could not extract data from document")
	ErrSharesMismatch     = errors.New("split shares do not sum to bill total")
)

// PageLimitError is returned when an uploaded PDF exceeds the page budget.
type PageLimitError struct {
	PageCount int
	MaxPages  int
}

func (e *PageLimitError) Error() string {
	return "pdf exceeds page limit"
}

// Validation constants
const (
	MaxNameLength  = 255
	MaxNotesLength = 1000
)
