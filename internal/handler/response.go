package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/labstack/echo/v4"
)

// ProblemDetails represents an RFC 7807 Problem Details response
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation  = "https://arthamitra.app/errors/validation"
	ErrorTypeNotFound    = "https://arthamitra.app/errors/not-found"
	ErrorTypeConflict    = "https://arthamitra.app/errors/conflict"
	ErrorTypeUnavailable = "https://arthamitra.app/errors/unavailable"
	ErrorTypeCancelled   = "https://arthamitra.app/errors/cancelled"
	ErrorTypeInternal    = "https://arthamitra.app/errors/internal"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewConflictError creates a conflict error response
func NewConflictError(c echo.Context, detail string) error {
	return c.JSON(http.StatusConflict, ProblemDetails{
		Type:     ErrorTypeConflict,
		Title:    "Conflict",
		Status:   http.StatusConflict,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewUnavailableError reports a missing external collaborator (LLM
// gateway, search, storage) without treating it as a server fault.
func NewUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
	})
}

// domainError maps the shared domain error kinds onto problem responses.
// Handlers call this after their own request-shape validation.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrBudgetNotFound),
		errors.Is(err, domain.ErrGoalNotFound),
		errors.Is(err, domain.ErrPaymentNotFound),
		errors.Is(err, domain.ErrRuleNotFound),
		errors.Is(err, domain.ErrActionNotFound):
		return NewNotFoundError(c, err.Error())
	case errors.Is(err, domain.ErrUserIDRequired),
		errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrNameTooLong),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidType),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidFrequency),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrSharesMismatch),
		errors.Is(err, domain.ErrExtractionFailed):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrActionExpired):
		return NewConflictError(c, err.Error())
	case errors.Is(err, domain.ErrNotConfigured):
		return NewUnavailableError(c, err.Error())
	case errors.Is(err, context.Canceled):
		return c.JSON(499, ProblemDetails{
			Type:     ErrorTypeCancelled,
			Title:    "Request Cancelled",
			Status:   499,
			Instance: c.Request().URL.Path,
		})
	default:
		var pageErr *domain.PageLimitError
		if errors.As(err, &pageErr) {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"page_limit_exceeded": true,
				"page_count":          pageErr.PageCount,
				"max_pages":           pageErr.MaxPages,
			})
		}
		return NewInternalError(c, "Something went wrong")
	}
}
