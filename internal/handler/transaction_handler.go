package handler

import (
	"net/http"
	"strconv"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TransactionHandler handles transaction HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the create request body
type CreateTransactionRequest struct {
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          string          `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"`
	Time          string          `json:"time"`
	Merchant      string          `json:"merchant"`
	PaymentMethod string          `json:"payment_method"`
	IsRecurring   bool            `json:"is_recurring"`
	Notes         string          `json:"notes"`
}

// UpdateTransactionRequest represents the update request body. Only
// category, description and notes are editable.
type UpdateTransactionRequest struct {
	UserID      string  `json:"user_id"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.transactionService.Create(c.Request().Context(), &domain.Transaction{
		UserID:        req.UserID,
		Amount:        req.Amount,
		Type:          domain.TransactionType(req.Type),
		Category:      req.Category,
		Description:   req.Description,
		Date:          req.Date,
		Time:          req.Time,
		Merchant:      req.Merchant,
		PaymentMethod: req.PaymentMethod,
		IsRecurring:   req.IsRecurring,
		Notes:         req.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// List handles GET /transactions?user_id=...
func (h *TransactionHandler) List(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	filters := &domain.TransactionFilters{
		Category:  c.QueryParam("category"),
		Type:      domain.TransactionType(c.QueryParam("type")),
		StartDate: c.QueryParam("start_date"),
		EndDate:   c.QueryParam("end_date"),
	}
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return NewValidationError(c, "Invalid limit", nil)
		}
		filters.Limit = limit
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return NewValidationError(c, "Invalid offset", nil)
		}
		filters.Offset = offset
	}

	txns, err := h.transactionService.Query(c.Request().Context(), userID, filters)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list transactions")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"transactions": txns,
		"count":        len(txns),
	})
}

// Summary handles GET /transactions/summary?user_id=...&start=...&end=...
func (h *TransactionHandler) Summary(c echo.Context) error {
	userID := c.QueryParam("user_id")
	start := c.QueryParam("start")
	end := c.QueryParam("end")
	if userID == "" || start == "" || end == "" {
		return NewValidationError(c, "user_id, start and end are required", nil)
	}

	summary, err := h.transactionService.Summary(c.Request().Context(), userID, start, end)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to build spending summary")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, summary)
}

// Get handles GET /transactions/:id?user_id=...
func (h *TransactionHandler) Get(c echo.Context) error {
	userID := c.QueryParam("user_id")
	id := c.Param("id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	txn, err := h.transactionService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, txn)
}

// Update handles PUT /transactions/:id
func (h *TransactionHandler) Update(c echo.Context) error {
	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	updated, err := h.transactionService.Update(c.Request().Context(), req.UserID, c.Param("id"), req.Category, req.Description, req.Notes)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /transactions/:id?user_id=...
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	if err := h.transactionService.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
