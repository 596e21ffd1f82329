package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetHandler handles budget HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// BudgetRequest represents the create/update request body
type BudgetRequest struct {
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Period    string          `json:"period"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	Icon      string          `json:"icon"`
}

// Create handles POST /budgets
func (h *BudgetHandler) Create(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.budgetService.Create(c.Request().Context(), &domain.Budget{
		UserID:    req.UserID,
		Name:      req.Name,
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    domain.BudgetPeriod(req.Period),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Icon:      req.Icon,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// List handles GET /budgets?user_id=...
func (h *BudgetHandler) List(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	budgets, err := h.budgetService.List(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list budgets")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"budgets": budgets})
}

// Update handles PUT /budgets/:id
func (h *BudgetHandler) Update(c echo.Context) error {
	var req BudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.budgetService.Update(c.Request().Context(), &domain.Budget{
		ID:        c.Param("id"),
		UserID:    req.UserID,
		Name:      req.Name,
		Category:  req.Category,
		Amount:    req.Amount,
		Period:    domain.BudgetPeriod(req.Period),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Icon:      req.Icon,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /budgets/:id?user_id=...
func (h *BudgetHandler) Delete(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	if err := h.budgetService.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
