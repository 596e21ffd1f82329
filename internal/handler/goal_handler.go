package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// GoalHandler handles savings goal HTTP requests
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{goalService: goalService}
}

// GoalRequest represents the create/update request body
type GoalRequest struct {
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"target_amount"`
	Deadline     string          `json:"deadline"`
	Status       string          `json:"status"`
	Icon         string          `json:"icon"`
	Notes        string          `json:"notes"`
}

// AddFundsRequest represents the add-funds request body
type AddFundsRequest struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// Create handles POST /goals
func (h *GoalHandler) Create(c echo.Context) error {
	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.goalService.Create(c.Request().Context(), &domain.Goal{
		UserID:       req.UserID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		Icon:         req.Icon,
		Notes:        req.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// List handles GET /goals?user_id=...
func (h *GoalHandler) List(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	goals, err := h.goalService.List(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list goals")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"goals": goals})
}

// Update handles PUT /goals/:id
func (h *GoalHandler) Update(c echo.Context) error {
	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.goalService.Update(c.Request().Context(), &domain.Goal{
		ID:           c.Param("id"),
		UserID:       req.UserID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		Deadline:     req.Deadline,
		Status:       domain.GoalStatus(req.Status),
		Icon:         req.Icon,
		Notes:        req.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /goals/:id?user_id=...
func (h *GoalHandler) Delete(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	if err := h.goalService.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddFunds handles POST /goals/:id/add-funds
func (h *GoalHandler) AddFunds(c echo.Context) error {
	var req AddFundsRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	goal, err := h.goalService.AddFunds(c.Request().Context(), req.UserID, c.Param("id"), req.Amount)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, goal)
}
