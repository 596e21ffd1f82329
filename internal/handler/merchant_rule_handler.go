package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// MerchantRuleHandler handles merchant rule HTTP requests
type MerchantRuleHandler struct {
	ruleService *service.MerchantRuleService
}

// NewMerchantRuleHandler creates a new MerchantRuleHandler
func NewMerchantRuleHandler(ruleService *service.MerchantRuleService) *MerchantRuleHandler {
	return &MerchantRuleHandler{ruleService: ruleService}
}

// MerchantRuleRequest represents the create request body
type MerchantRuleRequest struct {
	Keyword  string `json:"keyword"`
	Category string `json:"category"`
	IsAuto   bool   `json:"is_auto"`
}

// List handles GET /merchant-rules
func (h *MerchantRuleHandler) List(c echo.Context) error {
	rules, err := h.ruleService.List(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list merchant rules")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"rules": rules})
}

// Create handles POST /merchant-rules
func (h *MerchantRuleHandler) Create(c echo.Context) error {
	var req MerchantRuleRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	rule, err := h.ruleService.Create(c.Request().Context(), req.Keyword, req.Category, req.IsAuto)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, rule)
}

// Delete handles DELETE /merchant-rules/:id
func (h *MerchantRuleHandler) Delete(c echo.Context) error {
	if err := h.ruleService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
