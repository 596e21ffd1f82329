package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/categorize"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// maxBatchDescriptions bounds a single batch categorization request.
const maxBatchDescriptions = 200

// CategorizeHandler handles merchant categorization requests
type CategorizeHandler struct {
	categorizer *categorize.Categorizer
}

// NewCategorizeHandler creates a new CategorizeHandler
func NewCategorizeHandler(categorizer *categorize.Categorizer) *CategorizeHandler {
	return &CategorizeHandler{categorizer: categorizer}
}

// CategorizeRequest represents a single categorization request
type CategorizeRequest struct {
	Description string `json:"description"`
}

// CategorizeBatchRequest represents a batch categorization request
type CategorizeBatchRequest struct {
	Descriptions []string `json:"descriptions"`
}

// Categorize handles POST /categorize
func (h *CategorizeHandler) Categorize(c echo.Context) error {
	var req CategorizeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Description == "" {
		return NewValidationError(c, "description is required", nil)
	}

	category, err := h.categorizer.Categorize(c.Request().Context(), req.Description)
	if err != nil {
		log.Error().Err(err).Msg("Categorization failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"description": req.Description,
		"category":    category,
	})
}

// CategorizeBatch handles POST /categorize/batch
func (h *CategorizeHandler) CategorizeBatch(c echo.Context) error {
	var req CategorizeBatchRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.Descriptions) == 0 {
		return NewValidationError(c, "descriptions is required", nil)
	}
	if len(req.Descriptions) > maxBatchDescriptions {
		return NewValidationError(c, "Too many descriptions in one batch", nil)
	}

	categories, err := h.categorizer.CategorizeBatch(c.Request().Context(), req.Descriptions)
	if err != nil {
		log.Error().Err(err).Int("count", len(req.Descriptions)).Msg("Batch categorization failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}
