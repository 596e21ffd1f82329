package handler

import (
	"net/http"
	"strconv"

	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AnalyticsHandler handles analytics HTTP requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// HealthScore handles GET /analytics/health-score/:user_id
func (h *AnalyticsHandler) HealthScore(c echo.Context) error {
	userID := c.Param("user_id")

	score, err := h.analyticsService.HealthScore(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute health score")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, score)
}

// Refresh handles POST /analytics/refresh/:user_id. It rebuilds the
// derived daily trend cache and repairs budget spent drift from the ledger.
func (h *AnalyticsHandler) Refresh(c echo.Context) error {
	userID := c.Param("user_id")
	ctx := c.Request().Context()

	if err := h.analyticsService.RebuildDailyTrends(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to rebuild daily trends")
		return domainError(c, err)
	}
	if err := h.analyticsService.RebuildBudgetSpent(ctx, userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to rebuild budget spent")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"refreshed": true})
}

// Monthly handles GET /analytics/monthly/:user_id?months=6
func (h *AnalyticsHandler) Monthly(c echo.Context) error {
	userID := c.Param("user_id")

	months := 6
	if v := c.QueryParam("months"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 || parsed > 36 {
			return NewValidationError(c, "Invalid months", nil)
		}
		months = parsed
	}

	trends, err := h.analyticsService.MonthlyTrends(c.Request().Context(), userID, months)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to compute monthly trends")
		return domainError(c, err)
	}

	resp := map[string]interface{}{"trends": trends}

	// Prediction is best-effort; the trend series stands on its own.
	if predicted, err := h.analyticsService.PredictNextMonth(c.Request().Context(), userID); err == nil {
		resp["predicted_next_month"] = predicted
	}

	return c.JSON(http.StatusOK, resp)
}

// Subscriptions handles GET /analytics/subscriptions/:user_id
func (h *AnalyticsHandler) Subscriptions(c echo.Context) error {
	userID := c.Param("user_id")

	patterns, err := h.analyticsService.DetectSubscriptions(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to detect subscriptions")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"subscriptions": patterns})
}

// DailyInsight handles GET /insights/daily/:user_id
func (h *AnalyticsHandler) DailyInsight(c echo.Context) error {
	userID := c.Param("user_id")

	insight, err := h.analyticsService.DailyInsight(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to build daily insight")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, insight)
}
