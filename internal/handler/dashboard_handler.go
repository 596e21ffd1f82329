package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DashboardHandler handles the composite dashboard read
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles GET /dashboard/:user_id
func (h *DashboardHandler) Get(c echo.Context) error {
	userID := c.Param("user_id")

	dashboard, err := h.dashboardService.Get(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to build dashboard")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}
