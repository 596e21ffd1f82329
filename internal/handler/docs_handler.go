package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// DocsHandler handles milestone and financial analysis requests
type DocsHandler struct {
	milestoneService *service.MilestoneService
	analyticsService *service.AnalyticsService
}

// NewDocsHandler creates a new DocsHandler
func NewDocsHandler(milestoneService *service.MilestoneService, analyticsService *service.AnalyticsService) *DocsHandler {
	return &DocsHandler{milestoneService: milestoneService, analyticsService: analyticsService}
}

// Milestones handles GET /milestones/:user_id
func (h *DocsHandler) Milestones(c echo.Context) error {
	userID := c.Param("user_id")

	milestones, xp, err := h.milestoneService.Progress(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load milestones")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"milestones": milestones,
		"xp":         xp,
	})
}

// AnalysisGate handles GET /analysis/:user_id. It reports cooldown state
// without running anything.
func (h *DocsHandler) AnalysisGate(c echo.Context) error {
	gate, err := h.milestoneService.Gate(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, gate)
}

// RunAnalysis handles POST /analysis/:user_id. A run inside the cooldown
// window is refused with the gate state so clients can show the wait.
func (h *DocsHandler) RunAnalysis(c echo.Context) error {
	userID := c.Param("user_id")
	ctx := c.Request().Context()

	gate, err := h.milestoneService.Gate(ctx, userID)
	if err != nil {
		return domainError(c, err)
	}
	if !gate.CanAnalyze {
		return c.JSON(http.StatusTooManyRequests, gate)
	}

	metrics, err := h.analyticsService.BuildAnalysisMetrics(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to build analysis metrics")
		return domainError(c, err)
	}

	result, err := h.milestoneService.RecordAnalysis(ctx, userID, metrics)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to record analysis")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
