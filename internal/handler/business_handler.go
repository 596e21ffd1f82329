package handler

import (
	"encoding/json"
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/brainstorm"
	"github.com/arthamitra/arthamitra-backend/internal/mudra"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// BusinessHandler handles Mudra DPR, idea evaluation and brainstorming requests
type BusinessHandler struct {
	businessService  *service.BusinessService
	brainstormService *brainstorm.Service
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businessService *service.BusinessService, brainstormService *brainstorm.Service) *BusinessHandler {
	return &BusinessHandler{businessService: businessService, brainstormService: brainstormService}
}

// MudraCalculateRequest represents the DPR calculation request body
type MudraCalculateRequest struct {
	UserID string `json:"user_id"`
	mudra.Input
}

// MudraWhatIfRequest represents the what-if request body
type MudraWhatIfRequest struct {
	Input     mudra.Input                `json:"input"`
	Overrides map[string]json.RawMessage `json:"overrides"`
}

// MudraNarrativeRequest represents the narrative DPR request body
type MudraNarrativeRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	mudra.Input
}

// EvaluateIdeaRequest represents the idea evaluation request body
type EvaluateIdeaRequest struct {
	UserID string `json:"user_id"`
	Idea   string `json:"idea"`
}

// BrainstormChatRequest represents the persona chat request body
type BrainstormChatRequest struct {
	Persona string               `json:"persona"`
	History []brainstorm.Message `json:"history"`
	Message string               `json:"message"`
}

// BrainstormReverseRequest represents the reverse brainstorming request body
type BrainstormReverseRequest struct {
	Idea string `json:"idea"`
}

// BrainstormCanvasRequest represents the lean canvas extraction request body
type BrainstormCanvasRequest struct {
	History []brainstorm.Message `json:"history"`
}

// MudraCalculate handles POST /mudra-dpr/calculate
func (h *BusinessHandler) MudraCalculate(c echo.Context) error {
	var req MudraCalculateRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	out, err := h.businessService.GenerateMudraDPR(c.Request().Context(), req.UserID, req.Input)
	if err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("Mudra DPR generation failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// MudraWhatIf handles POST /mudra-dpr/whatif. What-if runs are throwaway
// and never persisted.
func (h *BusinessHandler) MudraWhatIf(c echo.Context) error {
	var req MudraWhatIfRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	out, err := h.businessService.MudraWhatIf(c.Request().Context(), req.Input, req.Overrides)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// MudraNarrative handles POST /mudra-dpr/narrative. It runs the projection
// engine and then writes the prose project report around it.
func (h *BusinessHandler) MudraNarrative(c echo.Context) error {
	var req MudraNarrativeRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	projection, err := h.businessService.GenerateMudraDPR(c.Request().Context(), req.UserID, req.Input)
	if err != nil {
		return domainError(c, err)
	}

	doc, err := h.businessService.GenerateDPRNarrative(c.Request().Context(), req.UserID, req.Title, projection)
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Msg("DPR narrative generation failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"projection": projection,
		"document":   doc,
	})
}

// ListMudraRuns handles GET /mudra-dpr/:user_id
func (h *BusinessHandler) ListMudraRuns(c echo.Context) error {
	runs, err := h.businessService.ListMudraDPRs(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"runs": runs})
}

// EvaluateIdea handles POST /ideas/evaluate
func (h *BusinessHandler) EvaluateIdea(c echo.Context) error {
	var req EvaluateIdeaRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" || req.Idea == "" {
		return NewValidationError(c, "user_id and idea are required", nil)
	}

	assessment, err := h.businessService.EvaluateIdea(c.Request().Context(), req.UserID, req.Idea)
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Msg("Idea evaluation failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, assessment)
}

// ListIdeaEvaluations handles GET /ideas/:user_id
func (h *BusinessHandler) ListIdeaEvaluations(c echo.Context) error {
	evaluations, err := h.businessService.ListIdeaEvaluations(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"evaluations": evaluations})
}

// BrainstormChat handles POST /brainstorm/chat
func (h *BusinessHandler) BrainstormChat(c echo.Context) error {
	var req BrainstormChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Message == "" {
		return NewValidationError(c, "message is required", nil)
	}
	if req.Persona == "" {
		req.Persona = string(brainstorm.PersonaNeutral)
	}

	reply, err := h.brainstormService.Chat(c.Request().Context(), brainstorm.Persona(req.Persona), req.History, req.Message)
	if err != nil {
		log.Warn().Err(err).Str("persona", req.Persona).Msg("Brainstorm chat failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"response": reply,
		"persona":  req.Persona,
	})
}

// BrainstormReverse handles POST /brainstorm/reverse
func (h *BusinessHandler) BrainstormReverse(c echo.Context) error {
	var req BrainstormReverseRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.Idea == "" {
		return NewValidationError(c, "idea is required", nil)
	}

	failureModes, preventions, err := h.brainstormService.Reverse(c.Request().Context(), req.Idea)
	if err != nil {
		log.Warn().Err(err).Msg("Reverse brainstorm failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"failure_modes": failureModes,
		"preventions":   preventions,
	})
}

// BrainstormCanvas handles POST /brainstorm/canvas
func (h *BusinessHandler) BrainstormCanvas(c echo.Context) error {
	var req BrainstormCanvasRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if len(req.History) == 0 {
		return NewValidationError(c, "history is required", nil)
	}

	canvas, err := h.brainstormService.ExtractCanvas(c.Request().Context(), req.History)
	if err != nil {
		log.Warn().Err(err).Msg("Canvas extraction failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, canvas)
}
