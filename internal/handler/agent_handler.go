package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/agent"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// maxUploadBytes caps multipart uploads (statements and receipts).
const maxUploadBytes = 20 << 20 // 20 MiB

// AgentHandler handles the conversational agent and document scanning requests
type AgentHandler struct {
	agent      *agent.Agent
	receipts   *service.ReceiptService
	statements *service.StatementService
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(a *agent.Agent, receipts *service.ReceiptService, statements *service.StatementService) *AgentHandler {
	return &AgentHandler{agent: a, receipts: receipts, statements: statements}
}

// ChatRequest represents an agent chat request body
type ChatRequest struct {
	UserID      string                 `json:"user_id"`
	Query       string                 `json:"query"`
	UserContext string                 `json:"user_context,omitempty"`
	History     []agent.HistoryMessage `json:"history,omitempty"`
}

// ConfirmActionRequest represents a confirm-action request body
type ConfirmActionRequest struct {
	UserID    string `json:"user_id"`
	ActionID  string `json:"action_id"`
	Confirmed *bool  `json:"confirmed,omitempty"`
}

// Chat handles POST /agent/chat and POST /agent/agentic-chat
func (h *AgentHandler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	var errs []ValidationError
	if req.UserID == "" {
		errs = append(errs, ValidationError{Field: "user_id", Message: "user_id is required"})
	}
	if req.Query == "" {
		errs = append(errs, ValidationError{Field: "query", Message: "query is required"})
	}
	if len(errs) > 0 {
		return NewValidationError(c, "Missing required fields", errs)
	}

	resp, err := h.agent.Chat(c.Request().Context(), &agent.ChatRequest{
		UserID:      req.UserID,
		Query:       req.Query,
		UserContext: req.UserContext,
		History:     req.History,
	})
	if err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("Agent chat failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

// ConfirmAction handles POST /agent/confirm-action
func (h *AgentHandler) ConfirmAction(c echo.Context) error {
	var req ConfirmActionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" || req.ActionID == "" {
		return NewValidationError(c, "user_id and action_id are required", nil)
	}

	// Absent means confirmed; clients send confirmed=false to cancel.
	if req.Confirmed != nil && !*req.Confirmed {
		if err := h.agent.CancelAction(req.UserID, req.ActionID); err != nil {
			return domainError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success":   true,
			"cancelled": true,
			"action_id": req.ActionID,
		})
	}

	action, err := h.agent.ConfirmAction(c.Request().Context(), req.UserID, req.ActionID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Str("action_id", req.ActionID).Msg("Confirm action failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"action_id":   action.ID,
		"action_type": action.Type,
		"message":     action.Message,
	})
}

// ScanDocument handles POST /agent/scan-document (multipart, bank statement PDF)
func (h *AgentHandler) ScanDocument(c echo.Context) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	data, _, err := readUpload(c, "file")
	if err != nil {
		return NewValidationError(c, "A file upload named 'file' is required", nil)
	}

	result, err := h.statements.Import(c.Request().Context(), userID, data)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Statement import failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ScanReceipt handles POST /agent/scan-receipt (multipart, receipt image)
func (h *AgentHandler) ScanReceipt(c echo.Context) error {
	userID := c.FormValue("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	data, header, err := readUpload(c, "file")
	if err != nil {
		return NewValidationError(c, "A file upload named 'file' is required", nil)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	result, err := h.receipts.Scan(c.Request().Context(), userID, header.Filename, data, mimeType)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Receipt scan failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// readUpload reads one multipart file field into memory, capped at
// maxUploadBytes.
func readUpload(c echo.Context, field string) ([]byte, *multipart.FileHeader, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil, err
	}

	f, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, nil, err
	}
	return data, header, nil
}
