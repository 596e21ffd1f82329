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

// PaymentHandler handles scheduled payment HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PaymentRequest represents the create/update request body
type PaymentRequest struct {
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Frequency    string          `json:"frequency"`
	DueDate      string          `json:"due_date"`
	IsAutopay    bool            `json:"is_autopay"`
	Status       string          `json:"status"`
	ReminderDays int             `json:"reminder_days"`
	PaymentType  string          `json:"payment_type"`

	InterestRate         float64         `json:"interest_rate"`
	TotalTenure          int             `json:"total_tenure"`
	PrincipalOutstanding decimal.Decimal `json:"principal_outstanding"`
}

// MarkPaidRequest represents the mark-paid request body
type MarkPaidRequest struct {
	UserID string `json:"user_id"`
}

func (req *PaymentRequest) toDomain(id string) *domain.ScheduledPayment {
	return &domain.ScheduledPayment{
		ID:                   id,
		UserID:               req.UserID,
		Name:                 req.Name,
		Amount:               req.Amount,
		Category:             req.Category,
		Frequency:            domain.PaymentFrequency(req.Frequency),
		DueDate:              req.DueDate,
		IsAutopay:            req.IsAutopay,
		Status:               domain.PaymentStatus(req.Status),
		ReminderDays:         req.ReminderDays,
		PaymentType:          domain.PaymentType(req.PaymentType),
		InterestRate:         req.InterestRate,
		TotalTenure:          req.TotalTenure,
		PrincipalOutstanding: req.PrincipalOutstanding,
	}
}

// Create handles POST /scheduled-payments
func (h *PaymentHandler) Create(c echo.Context) error {
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	created, err := h.paymentService.Create(c.Request().Context(), req.toDomain(""))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

// List handles GET /scheduled-payments?user_id=...
func (h *PaymentHandler) List(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	payments, err := h.paymentService.List(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list scheduled payments")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"payments": payments})
}

// Upcoming handles GET /scheduled-payments/upcoming?user_id=...&days=7
func (h *PaymentHandler) Upcoming(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	days := 7
	if v := c.QueryParam("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return NewValidationError(c, "Invalid days", nil)
		}
		days = parsed
	}

	payments, err := h.paymentService.Upcoming(c.Request().Context(), userID, days)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"payments": payments})
}

// Update handles PUT /scheduled-payments/:id
func (h *PaymentHandler) Update(c echo.Context) error {
	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	updated, err := h.paymentService.Update(c.Request().Context(), req.toDomain(c.Param("id")))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /scheduled-payments/:id?user_id=...
func (h *PaymentHandler) Delete(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	if err := h.paymentService.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkPaid handles POST /scheduled-payments/:id/mark-paid
func (h *PaymentHandler) MarkPaid(c echo.Context) error {
	var req MarkPaidRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	payment, err := h.paymentService.MarkPaid(c.Request().Context(), req.UserID, c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, payment)
}
