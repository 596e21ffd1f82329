package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BillSplitHandler handles bill split HTTP requests
type BillSplitHandler struct {
	billSplitService *service.BillSplitService
}

// NewBillSplitHandler creates a new BillSplitHandler
func NewBillSplitHandler(billSplitService *service.BillSplitService) *BillSplitHandler {
	return &BillSplitHandler{billSplitService: billSplitService}
}

// BillItemRequest represents one bill line in the create request
type BillItemRequest struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// SplitShareRequest represents one participant share in the create request
type SplitShareRequest struct {
	Participant string          `json:"participant"`
	ShareAmount decimal.Decimal `json:"share_amount"`
}

// BillSplitRequest represents the create request body
type BillSplitRequest struct {
	UserID      string              `json:"user_id"`
	Title       string              `json:"title"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Date        string              `json:"date"`
	Items       []BillItemRequest   `json:"items"`
	Shares      []SplitShareRequest `json:"shares"`
}

// SplitPaymentRequest represents the share payment request body
type SplitPaymentRequest struct {
	UserID string          `json:"user_id"`
	ItemID string          `json:"item_id"`
	Amount decimal.Decimal `json:"amount"`
}

// Create handles POST /bill-splits
func (h *BillSplitHandler) Create(c echo.Context) error {
	var req BillSplitRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	items := make([]*domain.BillItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &domain.BillItem{Name: item.Name, Amount: item.Amount})
	}
	shares := make([]*domain.SplitItem, 0, len(req.Shares))
	for _, share := range req.Shares {
		shares = append(shares, &domain.SplitItem{
			Participant: share.Participant,
			ShareAmount: share.ShareAmount,
		})
	}

	split, err := h.billSplitService.Create(c.Request().Context(), &domain.BillSplit{
		UserID:      req.UserID,
		Title:       req.Title,
		TotalAmount: req.TotalAmount,
		Date:        req.Date,
		Items:       items,
		Shares:      shares,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, split)
}

// List handles GET /bill-splits?user_id=...
func (h *BillSplitHandler) List(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	splits, err := h.billSplitService.List(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list bill splits")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"splits": splits})
}

// Get handles GET /bill-splits/:id?user_id=...
func (h *BillSplitHandler) Get(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	split, err := h.billSplitService.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, split)
}

// MakePayment handles POST /bill-splits/:id/payments
func (h *BillSplitHandler) MakePayment(c echo.Context) error {
	var req SplitPaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" || req.ItemID == "" {
		return NewValidationError(c, "user_id and item_id are required", nil)
	}

	split, err := h.billSplitService.MakePayment(c.Request().Context(), req.UserID, c.Param("id"), req.ItemID, req.Amount)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, split)
}
