package handler

import (
	"net/http"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BillingHandler handles vendor, customer, invoice and business profile requests
type BillingHandler struct {
	billingService *service.BillingService
}

// NewBillingHandler creates a new BillingHandler
func NewBillingHandler(billingService *service.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// VendorRequest represents the vendor create request body
type VendorRequest struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Phone    string `json:"phone"`
	GSTIN    string `json:"gstin"`
}

// VendorPaymentRequest represents the vendor payment request body
type VendorPaymentRequest struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date"`
	Notes  string          `json:"notes"`
}

// CustomerRequest represents the customer create request body
type CustomerRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
	GSTIN  string `json:"gstin"`
}

// InvoiceItemRequest represents one invoice line in the create request
type InvoiceItemRequest struct {
	Name     string          `json:"name"`
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`
	GSTRate  float64         `json:"gst_rate"`
}

// InvoiceRequest represents the invoice create request body
type InvoiceRequest struct {
	UserID     string               `json:"user_id"`
	CustomerID string               `json:"customer_id"`
	Number     string               `json:"number"`
	Date       string               `json:"date"`
	DueDate    string               `json:"due_date"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceStatusRequest represents the status update request body
type InvoiceStatusRequest struct {
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// BusinessProfileRequest represents the business profile upsert body
type BusinessProfileRequest struct {
	UserID         string          `json:"user_id"`
	BusinessName   string          `json:"business_name"`
	Sector         string          `json:"sector"`
	GSTIN          string          `json:"gstin"`
	UdyamNumber    string          `json:"udyam_number"`
	YearsActive    int             `json:"years_active"`
	AnnualTurnover decimal.Decimal `json:"annual_turnover"`
	Address        string          `json:"address"`
}

func (req *BusinessProfileRequest) toDomain() *domain.BusinessProfile {
	return &domain.BusinessProfile{
		UserID:         req.UserID,
		BusinessName:   req.BusinessName,
		Sector:         req.Sector,
		GSTIN:          req.GSTIN,
		UdyamNumber:    req.UdyamNumber,
		YearsActive:    req.YearsActive,
		AnnualTurnover: req.AnnualTurnover,
		Address:        req.Address,
	}
}

// CreateVendor handles POST /vendors
func (h *BillingHandler) CreateVendor(c echo.Context) error {
	var req VendorRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	vendor, err := h.billingService.CreateVendor(c.Request().Context(), &domain.Vendor{
		UserID:   req.UserID,
		Name:     req.Name,
		Category: req.Category,
		Phone:    req.Phone,
		GSTIN:    req.GSTIN,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, vendor)
}

// ListVendors handles GET /vendors?user_id=...
func (h *BillingHandler) ListVendors(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	vendors, err := h.billingService.ListVendors(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list vendors")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"vendors": vendors})
}

// DeleteVendor handles DELETE /vendors/:id?user_id=...
func (h *BillingHandler) DeleteVendor(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	if err := h.billingService.DeleteVendor(c.Request().Context(), userID, c.Param("id")); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// RecordVendorPayment handles POST /vendors/:id/payments
func (h *BillingHandler) RecordVendorPayment(c echo.Context) error {
	var req VendorPaymentRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	payment, err := h.billingService.RecordVendorPayment(c.Request().Context(), &domain.VendorPayment{
		VendorID: c.Param("id"),
		UserID:   req.UserID,
		Amount:   req.Amount,
		Date:     req.Date,
		Notes:    req.Notes,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, payment)
}

// ListVendorPayments handles GET /vendors/:id/payments?user_id=...
func (h *BillingHandler) ListVendorPayments(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	payments, err := h.billingService.ListVendorPayments(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"payments": payments})
}

// CreateCustomer handles POST /customers
func (h *BillingHandler) CreateCustomer(c echo.Context) error {
	var req CustomerRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	customer, err := h.billingService.CreateCustomer(c.Request().Context(), &domain.Customer{
		UserID: req.UserID,
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		GSTIN:  req.GSTIN,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, customer)
}

// ListCustomers handles GET /customers?user_id=...
func (h *BillingHandler) ListCustomers(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	customers, err := h.billingService.ListCustomers(c.Request().Context(), userID)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"customers": customers})
}

// CreateInvoice handles POST /invoices
func (h *BillingHandler) CreateInvoice(c echo.Context) error {
	var req InvoiceRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	items := make([]*domain.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, &domain.InvoiceItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Rate:     item.Rate,
			GSTRate:  item.GSTRate,
		})
	}

	invoice, err := h.billingService.CreateInvoice(c.Request().Context(), &domain.Invoice{
		UserID:     req.UserID,
		CustomerID: req.CustomerID,
		Number:     req.Number,
		Date:       req.Date,
		DueDate:    req.DueDate,
		Items:      items,
	})
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, invoice)
}

// ListInvoices handles GET /invoices?user_id=...
func (h *BillingHandler) ListInvoices(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	invoices, err := h.billingService.ListInvoices(c.Request().Context(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list invoices")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"invoices": invoices})
}

// GetInvoice handles GET /invoices/:id?user_id=...
func (h *BillingHandler) GetInvoice(c echo.Context) error {
	userID := c.QueryParam("user_id")
	if userID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	invoice, err := h.billingService.GetInvoice(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, invoice)
}

// UpdateInvoiceStatus handles PATCH /invoices/:id/status
func (h *BillingHandler) UpdateInvoiceStatus(c echo.Context) error {
	var req InvoiceStatusRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	if err := h.billingService.UpdateInvoiceStatus(c.Request().Context(), req.UserID, c.Param("id"), domain.InvoiceStatus(req.Status)); err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"updated": true})
}

// SaveBusinessProfile handles POST /business-profile
func (h *BillingHandler) SaveBusinessProfile(c echo.Context) error {
	var req BusinessProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	if err := h.billingService.SaveBusinessProfile(c.Request().Context(), req.toDomain()); err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"saved": true})
}

// GetBusinessProfile handles GET /business-profile/:user_id
func (h *BillingHandler) GetBusinessProfile(c echo.Context) error {
	profile, err := h.billingService.GetBusinessProfile(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// AssessSchemes handles POST /schemes/assess. The body may carry an inline
// business profile; when present it is saved before assessment so repeat
// calls only need the user_id.
func (h *BillingHandler) AssessSchemes(c echo.Context) error {
	var req BusinessProfileRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if req.UserID == "" {
		return NewValidationError(c, "user_id is required", nil)
	}

	if req.BusinessName != "" {
		if err := h.billingService.SaveBusinessProfile(c.Request().Context(), req.toDomain()); err != nil {
			return domainError(c, err)
		}
	}

	assessments, err := h.billingService.AssessSchemes(c.Request().Context(), req.UserID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", req.UserID).Msg("Scheme assessment failed")
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"assessments": assessments})
}
