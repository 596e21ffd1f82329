package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/scheme"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/shopspring/decimal"
)

// BillingService covers the micro-business surface: vendors, customers,
// invoices, the business profile and scheme assessment.
type BillingService struct {
	billingRepo domain.BillingRepository
}

// NewBillingService creates a new BillingService.
func NewBillingService(billingRepo domain.BillingRepository) *BillingService {
	return &BillingService{billingRepo: billingRepo}
}

// CreateVendor validates and stores a vendor.
func (s *BillingService) CreateVendor(ctx context.Context, v *domain.Vendor) (*domain.Vendor, error) {
	if v.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return nil, domain.ErrNameRequired
	}
	return s.billingRepo.CreateVendor(ctx, v)
}

// ListVendors returns all vendors for a user.
func (s *BillingService) ListVendors(ctx context.Context, userID string) ([]*domain.Vendor, error) {
	return s.billingRepo.ListVendors(ctx, userID)
}

// DeleteVendor removes a vendor.
func (s *BillingService) DeleteVendor(ctx context.Context, userID, id string) error {
	return s.billingRepo.DeleteVendor(ctx, userID, id)
}

// RecordVendorPayment stores one payment against a vendor.
func (s *BillingService) RecordVendorPayment(ctx context.Context, p *domain.VendorPayment) (*domain.VendorPayment, error) {
	if p.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if p.VendorID == "" {
		return nil, domain.ErrInvalidInput
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if p.Date == "" {
		p.Date = util.FormatDate(time.Now())
	} else if _, err := util.ParseDate(p.Date); err != nil {
		return nil, domain.ErrInvalidDate
	}
	return s.billingRepo.CreateVendorPayment(ctx, p)
}

// ListVendorPayments returns payments for one vendor.
func (s *BillingService) ListVendorPayments(ctx context.Context, userID, vendorID string) ([]*domain.VendorPayment, error) {
	return s.billingRepo.ListVendorPayments(ctx, userID, vendorID)
}

// CreateCustomer validates and stores a customer.
func (s *BillingService) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	if c.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return nil, domain.ErrNameRequired
	}
	return s.billingRepo.CreateCustomer(ctx, c)
}

// ListCustomers returns all customers for a user.
func (s *BillingService) ListCustomers(ctx context.Context, userID string) ([]*domain.Customer, error) {
	return s.billingRepo.ListCustomers(ctx, userID)
}

// CreateInvoice computes line amounts and totals from quantity, rate and
// GST rate, then stores the invoice. Stored totals are authoritative.
func (s *BillingService) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	if inv.UserID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if inv.CustomerID == "" || len(inv.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if inv.Date == "" {
		inv.Date = util.FormatDate(time.Now())
	} else if _, err := util.ParseDate(inv.Date); err != nil {
		return nil, domain.ErrInvalidDate
	}

	subtotal := decimal.Zero
	gst := decimal.Zero
	for _, item := range inv.Items {
		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return nil, domain.ErrNameRequired
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) || item.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
		item.Amount = item.Quantity.Mul(item.Rate).Round(2)
		subtotal = subtotal.Add(item.Amount)
		if item.GSTRate > 0 {
			rate := decimal.NewFromFloat(item.GSTRate).Div(decimal.NewFromInt(100))
			gst = gst.Add(item.Amount.Mul(rate).Round(2))
		}
	}
	inv.Subtotal = subtotal
	inv.GSTAmount = gst
	inv.Total = subtotal.Add(gst)
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("INV-%s", time.Now().Format("20060102-150405"))
	}

	return s.billingRepo.CreateInvoice(ctx, inv)
}

// GetInvoice returns one invoice with its items.
func (s *BillingService) GetInvoice(ctx context.Context, userID, id string) (*domain.Invoice, error) {
	return s.billingRepo.GetInvoice(ctx, userID, id)
}

// ListInvoices returns all invoices for a user.
func (s *BillingService) ListInvoices(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	return s.billingRepo.ListInvoices(ctx, userID)
}

// UpdateInvoiceStatus moves an invoice between draft, sent and paid.
func (s *BillingService) UpdateInvoiceStatus(ctx context.Context, userID, id string, status domain.InvoiceStatus) error {
	switch status {
	case domain.InvoiceStatusDraft, domain.InvoiceStatusSent, domain.InvoiceStatusPaid:
	default:
		return domain.ErrInvalidStatus
	}
	return s.billingRepo.UpdateInvoiceStatus(ctx, userID, id, status)
}

// SaveBusinessProfile upserts the per-user business record.
func (s *BillingService) SaveBusinessProfile(ctx context.Context, p *domain.BusinessProfile) error {
	if p.UserID == "" {
		return domain.ErrUserIDRequired
	}
	p.BusinessName = strings.TrimSpace(p.BusinessName)
	if p.BusinessName == "" {
		return domain.ErrNameRequired
	}
	return s.billingRepo.UpsertBusinessProfile(ctx, p)
}

// GetBusinessProfile returns the business profile for a user.
func (s *BillingService) GetBusinessProfile(ctx context.Context, userID string) (*domain.BusinessProfile, error) {
	return s.billingRepo.GetBusinessProfile(ctx, userID)
}

// AssessSchemes matches the user's business profile against the MSME
// scheme catalog.
func (s *BillingService) AssessSchemes(ctx context.Context, userID string) ([]scheme.Assessment, error) {
	profile, err := s.billingRepo.GetBusinessProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return scheme.Assess(profile), nil
}
