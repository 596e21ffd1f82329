package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Vendor is a supplier the user pays regularly.
type Vendor struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// VendorPayment is one payment made to a vendor.
type VendorPayment struct {
	ID       string          `json:"id"`
	VendorID string          `json:"vendor_id"`
	UserID   string          `json:"user_id"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"`
	Notes    string          `json:"notes,omitempty"`
}

// Customer is a buyer on the invoicing side.
type Customer struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	GSTIN     string    `json:"gstin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type InvoiceStatus string

const (
	InvoiceStatusDraft InvoiceStatus = "draft"
	InvoiceStatusSent  InvoiceStatus = "sent"
	InvoiceStatusPaid  InvoiceStatus = "paid"
)

// Invoice with line items; totals are stored, not recomputed on read.
type Invoice struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	CustomerID string          `json:"customer_id"`
	Number     string          `json:"number"`
	Date       string          `json:"date"`
	DueDate    string          `json:"due_date,omitempty"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	GSTAmount  decimal.Decimal `json:"gst_amount"`
	Total      decimal.Decimal `json:"total"`
	Status     InvoiceStatus   `json:"status"`
	Items      []*InvoiceItem  `json:"items,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// InvoiceItem is one invoice line.
type InvoiceItem struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
	GSTRate   float64         `json:"gst_rate"`
	Amount    decimal.Decimal `json:"amount"`
}

// BusinessProfile is the single per-user business record used on invoices
// and in scheme assessment.
type BusinessProfile struct {
	UserID       string          `json:"user_id"`
	BusinessName string          `json:"business_name"`
	Sector       string          `json:"sector,omitempty"`
	GSTIN        string          `json:"gstin,omitempty"`
	UdyamNumber  string          `json:"udyam_number,omitempty"`
	YearsActive  int             `json:"years_active,omitempty"`
	AnnualTurnover decimal.Decimal `json:"annual_turnover,omitempty"`
	Address      string          `json:"address,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BillingRepository persists vendors, customers, invoices and the business
// profile in the planning store.
type BillingRepository interface {
	CreateVendor(ctx context.Context, v *Vendor) (*Vendor, error)
	ListVendors(ctx context.Context, userID string) ([]*Vendor, error)
	DeleteVendor(ctx context.Context, userID, id string) error
	CreateVendorPayment(ctx context.Context, p *VendorPayment) (*VendorPayment, error)
	ListVendorPayments(ctx context.Context, userID, vendorID string) ([]*VendorPayment, error)

	CreateCustomer(ctx context.Context, c *Customer) (*Customer, error)
	ListCustomers(ctx context.Context, userID string) ([]*Customer, error)

	CreateInvoice(ctx context.Context, inv *Invoice) (*Invoice, error)
	GetInvoice(ctx context.Context, userID, id string) (*Invoice, error)
	ListInvoices(ctx context.Context, userID string) ([]*Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, userID, id string, status InvoiceStatus) error

	UpsertBusinessProfile(ctx context.Context, p *BusinessProfile) error
	GetBusinessProfile(ctx context.Context, userID string) (*BusinessProfile, error)
}
