package service

import (
	"context"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillingService_CreateInvoice_ComputesTotals(t *testing.T) {
	svc := NewBillingService(testutil.NewMockBillingRepository())

	inv, err := svc.CreateInvoice(context.Background(), &domain.Invoice{
		UserID:     "u1",
		CustomerID: "c1",
		Items: []*domain.InvoiceItem{
			{Name: "Design work", Quantity: decimal.NewFromInt(10), Rate: decimal.NewFromInt(500), GSTRate: 18},
			{Name: "Hosting", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(2000)},
		},
	})
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(7000)), "subtotal %s", inv.Subtotal)
	assert.True(t, inv.GSTAmount.Equal(decimal.NewFromInt(900)), "gst %s", inv.GSTAmount)
	assert.True(t, inv.Total.Equal(decimal.NewFromInt(7900)), "total %s", inv.Total)
	assert.Equal(t, domain.InvoiceStatusDraft, inv.Status)
	assert.NotEmpty(t, inv.Number)
}

func TestBillingService_CreateInvoice_Validation(t *testing.T) {
	svc := NewBillingService(testutil.NewMockBillingRepository())

	_, err := svc.CreateInvoice(context.Background(), &domain.Invoice{UserID: "u1", CustomerID: "c1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.CreateInvoice(context.Background(), &domain.Invoice{
		UserID: "u1", CustomerID: "c1",
		Items: []*domain.InvoiceItem{{Name: "x", Quantity: decimal.Zero, Rate: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestBillingService_UpdateInvoiceStatus(t *testing.T) {
	repo := testutil.NewMockBillingRepository()
	svc := NewBillingService(repo)

	inv, err := svc.CreateInvoice(context.Background(), &domain.Invoice{
		UserID: "u1", CustomerID: "c1",
		Items: []*domain.InvoiceItem{{Name: "x", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateInvoiceStatus(context.Background(), "u1", inv.ID, domain.InvoiceStatusSent))
	assert.ErrorIs(t, svc.UpdateInvoiceStatus(context.Background(), "u1", inv.ID, "void"), domain.ErrInvalidStatus)
}

func TestBillingService_AssessSchemes_NeedsProfile(t *testing.T) {
	svc := NewBillingService(testutil.NewMockBillingRepository())

	_, err := svc.AssessSchemes(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, svc.SaveBusinessProfile(context.Background(), &domain.BusinessProfile{
		UserID:         "u1",
		BusinessName:   "Asha Snacks",
		Sector:         "food processing",
		YearsActive:    2,
		AnnualTurnover: decimal.NewFromInt(800000),
	}))

	assessments, err := svc.AssessSchemes(context.Background(), "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, assessments)
}

func TestBillingService_VendorPayments(t *testing.T) {
	svc := NewBillingService(testutil.NewMockBillingRepository())

	vendor, err := svc.CreateVendor(context.Background(), &domain.Vendor{UserID: "u1", Name: "Flour supplier"})
	require.NoError(t, err)

	_, err = svc.RecordVendorPayment(context.Background(), &domain.VendorPayment{
		UserID: "u1", VendorID: vendor.ID, Amount: decimal.NewFromInt(2500),
	})
	require.NoError(t, err)

	payments, err := svc.ListVendorPayments(context.Background(), "u1", vendor.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.NotEmpty(t, payments[0].Date)
}
