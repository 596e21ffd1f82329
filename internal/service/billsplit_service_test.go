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

func newSplitFixture(t *testing.T) (*BillSplitService, *domain.BillSplit) {
	t.Helper()
	svc := NewBillSplitService(testutil.NewMockBillSplitRepository(), nil)
	split, err := svc.Create(context.Background(), &domain.BillSplit{
		UserID:      "u1",
		Title:       "Goa dinner",
		TotalAmount: decimal.NewFromInt(3000),
		Shares: []*domain.SplitItem{
			{Participant: "Asha", ShareAmount: decimal.NewFromInt(1000)},
			{Participant: "Ravi", ShareAmount: decimal.NewFromInt(1000)},
			{Participant: "Meena", ShareAmount: decimal.NewFromInt(1000)},
		},
	})
	require.NoError(t, err)
	return svc, split
}

func TestBillSplitService_Create_SharesMustSum(t *testing.T) {
	svc := NewBillSplitService(testutil.NewMockBillSplitRepository(), nil)

	_, err := svc.Create(context.Background(), &domain.BillSplit{
		UserID:      "u1",
		Title:       "Lunch",
		TotalAmount: decimal.NewFromInt(1000),
		Shares: []*domain.SplitItem{
			{Participant: "Asha", ShareAmount: decimal.NewFromInt(400)},
			{Participant: "Ravi", ShareAmount: decimal.NewFromInt(400)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrSharesMismatch)
}

func TestBillSplitService_Create_ToleratesPaisaRounding(t *testing.T) {
	svc := NewBillSplitService(testutil.NewMockBillSplitRepository(), nil)

	// 3 × 333.33 = 999.99, within the 0.01 tolerance of 1000.
	_, err := svc.Create(context.Background(), &domain.BillSplit{
		UserID:      "u1",
		Title:       "Lunch",
		TotalAmount: decimal.NewFromInt(1000),
		Shares: []*domain.SplitItem{
			{Participant: "A", ShareAmount: decimal.NewFromFloat(333.33)},
			{Participant: "B", ShareAmount: decimal.NewFromFloat(333.33)},
			{Participant: "C", ShareAmount: decimal.NewFromFloat(333.33)},
		},
	})
	assert.NoError(t, err)
}

func TestBillSplitService_MakePayment_StatusProgression(t *testing.T) {
	svc, split := newSplitFixture(t)
	share := split.Shares[0]

	updated, err := svc.MakePayment(context.Background(), "u1", split.ID, share.ID, decimal.NewFromInt(400))
	require.NoError(t, err)
	got := findShare(updated, share.ID)
	assert.Equal(t, domain.SplitPaymentPartial, got.PaymentStatus)
	assert.True(t, got.PaidAmount.Equal(decimal.NewFromInt(400)))

	updated, err = svc.MakePayment(context.Background(), "u1", split.ID, share.ID, decimal.NewFromInt(600))
	require.NoError(t, err)
	got = findShare(updated, share.ID)
	assert.Equal(t, domain.SplitPaymentPaid, got.PaymentStatus)

	// Paid is terminal.
	_, err = svc.MakePayment(context.Background(), "u1", split.ID, share.ID, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestBillSplitService_MakePayment_UnknownShare(t *testing.T) {
	svc, split := newSplitFixture(t)
	_, err := svc.MakePayment(context.Background(), "u1", split.ID, "nope", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func findShare(split *domain.BillSplit, id string) *domain.SplitItem {
	for _, s := range split.Shares {
		if s.ID == id {
			return s
		}
	}
	return nil
}
