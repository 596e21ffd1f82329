package service

import (
	"context"
	"testing"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPaymentFixture() (*PaymentService, *testutil.MockScheduledPaymentRepository, *testutil.MockLedgerRepository) {
	payments := testutil.NewMockScheduledPaymentRepository()
	ledger := testutil.NewMockLedgerRepository()
	txns := NewTransactionService(ledger, testutil.NewMockBudgetRepository(), nil)
	return NewPaymentService(payments, txns, nil), payments, ledger
}

func TestPaymentService_Create_Validation(t *testing.T) {
	svc, _, _ := newPaymentFixture()

	_, err := svc.Create(context.Background(), &domain.ScheduledPayment{
		UserID: "u1", Name: "Rent", Amount: decimal.NewFromInt(15000),
		Frequency: "fortnightly", DueDate: "2026-09-01",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidFrequency)

	_, err = svc.Create(context.Background(), &domain.ScheduledPayment{
		UserID: "u1", Name: "Rent", Amount: decimal.NewFromInt(15000),
		Frequency: domain.FrequencyMonthly, DueDate: "01/09/2026",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestPaymentService_MarkPaid_AdvancesDueDate(t *testing.T) {
	svc, payments, ledger := newPaymentFixture()
	p := payments.Add(&domain.ScheduledPayment{
		UserID:      "u1",
		Name:        "Rent",
		Amount:      decimal.NewFromInt(15000),
		Category:    "Rent & Housing",
		Frequency:   domain.FrequencyMonthly,
		DueDate:     "2026-01-31",
		NextDueDate: "2026-01-31",
		Status:      domain.PaymentStatusActive,
		PaymentType: domain.PaymentTypeRegular,
	})

	updated, err := svc.MarkPaid(context.Background(), "u1", p.ID)
	require.NoError(t, err)

	// Month-end clamp: Jan 31 + 1 month = Feb 28.
	assert.Equal(t, "2026-02-28", updated.NextDueDate)
	assert.Equal(t, util.FormatDate(time.Now()), updated.LastPaidDate)
	assert.Len(t, ledger.Transactions, 1)
	for _, txn := range ledger.Transactions {
		assert.Equal(t, "EMI: Rent (scheduled payment)", txn.Description)
		assert.Equal(t, domain.TransactionTypeExpense, txn.Type)
	}
}

func TestPaymentService_MarkPaid_LoanSplit(t *testing.T) {
	svc, payments, _ := newPaymentFixture()
	p := payments.Add(&domain.ScheduledPayment{
		UserID:               "u1",
		Name:                 "Car loan",
		Amount:               decimal.NewFromInt(20000),
		Category:             "EMI & Loans",
		Frequency:            domain.FrequencyMonthly,
		DueDate:              "2026-09-05",
		NextDueDate:          "2026-09-05",
		Status:               domain.PaymentStatusActive,
		PaymentType:          domain.PaymentTypeLoan,
		InterestRate:         12,
		PrincipalOutstanding: decimal.NewFromInt(500000),
	})

	updated, err := svc.MarkPaid(context.Background(), "u1", p.ID)
	require.NoError(t, err)

	// Interest = 500000 * 12/1200 = 5000; principal = 15000.
	assert.True(t, updated.TotalInterestPaid.Equal(decimal.NewFromInt(5000)), "interest %s", updated.TotalInterestPaid)
	assert.True(t, updated.TotalPrincipalPaid.Equal(decimal.NewFromInt(15000)), "principal %s", updated.TotalPrincipalPaid)
	assert.True(t, updated.PrincipalOutstanding.Equal(decimal.NewFromInt(485000)), "outstanding %s", updated.PrincipalOutstanding)
	assert.Equal(t, domain.PaymentStatusActive, updated.Status)
}

func TestPaymentService_MarkPaid_FinalInstallmentCompletes(t *testing.T) {
	svc, payments, _ := newPaymentFixture()
	p := payments.Add(&domain.ScheduledPayment{
		UserID:               "u1",
		Name:                 "Phone EMI",
		Amount:               decimal.NewFromInt(5000),
		Category:             "EMI & Loans",
		Frequency:            domain.FrequencyMonthly,
		DueDate:              "2026-09-05",
		NextDueDate:          "2026-09-05",
		Status:               domain.PaymentStatusActive,
		PaymentType:          domain.PaymentTypeEMI,
		InterestRate:         12,
		PrincipalOutstanding: decimal.NewFromInt(1000),
	})

	updated, err := svc.MarkPaid(context.Background(), "u1", p.ID)
	require.NoError(t, err)

	// Principal is capped at the outstanding balance, never negative.
	assert.True(t, updated.PrincipalOutstanding.IsZero())
	assert.True(t, updated.TotalPrincipalPaid.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, domain.PaymentStatusCompleted, updated.Status)
}

func TestPaymentService_Upcoming(t *testing.T) {
	svc, payments, _ := newPaymentFixture()
	now := time.Now()

	payments.Add(&domain.ScheduledPayment{
		UserID: "u1", Name: "Due soon", Amount: decimal.NewFromInt(100),
		Frequency: domain.FrequencyMonthly, Status: domain.PaymentStatusActive,
		NextDueDate: util.FormatDate(now.AddDate(0, 0, 3)),
	})
	payments.Add(&domain.ScheduledPayment{
		UserID: "u1", Name: "Far away", Amount: decimal.NewFromInt(100),
		Frequency: domain.FrequencyMonthly, Status: domain.PaymentStatusActive,
		NextDueDate: util.FormatDate(now.AddDate(0, 0, 20)),
	})
	payments.Add(&domain.ScheduledPayment{
		UserID: "u1", Name: "Paused", Amount: decimal.NewFromInt(100),
		Frequency: domain.FrequencyMonthly, Status: domain.PaymentStatusPaused,
		NextDueDate: util.FormatDate(now.AddDate(0, 0, 2)),
	})

	due, err := svc.Upcoming(context.Background(), "u1", 7)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "Due soon", due[0].Name)
}
