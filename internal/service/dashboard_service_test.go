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

func TestDashboardService_Get(t *testing.T) {
	ledger := testutil.NewMockLedgerRepository()
	budgetRepo := testutil.NewMockBudgetRepository()
	goalRepo := testutil.NewMockGoalRepository()
	paymentRepo := testutil.NewMockScheduledPaymentRepository()
	docs := testutil.NewMockDocsRepository()

	txns := NewTransactionService(ledger, budgetRepo, nil)
	budgets := NewBudgetService(budgetRepo, nil)
	goals := NewGoalService(goalRepo, nil)
	payments := NewPaymentService(paymentRepo, txns, nil)
	milestones := NewMilestoneService(docs, nil)
	svc := NewDashboardService(txns, budgets, goals, payments, milestones)

	today := util.FormatDate(time.Now())
	ledger.Add(&domain.Transaction{UserID: "u1", Date: today, Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(50000)})
	ledger.Add(&domain.Transaction{UserID: "u1", Date: today, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(12000)})
	budgetRepo.Add(&domain.Budget{UserID: "u1", Category: "Groceries", Amount: decimal.NewFromInt(4000)})
	goalRepo.Add(&domain.Goal{UserID: "u1", Name: "Trip", TargetAmount: decimal.NewFromInt(30000)})
	paymentRepo.Add(&domain.ScheduledPayment{
		UserID: "u1", Name: "Rent", Amount: decimal.NewFromInt(15000),
		Status: domain.PaymentStatusActive, Frequency: domain.FrequencyMonthly,
		NextDueDate: util.FormatDate(time.Now().AddDate(0, 0, 2)),
	})

	dash, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, dash.Summary.TotalIncome.Equal(decimal.NewFromInt(50000)))
	assert.Len(t, dash.RecentTransactions, 2)
	assert.Len(t, dash.Budgets, 1)
	assert.Len(t, dash.Goals, 1)
	assert.Len(t, dash.UpcomingPayments, 1)
	require.NotNil(t, dash.XP)
	assert.Equal(t, 1, dash.XP.Level)
}

func TestDashboardService_Get_RequiresUser(t *testing.T) {
	svc := NewDashboardService(nil, nil, nil, nil, nil)
	_, err := svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUserIDRequired)
}
