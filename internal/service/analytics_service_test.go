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

func newAnalyticsFixture() (*AnalyticsService, *testutil.MockLedgerRepository, *testutil.MockBudgetRepository, *testutil.MockGoalRepository, *testutil.MockScheduledPaymentRepository) {
	ledger := testutil.NewMockLedgerRepository()
	budgets := testutil.NewMockBudgetRepository()
	goals := testutil.NewMockGoalRepository()
	payments := testutil.NewMockScheduledPaymentRepository()
	return NewAnalyticsService(ledger, budgets, goals, payments), ledger, budgets, goals, payments
}

func TestAnalyticsService_RebuildDailyTrends(t *testing.T) {
	svc, ledger, _, _, _ := newAnalyticsFixture()
	ledger.Add(&domain.Transaction{UserID: "u1", Date: "2026-08-01", Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(200)})
	ledger.Add(&domain.Transaction{UserID: "u1", Date: "2026-08-01", Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(1000)})
	ledger.Add(&domain.Transaction{UserID: "u1", Date: "2026-08-02", Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(50)})

	require.NoError(t, svc.RebuildDailyTrends(context.Background(), "u1"))

	trends := ledger.Trends["u1"]
	require.Len(t, trends, 2)
	assert.Equal(t, "2026-08-01", trends[0].Date)
	assert.True(t, trends[0].TotalSpent.Equal(decimal.NewFromInt(200)))
	assert.True(t, trends[0].TotalIncome.Equal(decimal.NewFromInt(1000)))
	assert.True(t, trends[1].TotalSpent.Equal(decimal.NewFromInt(50)))
}

func TestAnalyticsService_PredictNextMonth(t *testing.T) {
	svc, ledger, _, _, _ := newAnalyticsFixture()
	now := time.Now()
	thisMonth := now.Format("2006-01") + "-05"
	lastMonth := util.MonthsAgo(now, 1).Format("2006-01") + "-05"

	ledger.Add(&domain.Transaction{UserID: "u1", Date: thisMonth, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(3000)})
	ledger.Add(&domain.Transaction{UserID: "u1", Date: lastMonth, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(5000)})

	predicted, err := svc.PredictNextMonth(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, predicted.Equal(decimal.NewFromInt(4000)), "predicted %s", predicted)
}

func TestAnalyticsService_HealthScore_Grades(t *testing.T) {
	svc, ledger, _, goals, _ := newAnalyticsFixture()
	today := util.FormatDate(time.Now())

	// Strong profile: high savings rate, no debt, big goal corpus.
	ledger.Add(&domain.Transaction{UserID: "u1", Date: today, Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(300000)})
	ledger.Add(&domain.Transaction{UserID: "u1", Date: today, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(150000)})
	ledger.Add(&domain.Transaction{UserID: "u1", Date: today, Type: domain.TransactionTypeExpense, Category: "Investment", Amount: decimal.NewFromInt(45000)})
	goals.Add(&domain.Goal{UserID: "u1", Name: "Corpus", TargetAmount: decimal.NewFromInt(500000), CurrentAmount: decimal.NewFromInt(400000)})

	score, err := svc.HealthScore(context.Background(), "u1")
	require.NoError(t, err)
	assert.Greater(t, score.Overall, 70.0)
	assert.Contains(t, []string{"A", "B"}, score.Grade)
	assert.Equal(t, 100.0, score.DebtScore)
}

func TestAnalyticsService_DetectSubscriptions(t *testing.T) {
	svc, ledger, _, _, _ := newAnalyticsFixture()
	now := time.Now()

	// Same amount every ~30 days: a subscription.
	for i := 1; i <= 4; i++ {
		ledger.Add(&domain.Transaction{
			UserID:      "u1",
			Date:        util.FormatDate(now.AddDate(0, 0, -30*i)),
			Type:        domain.TransactionTypeExpense,
			Description: "NETFLIX",
			Amount:      decimal.NewFromInt(649),
		})
	}
	// One-off purchase: not a pattern.
	ledger.Add(&domain.Transaction{
		UserID: "u1", Date: util.FormatDate(now.AddDate(0, 0, -10)),
		Type: domain.TransactionTypeExpense, Description: "CROMA", Amount: decimal.NewFromInt(15000),
	})

	patterns, err := svc.DetectSubscriptions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, "subscription", patterns[0].Label)
	assert.Equal(t, "monthly", patterns[0].Frequency)
	assert.Equal(t, 4, patterns[0].Occurrences)
	assert.Greater(t, patterns[0].Confidence, 0.7)
}

func TestAnalyticsService_RebuildBudgetSpent(t *testing.T) {
	svc, ledger, budgets, _, _ := newAnalyticsFixture()
	now := time.Now()
	monthStart := util.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))

	b := budgets.Add(&domain.Budget{
		UserID:   "u1",
		Category: "Transport",
		Amount:   decimal.NewFromInt(3000),
		Period:   domain.BudgetPeriodMonthly,
		Spent:    decimal.NewFromInt(999), // drifted
	})
	ledger.Add(&domain.Transaction{UserID: "u1", Date: monthStart, Category: "Transport", Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(450)})

	require.NoError(t, svc.RebuildBudgetSpent(context.Background(), "u1"))
	assert.True(t, b.Spent.Equal(decimal.NewFromInt(450)), "spent %s", b.Spent)
}

func TestAnalyticsService_BuildAnalysisMetrics(t *testing.T) {
	svc, ledger, budgets, goals, _ := newAnalyticsFixture()
	today := util.FormatDate(time.Now())

	ledger.Add(&domain.Transaction{UserID: "u1", Date: today, Type: domain.TransactionTypeIncome, Amount: decimal.NewFromInt(100000)})
	ledger.Add(&domain.Transaction{UserID: "u1", Date: today, Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(40000)})
	budgets.Add(&domain.Budget{UserID: "u1", Category: "Food & Dining", Amount: decimal.NewFromInt(5000), Spent: decimal.NewFromInt(2000)})
	goals.Add(&domain.Goal{UserID: "u1", Name: "FD", TargetAmount: decimal.NewFromInt(100000), CurrentAmount: decimal.NewFromInt(100000), Status: domain.GoalStatusCompleted})

	metrics, err := svc.BuildAnalysisMetrics(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, metrics.TotalTransactions)
	assert.InDelta(t, 60, metrics.SavingsRate, 0.01)
	assert.Equal(t, 1, metrics.BudgetCount)
	assert.True(t, metrics.BudgetsRespected)
	assert.Equal(t, 1, metrics.GoalsCompleted)
	assert.NotEmpty(t, metrics.HealthGrade)
}

func TestAnalyticsService_ReconcileAll(t *testing.T) {
	svc, ledger, _, _, _ := newAnalyticsFixture()
	ledger.Add(&domain.Transaction{UserID: "u1", Date: "2026-08-01", Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(10)})
	ledger.Add(&domain.Transaction{UserID: "u2", Date: "2026-08-01", Type: domain.TransactionTypeExpense, Amount: decimal.NewFromInt(20)})

	require.NoError(t, svc.ReconcileAll(context.Background()))
	assert.Len(t, ledger.Trends["u1"], 1)
	assert.Len(t, ledger.Trends["u2"], 1)
}
