package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/categorize"
	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Health score weights: savings, debt, liquidity, investment.
const (
	weightSavings    = 0.35
	weightDebt       = 0.25
	weightLiquidity  = 0.25
	weightInvestment = 0.15
)

const subscriptionLookbackMonths = 6

// MonthlyTrend is one month of income/expense/savings.
type MonthlyTrend struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Savings decimal.Decimal `json:"savings"`
}

// HealthScore is the weighted financial health assessment.
type HealthScore struct {
	Overall         float64 `json:"overall"`
	Grade           string  `json:"grade"`
	SavingsScore    float64 `json:"savings_score"`
	DebtScore       float64 `json:"debt_score"`
	LiquidityScore  float64 `json:"liquidity_score"`
	InvestmentScore float64 `json:"investment_score"`
}

// SpendingPattern is one detected recurring merchant pattern.
type SpendingPattern struct {
	Merchant    string  `json:"merchant"`
	Label       string  `json:"label"` // subscription | recurring_habit
	Frequency   string  `json:"frequency"`
	MeanAmount  float64 `json:"mean_amount"`
	Occurrences int     `json:"occurrences"`
	Confidence  float64 `json:"confidence"`
}

// DailyInsight is the one-paragraph insight card.
type DailyInsight struct {
	Date              string   `json:"date"`
	TopCategory       string   `json:"top_category,omitempty"`
	TopCategoryAmount string   `json:"top_category_amount,omitempty"`
	DayChangePct      float64  `json:"day_change_pct"`
	BudgetsNearLimit  []string `json:"budgets_near_limit"`
	Text              string   `json:"text"`
}

// AnalyticsService derives views from the ledger and maintains the
// derived caches.
type AnalyticsService struct {
	ledgerRepo  domain.LedgerRepository
	budgetRepo  domain.BudgetRepository
	goalRepo    domain.GoalRepository
	paymentRepo domain.ScheduledPaymentRepository
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(ledgerRepo domain.LedgerRepository, budgetRepo domain.BudgetRepository, goalRepo domain.GoalRepository, paymentRepo domain.ScheduledPaymentRepository) *AnalyticsService {
	return &AnalyticsService{
		ledgerRepo:  ledgerRepo,
		budgetRepo:  budgetRepo,
		goalRepo:    goalRepo,
		paymentRepo: paymentRepo,
	}
}

// RebuildDailyTrends replaces the user's daily trend cache from the
// ledger.
func (s *AnalyticsService) RebuildDailyTrends(ctx context.Context, userID string) error {
	totals, err := s.ledgerRepo.DailyTotals(ctx, userID)
	if err != nil {
		return err
	}

	byDate := make(map[string]*domain.DailyTrend)
	var dates []string
	for _, t := range totals {
		row, ok := byDate[t.Date]
		if !ok {
			row = &domain.DailyTrend{UserID: userID, Date: t.Date}
			byDate[t.Date] = row
			dates = append(dates, t.Date)
		}
		switch t.Type {
		case domain.TransactionTypeExpense:
			row.TotalSpent = t.Total
		case domain.TransactionTypeIncome:
			row.TotalIncome = t.Total
		}
	}

	sort.Strings(dates)
	trends := make([]*domain.DailyTrend, 0, len(dates))
	for _, d := range dates {
		trends = append(trends, byDate[d])
	}
	return s.ledgerRepo.ReplaceDailyTrends(ctx, userID, trends)
}

// MonthlyTrends aggregates the last `months` calendar months from the
// ledger directly; the daily cache is not consulted so the answer cannot
// be stale.
func (s *AnalyticsService) MonthlyTrends(ctx context.Context, userID string, months int) ([]*MonthlyTrend, error) {
	if months <= 0 {
		months = 6
	}
	startMonth := util.MonthsAgo(time.Now(), months-1).Format("2006-01")

	totals, err := s.ledgerRepo.MonthlyTotals(ctx, userID, startMonth)
	if err != nil {
		return nil, err
	}

	byMonth := make(map[string]*MonthlyTrend)
	var keys []string
	for _, t := range totals {
		row, ok := byMonth[t.Month]
		if !ok {
			row = &MonthlyTrend{Month: t.Month}
			byMonth[t.Month] = row
			keys = append(keys, t.Month)
		}
		switch t.Type {
		case domain.TransactionTypeIncome:
			row.Income = t.Total
		case domain.TransactionTypeExpense:
			row.Expense = t.Total
		}
	}

	sort.Strings(keys)
	out := make([]*MonthlyTrend, 0, len(keys))
	for _, k := range keys {
		row := byMonth[k]
		row.Savings = row.Income.Sub(row.Expense)
		out = append(out, row)
	}
	return out, nil
}

// PredictNextMonth is a 3-month simple moving average of monthly expense
// totals.
func (s *AnalyticsService) PredictNextMonth(ctx context.Context, userID string) (decimal.Decimal, error) {
	trends, err := s.MonthlyTrends(ctx, userID, 3)
	if err != nil {
		return decimal.Zero, err
	}
	if len(trends) == 0 {
		return decimal.Zero, nil
	}

	sum := decimal.Zero
	for _, t := range trends {
		sum = sum.Add(t.Expense)
	}
	return sum.Div(decimal.NewFromInt(int64(len(trends)))).Round(2), nil
}

// CategoryBreakdown returns the expense split by category for a window.
func (s *AnalyticsService) CategoryBreakdown(ctx context.Context, userID, start, end string) (map[string]decimal.Decimal, error) {
	summary, err := s.ledgerRepo.GetSpendingSummary(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	return summary.ByCategory, nil
}

// HealthScore scores savings, debt, liquidity and investment behaviour
// over the last three months and grades the weighted mean.
func (s *AnalyticsService) HealthScore(ctx context.Context, userID string) (*HealthScore, error) {
	end := time.Now()
	start := end.AddDate(0, -3, 0)
	summary, err := s.ledgerRepo.GetSpendingSummary(ctx, userID, util.FormatDate(start), util.FormatDate(end))
	if err != nil {
		return nil, err
	}

	monthlyIncome := summary.TotalIncome.InexactFloat64() / 3
	monthlyExpenses := summary.TotalExpenses.InexactFloat64() / 3

	// Savings: a 20% savings rate scores full marks.
	savingsScore := clamp(summary.SavingsRate*5, 0, 100)

	// Debt: monthly loan/EMI obligations against income. DTI of 10% or
	// less scores full marks, 50% or more scores zero.
	debtScore := 100.0
	if monthlyIncome > 0 {
		var obligations float64
		if payments, err := s.paymentRepo.ListPayments(ctx, userID); err == nil {
			for _, p := range payments {
				if p.Status != domain.PaymentStatusActive {
					continue
				}
				if p.PaymentType == domain.PaymentTypeLoan || p.PaymentType == domain.PaymentTypeEMI {
					obligations += monthlyAmount(p)
				}
			}
		}
		dti := obligations / monthlyIncome
		debtScore = clamp((0.5-dti)/0.4*100, 0, 100)
	}

	// Liquidity: months of expenses covered by goal balances; six months
	// scores full marks.
	liquidityScore := 0.0
	if monthlyExpenses > 0 {
		var corpus float64
		if goals, err := s.goalRepo.ListGoals(ctx, userID); err == nil {
			for _, g := range goals {
				corpus += g.CurrentAmount.InexactFloat64()
			}
		}
		liquidityScore = clamp(corpus/monthlyExpenses/6*100, 0, 100)
	}

	// Investment: share of income routed to the Investment category; 15%
	// scores full marks.
	investmentScore := 0.0
	if monthlyIncome > 0 {
		invested := summary.ByCategory["Investment"].InexactFloat64() / 3
		investmentScore = clamp(invested/monthlyIncome/0.15*100, 0, 100)
	}

	overall := savingsScore*weightSavings + debtScore*weightDebt +
		liquidityScore*weightLiquidity + investmentScore*weightInvestment

	return &HealthScore{
		Overall:         round2(overall),
		Grade:           gradeFor(overall),
		SavingsScore:    round2(savingsScore),
		DebtScore:       round2(debtScore),
		LiquidityScore:  round2(liquidityScore),
		InvestmentScore: round2(investmentScore),
	}, nil
}

func gradeFor(score float64) string {
	switch {
	case score >= 85:
		return "A"
	case score >= 70:
		return "B"
	case score >= 55:
		return "C"
	case score >= 40:
		return "D"
	default:
		return "F"
	}
}

// BuildAnalysisMetrics assembles the metrics payload a health analysis
// snapshot is computed from.
func (s *AnalyticsService) BuildAnalysisMetrics(ctx context.Context, userID string) (*AnalysisMetrics, error) {
	health, err := s.HealthScore(ctx, userID)
	if err != nil {
		return nil, err
	}

	end := time.Now()
	start := end.AddDate(0, -3, 0)
	summary, err := s.ledgerRepo.GetSpendingSummary(ctx, userID, util.FormatDate(start), util.FormatDate(end))
	if err != nil {
		return nil, err
	}
	monthlyIncome := summary.TotalIncome.InexactFloat64() / 3
	monthlyExpenses := summary.TotalExpenses.InexactFloat64() / 3

	metrics := &AnalysisMetrics{
		SavingsRate:    round2(summary.SavingsRate),
		HealthScore:    health.Overall,
		HealthGrade:    health.Grade,
		HasInvestments: summary.ByCategory["Investment"].IsPositive(),
	}

	txns, err := s.ledgerRepo.QueryTransactions(ctx, userID, &domain.TransactionFilters{Limit: domain.MaxTransactionLimit})
	if err != nil {
		return nil, err
	}
	metrics.TotalTransactions = len(txns)

	if budgets, err := s.budgetRepo.ListBudgets(ctx, userID); err == nil {
		metrics.BudgetCount = len(budgets)
		metrics.BudgetsRespected = true
		for _, b := range budgets {
			if b.Spent.GreaterThan(b.Amount) {
				metrics.BudgetsRespected = false
				break
			}
		}
	}

	var corpus float64
	if goals, err := s.goalRepo.ListGoals(ctx, userID); err == nil {
		metrics.GoalCount = len(goals)
		for _, g := range goals {
			corpus += g.CurrentAmount.InexactFloat64()
			if g.Status == domain.GoalStatusCompleted {
				metrics.GoalsCompleted++
			}
		}
	}
	if monthlyExpenses > 0 {
		metrics.EmergencyMonths = round2(corpus / monthlyExpenses)
	}

	if monthlyIncome > 0 {
		var obligations float64
		if payments, err := s.paymentRepo.ListPayments(ctx, userID); err == nil {
			for _, p := range payments {
				if p.Status != domain.PaymentStatusActive {
					continue
				}
				if p.PaymentType == domain.PaymentTypeLoan || p.PaymentType == domain.PaymentTypeEMI {
					obligations += monthlyAmount(p)
				}
			}
		}
		metrics.DebtToIncomePct = round2(obligations / monthlyIncome * 100)
	}

	return metrics, nil
}

// DetectSubscriptions finds recurring merchants in the last six months of
// expenses.
func (s *AnalyticsService) DetectSubscriptions(ctx context.Context, userID string) ([]*SpendingPattern, error) {
	start := util.FormatDate(time.Now().AddDate(0, -subscriptionLookbackMonths, 0))
	txns, err := s.ledgerRepo.QueryTransactions(ctx, userID, &domain.TransactionFilters{
		Type:      domain.TransactionTypeExpense,
		StartDate: start,
		Limit:     domain.MaxTransactionLimit,
	})
	if err != nil {
		return nil, err
	}

	type group struct {
		amounts []float64
		dates   []time.Time
	}
	groups := make(map[string]*group)
	for _, t := range txns {
		name := t.Merchant
		if name == "" {
			name = t.Description
		}
		key := categorize.NormalizeMerchant(name)
		if key == "" {
			continue
		}
		d, err := util.ParseDate(t.Date)
		if err != nil {
			continue
		}
		g, ok := groups[key]
		if !ok {
			g = &group{}
			groups[key] = g
		}
		g.amounts = append(g.amounts, t.Amount.InexactFloat64())
		g.dates = append(g.dates, d)
	}

	var patterns []*SpendingPattern
	for merchant, g := range groups {
		if len(g.amounts) < 2 {
			continue
		}
		sort.Slice(g.dates, func(i, j int) bool { return g.dates[i].Before(g.dates[j]) })

		meanAmount, amountStd := meanStd(g.amounts)
		cv := 0.0
		if meanAmount > 0 {
			cv = amountStd / meanAmount
		}

		intervals := make([]float64, 0, len(g.dates)-1)
		for i := 1; i < len(g.dates); i++ {
			intervals = append(intervals, g.dates[i].Sub(g.dates[i-1]).Hours()/24)
		}
		meanInterval, intervalStd := meanStd(intervals)

		var label string
		switch {
		case intervalStd <= 3.0 && cv <= 0.10:
			label = "subscription"
		case meanInterval <= 35 && len(g.amounts) >= 3:
			label = "recurring_habit"
		default:
			continue
		}

		frequency := frequencyBucket(meanInterval)
		patterns = append(patterns, &SpendingPattern{
			Merchant:    merchant,
			Label:       label,
			Frequency:   frequency,
			MeanAmount:  round2(meanAmount),
			Occurrences: len(g.amounts),
			Confidence:  patternConfidence(len(g.amounts), intervalStd, cv, frequency),
		})
	}

	sort.Slice(patterns, func(i, j int) bool { return patterns[i].Confidence > patterns[j].Confidence })
	return patterns, nil
}

func frequencyBucket(meanInterval float64) string {
	switch {
	case meanInterval <= 8:
		return "weekly"
	case meanInterval <= 16:
		return "bi-weekly"
	case meanInterval <= 35:
		return "monthly"
	case meanInterval <= 100:
		return "quarterly"
	case meanInterval <= 200:
		return "semi-annual"
	case meanInterval <= 400:
		return "annual"
	default:
		return "irregular"
	}
}

// patternConfidence blends occurrence count, time regularity, amount
// consistency and frequency reasonableness.
func patternConfidence(count int, intervalStd, cv float64, frequency string) float64 {
	occurrence := math.Min(1, float64(count)/6)
	regularity := math.Max(0, 1-intervalStd/10)
	consistency := math.Max(0, 1-cv/0.2)
	reasonable := 1.0
	if frequency == "irregular" {
		reasonable = 0.3
	}
	c := occurrence*0.3 + regularity*0.3 + consistency*0.25 + reasonable*0.15
	return round2(c)
}

// DailyInsight summarizes yesterday against the day before plus any
// budgets near their cap.
func (s *AnalyticsService) DailyInsight(ctx context.Context, userID string) (*DailyInsight, error) {
	now := time.Now()
	monthStart := util.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	today := util.FormatDate(now)

	summary, err := s.ledgerRepo.GetSpendingSummary(ctx, userID, monthStart, today)
	if err != nil {
		return nil, err
	}

	insight := &DailyInsight{Date: today, BudgetsNearLimit: []string{}}

	var topAmount decimal.Decimal
	for category, amount := range summary.ByCategory {
		if amount.GreaterThan(topAmount) {
			topAmount = amount
			insight.TopCategory = category
		}
	}
	if insight.TopCategory != "" {
		insight.TopCategoryAmount = topAmount.StringFixed(2)
	}

	yesterday := util.FormatDate(now.AddDate(0, 0, -1))
	dayBefore := util.FormatDate(now.AddDate(0, 0, -2))
	if trends, err := s.ledgerRepo.GetDailyTrends(ctx, userID, dayBefore, yesterday); err == nil {
		var ySpent, dbSpent float64
		for _, t := range trends {
			switch t.Date {
			case yesterday:
				ySpent = t.TotalSpent.InexactFloat64()
			case dayBefore:
				dbSpent = t.TotalSpent.InexactFloat64()
			}
		}
		if dbSpent > 0 {
			insight.DayChangePct = round2((ySpent - dbSpent) / dbSpent * 100)
		}
	}

	if budgets, err := s.budgetRepo.ListBudgets(ctx, userID); err == nil {
		for _, b := range budgets {
			if b.Amount.IsPositive() && b.Spent.GreaterThanOrEqual(b.Amount.Mul(decimal.NewFromFloat(0.8))) {
				insight.BudgetsNearLimit = append(insight.BudgetsNearLimit, b.Category)
			}
		}
	}

	insight.Text = buildInsightText(insight)
	return insight, nil
}

func buildInsightText(in *DailyInsight) string {
	if in.TopCategory == "" {
		return "No spending recorded this month yet. A clean slate!"
	}
	text := fmt.Sprintf("Your top spending category this month is %s (₹%s).", in.TopCategory, in.TopCategoryAmount)
	if in.DayChangePct > 0 {
		text += fmt.Sprintf(" Yesterday you spent %.0f%% more than the day before.", in.DayChangePct)
	} else if in.DayChangePct < 0 {
		text += fmt.Sprintf(" Yesterday you spent %.0f%% less than the day before.", -in.DayChangePct)
	}
	if len(in.BudgetsNearLimit) > 0 {
		text += fmt.Sprintf(" Watch out: %d budget(s) are past 80%% of their cap.", len(in.BudgetsNearLimit))
	}
	return text
}

// RebuildBudgetSpent recomputes every budget's spent cache from the
// ledger, repairing drift from deletes and category edits.
func (s *AnalyticsService) RebuildBudgetSpent(ctx context.Context, userID string) error {
	budgets, err := s.budgetRepo.ListBudgets(ctx, userID)
	if err != nil {
		return err
	}

	for _, b := range budgets {
		start := periodStart(b, time.Now())
		spent, err := s.ledgerRepo.SumExpensesByCategory(ctx, userID, b.Category, start)
		if err != nil {
			log.Warn().Err(err).Str("budget_id", b.ID).Msg("Failed to sum category expenses")
			continue
		}
		if !spent.Equal(b.Spent) {
			if err := s.budgetRepo.SetSpent(ctx, userID, b.ID, spent); err != nil {
				return err
			}
		}
	}
	return nil
}

// ReconcileAll rebuilds derived state for every active user. Called by
// the hourly maintenance job.
func (s *AnalyticsService) ReconcileAll(ctx context.Context) error {
	users, err := s.ledgerRepo.ActiveUserIDs(ctx)
	if err != nil {
		return err
	}
	for _, userID := range users {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.RebuildDailyTrends(ctx, userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Daily trend rebuild failed")
		}
		if err := s.RebuildBudgetSpent(ctx, userID); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Budget spent rebuild failed")
		}
	}
	return nil
}

func periodStart(b *domain.Budget, now time.Time) string {
	switch b.Period {
	case domain.BudgetPeriodWeekly:
		return util.FormatDate(now.AddDate(0, 0, -7))
	case domain.BudgetPeriodYearly:
		return util.FormatDate(time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))
	default:
		return util.FormatDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
	}
}

func monthlyAmount(p *domain.ScheduledPayment) float64 {
	amount := p.Amount.InexactFloat64()
	switch p.Frequency {
	case domain.FrequencyDaily:
		return amount * 30
	case domain.FrequencyWeekly:
		return amount * 52 / 12
	case domain.FrequencyYearly:
		return amount / 12
	default:
		return amount
	}
}

func meanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
