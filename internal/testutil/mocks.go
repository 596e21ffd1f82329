// Package testutil provides hand-rolled, map-backed mocks for the
// repository interfaces. Each mock supports optional function overrides
// for error-path testing.
package testutil

import (
	"context"
	"sort"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockLedgerRepository is a mock implementation of domain.LedgerRepository.
type MockLedgerRepository struct {
	Transactions map[string]*domain.Transaction
	Trends       map[string][]*domain.DailyTrend
	CreateFn     func(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	SummaryFn    func(ctx context.Context, userID, start, end string) (*domain.SpendingSummary, error)
}

// NewMockLedgerRepository creates a new MockLedgerRepository.
func NewMockLedgerRepository() *MockLedgerRepository {
	return &MockLedgerRepository{
		Transactions: make(map[string]*domain.Transaction),
		Trends:       make(map[string][]*domain.DailyTrend),
	}
}

// Add seeds a transaction, assigning an ID when absent (helper for tests).
func (m *MockLedgerRepository) Add(t *domain.Transaction) *domain.Transaction {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	m.Transactions[t.ID] = t
	return t
}

func (m *MockLedgerRepository) CreateTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	m.Transactions[t.ID] = t
	return t, nil
}

func (m *MockLedgerRepository) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	t, ok := m.Transactions[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	return t, nil
}

func (m *MockLedgerRepository) QueryTransactions(ctx context.Context, userID string, f *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if f == nil {
		f = &domain.TransactionFilters{}
	}
	var out []*domain.Transaction
	for _, t := range m.Transactions {
		if t.UserID != userID {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Type != "" && t.Type != f.Type {
			continue
		}
		if f.StartDate != "" && t.Date < f.StartDate {
			continue
		}
		if f.EndDate != "" && t.Date > f.EndDate {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultTransactionLimit
	}
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockLedgerRepository) UpdateTransaction(ctx context.Context, userID, id string, category, description, notes *string) (*domain.Transaction, error) {
	t, ok := m.Transactions[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTransactionNotFound
	}
	if category != nil {
		t.Category = *category
	}
	if description != nil {
		t.Description = *description
	}
	if notes != nil {
		t.Notes = *notes
	}
	return t, nil
}

func (m *MockLedgerRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	t, ok := m.Transactions[id]
	if !ok || t.UserID != userID {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

func (m *MockLedgerRepository) GetSpendingSummary(ctx context.Context, userID, start, end string) (*domain.SpendingSummary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx, userID, start, end)
	}
	summary := &domain.SpendingSummary{ByCategory: map[string]decimal.Decimal{}}
	for _, t := range m.Transactions {
		if t.UserID != userID || t.Date < start || t.Date > end {
			continue
		}
		if t.Type == domain.TransactionTypeIncome {
			summary.TotalIncome = summary.TotalIncome.Add(t.Amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(t.Amount)
			summary.ByCategory[t.Category] = summary.ByCategory[t.Category].Add(t.Amount)
		}
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)
	if summary.TotalIncome.IsPositive() {
		rate, _ := summary.Net.Div(summary.TotalIncome).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		summary.SavingsRate = rate
	}
	return summary, nil
}

func (m *MockLedgerRepository) GetCashflow(ctx context.Context, userID, start, end string) ([]*domain.CashflowPoint, error) {
	byDate := map[string]*domain.CashflowPoint{}
	opening := decimal.Zero
	for _, t := range m.Transactions {
		if t.UserID != userID {
			continue
		}
		if t.Date < start {
			if t.Type == domain.TransactionTypeIncome {
				opening = opening.Add(t.Amount)
			} else {
				opening = opening.Sub(t.Amount)
			}
			continue
		}
		if t.Date > end {
			continue
		}
		p, ok := byDate[t.Date]
		if !ok {
			p = &domain.CashflowPoint{Date: t.Date}
			byDate[t.Date] = p
		}
		if t.Type == domain.TransactionTypeIncome {
			p.Income = p.Income.Add(t.Amount)
		} else {
			p.Expense = p.Expense.Add(t.Amount)
		}
	}
	var out []*domain.CashflowPoint
	for _, p := range byDate {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	balance := opening
	for _, p := range out {
		balance = balance.Add(p.Income).Sub(p.Expense)
		p.Balance = balance
	}
	return out, nil
}

func (m *MockLedgerRepository) DailyTotals(ctx context.Context, userID string) ([]*domain.DailyTypeTotal, error) {
	type key struct {
		date string
		typ  domain.TransactionType
	}
	totals := map[key]decimal.Decimal{}
	for _, t := range m.Transactions {
		if t.UserID != userID {
			continue
		}
		k := key{t.Date, t.Type}
		totals[k] = totals[k].Add(t.Amount)
	}
	var out []*domain.DailyTypeTotal
	for k, v := range totals {
		out = append(out, &domain.DailyTypeTotal{Date: k.date, Type: k.typ, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *MockLedgerRepository) MonthlyTotals(ctx context.Context, userID, startMonth string) ([]*domain.MonthTypeTotal, error) {
	type key struct {
		month string
		typ   domain.TransactionType
	}
	totals := map[key]decimal.Decimal{}
	for _, t := range m.Transactions {
		if t.UserID != userID || len(t.Date) < 7 {
			continue
		}
		month := t.Date[:7]
		if month < startMonth {
			continue
		}
		k := key{month, t.Type}
		totals[k] = totals[k].Add(t.Amount)
	}
	var out []*domain.MonthTypeTotal
	for k, v := range totals {
		out = append(out, &domain.MonthTypeTotal{Month: k.month, Type: k.typ, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (m *MockLedgerRepository) SumExpensesByCategory(ctx context.Context, userID, category, start string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, t := range m.Transactions {
		if t.UserID != userID || t.Type != domain.TransactionTypeExpense {
			continue
		}
		if t.Category != category || t.Date < start {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total, nil
}

func (m *MockLedgerRepository) ReplaceDailyTrends(ctx context.Context, userID string, trends []*domain.DailyTrend) error {
	m.Trends[userID] = trends
	return nil
}

func (m *MockLedgerRepository) GetDailyTrends(ctx context.Context, userID, start, end string) ([]*domain.DailyTrend, error) {
	var out []*domain.DailyTrend
	for _, t := range m.Trends[userID] {
		if t.Date >= start && t.Date <= end {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (m *MockLedgerRepository) ActiveUserIDs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, t := range m.Transactions {
		if !seen[t.UserID] {
			seen[t.UserID] = true
			out = append(out, t.UserID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// MockBudgetRepository is a mock implementation of domain.BudgetRepository.
type MockBudgetRepository struct {
	Budgets  map[string]*domain.Budget
	CreateFn func(ctx context.Context, b *domain.Budget) (*domain.Budget, error)
}

// NewMockBudgetRepository creates a new MockBudgetRepository.
func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{Budgets: make(map[string]*domain.Budget)}
}

// Add seeds a budget, assigning an ID when absent (helper for tests).
func (m *MockBudgetRepository) Add(b *domain.Budget) *domain.Budget {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	m.Budgets[b.ID] = b
	return b
}

func (m *MockBudgetRepository) CreateBudget(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	b.ID = uuid.NewString()
	b.CreatedAt = time.Now().UTC()
	m.Budgets[b.ID] = b
	return b, nil
}

func (m *MockBudgetRepository) GetBudget(ctx context.Context, userID, id string) (*domain.Budget, error) {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, userID string) ([]*domain.Budget, error) {
	var out []*domain.Budget
	for _, b := range m.Budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	if _, ok := m.Budgets[b.ID]; !ok {
		return nil, domain.ErrBudgetNotFound
	}
	m.Budgets[b.ID] = b
	return b, nil
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, userID, id string) error {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

func (m *MockBudgetRepository) IncrementSpent(ctx context.Context, userID, category string, amount decimal.Decimal) error {
	for _, b := range m.Budgets {
		if b.UserID == userID && b.Category == category {
			b.Spent = b.Spent.Add(amount)
		}
	}
	return nil
}

func (m *MockBudgetRepository) SetSpent(ctx context.Context, userID, id string, spent decimal.Decimal) error {
	b, ok := m.Budgets[id]
	if !ok || b.UserID != userID {
		return domain.ErrBudgetNotFound
	}
	b.Spent = spent
	return nil
}

// MockGoalRepository is a mock implementation of domain.GoalRepository.
type MockGoalRepository struct {
	Goals map[string]*domain.Goal
}

// NewMockGoalRepository creates a new MockGoalRepository.
func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{Goals: make(map[string]*domain.Goal)}
}

// Add seeds a goal, assigning an ID when absent (helper for tests).
func (m *MockGoalRepository) Add(g *domain.Goal) *domain.Goal {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	m.Goals[g.ID] = g
	return g
}

func (m *MockGoalRepository) CreateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	g.ID = uuid.NewString()
	g.CreatedAt = time.Now().UTC()
	if g.Status == "" {
		g.Status = domain.GoalStatusActive
	}
	m.Goals[g.ID] = g
	return g, nil
}

func (m *MockGoalRepository) GetGoal(ctx context.Context, userID, id string) (*domain.Goal, error) {
	g, ok := m.Goals[id]
	if !ok || g.UserID != userID {
		return nil, domain.ErrGoalNotFound
	}
	return g, nil
}

func (m *MockGoalRepository) ListGoals(ctx context.Context, userID string) ([]*domain.Goal, error) {
	var out []*domain.Goal
	for _, g := range m.Goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	if _, ok := m.Goals[g.ID]; !ok {
		return nil, domain.ErrGoalNotFound
	}
	m.Goals[g.ID] = g
	return g, nil
}

func (m *MockGoalRepository) DeleteGoal(ctx context.Context, userID, id string) error {
	g, ok := m.Goals[id]
	if !ok || g.UserID != userID {
		return domain.ErrGoalNotFound
	}
	delete(m.Goals, id)
	return nil
}

// MockScheduledPaymentRepository is a mock implementation of
// domain.ScheduledPaymentRepository.
type MockScheduledPaymentRepository struct {
	Payments map[string]*domain.ScheduledPayment
}

// NewMockScheduledPaymentRepository creates a new MockScheduledPaymentRepository.
func NewMockScheduledPaymentRepository() *MockScheduledPaymentRepository {
	return &MockScheduledPaymentRepository{Payments: make(map[string]*domain.ScheduledPayment)}
}

// Add seeds a payment, assigning an ID when absent (helper for tests).
func (m *MockScheduledPaymentRepository) Add(p *domain.ScheduledPayment) *domain.ScheduledPayment {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	m.Payments[p.ID] = p
	return p
}

func (m *MockScheduledPaymentRepository) CreatePayment(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if p.Status == "" {
		p.Status = domain.PaymentStatusActive
	}
	if p.NextDueDate == "" {
		p.NextDueDate = p.DueDate
	}
	m.Payments[p.ID] = p
	return p, nil
}

func (m *MockScheduledPaymentRepository) GetPayment(ctx context.Context, userID, id string) (*domain.ScheduledPayment, error) {
	p, ok := m.Payments[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

func (m *MockScheduledPaymentRepository) ListPayments(ctx context.Context, userID string) ([]*domain.ScheduledPayment, error) {
	var out []*domain.ScheduledPayment
	for _, p := range m.Payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextDueDate < out[j].NextDueDate })
	return out, nil
}

func (m *MockScheduledPaymentRepository) UpdatePayment(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error) {
	if _, ok := m.Payments[p.ID]; !ok {
		return nil, domain.ErrPaymentNotFound
	}
	m.Payments[p.ID] = p
	return p, nil
}

func (m *MockScheduledPaymentRepository) DeletePayment(ctx context.Context, userID, id string) error {
	p, ok := m.Payments[id]
	if !ok || p.UserID != userID {
		return domain.ErrPaymentNotFound
	}
	delete(m.Payments, id)
	return nil
}

// MockMerchantRuleRepository is a mock implementation of
// domain.MerchantRuleRepository.
type MockMerchantRuleRepository struct {
	Rules map[string]*domain.MerchantRule
}

// NewMockMerchantRuleRepository creates a new MockMerchantRuleRepository.
func NewMockMerchantRuleRepository() *MockMerchantRuleRepository {
	return &MockMerchantRuleRepository{Rules: make(map[string]*domain.MerchantRule)}
}

// Add seeds a rule, assigning an ID when absent (helper for tests).
func (m *MockMerchantRuleRepository) Add(r *domain.MerchantRule) *domain.MerchantRule {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	m.Rules[r.ID] = r
	return r
}

func (m *MockMerchantRuleRepository) CreateRule(ctx context.Context, r *domain.MerchantRule) (*domain.MerchantRule, error) {
	for _, existing := range m.Rules {
		if existing.Keyword == r.Keyword {
			existing.Category = r.Category
			existing.IsAuto = r.IsAuto
			return existing, nil
		}
	}
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	m.Rules[r.ID] = r
	return r, nil
}

func (m *MockMerchantRuleRepository) ListRules(ctx context.Context) ([]*domain.MerchantRule, error) {
	var out []*domain.MerchantRule
	for _, r := range m.Rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if len(out[i].Keyword) != len(out[j].Keyword) {
			return len(out[i].Keyword) > len(out[j].Keyword)
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out, nil
}

func (m *MockMerchantRuleRepository) DeleteRule(ctx context.Context, id string) error {
	if _, ok := m.Rules[id]; !ok {
		return domain.ErrRuleNotFound
	}
	delete(m.Rules, id)
	return nil
}

// MockDocsRepository is a mock implementation of domain.DocsRepository.
type MockDocsRepository struct {
	Snapshots  []*domain.AnalysisSnapshot
	Milestones map[string]map[string]*domain.Milestone
	Ideas      []*domain.IdeaEvaluation
	DPRs       []*domain.DPRDocument
	MudraDPRs  []*domain.MudraDPRRecord
	Metrics    map[string]*domain.MonthlyMetrics
}

// NewMockDocsRepository creates a new MockDocsRepository.
func NewMockDocsRepository() *MockDocsRepository {
	return &MockDocsRepository{
		Milestones: make(map[string]map[string]*domain.Milestone),
		Metrics:    make(map[string]*domain.MonthlyMetrics),
	}
}

func (m *MockDocsRepository) CreateSnapshot(ctx context.Context, s *domain.AnalysisSnapshot) (*domain.AnalysisSnapshot, error) {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	m.Snapshots = append(m.Snapshots, s)
	return s, nil
}

func (m *MockDocsRepository) LatestSnapshot(ctx context.Context, userID string) (*domain.AnalysisSnapshot, error) {
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if m.Snapshots[i].UserID == userID {
			return m.Snapshots[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockDocsRepository) ListSnapshots(ctx context.Context, userID string, limit int) ([]*domain.AnalysisSnapshot, error) {
	var out []*domain.AnalysisSnapshot
	for i := len(m.Snapshots) - 1; i >= 0; i-- {
		if m.Snapshots[i].UserID == userID {
			out = append(out, m.Snapshots[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MockDocsRepository) AwardMilestone(ctx context.Context, ms *domain.Milestone) error {
	byID, ok := m.Milestones[ms.UserID]
	if !ok {
		byID = make(map[string]*domain.Milestone)
		m.Milestones[ms.UserID] = byID
	}
	if _, exists := byID[ms.MilestoneID]; exists {
		return nil
	}
	awarded := *ms
	awarded.Achieved = true
	if awarded.AchievedAt == nil {
		now := time.Now().UTC()
		awarded.AchievedAt = &now
	}
	byID[ms.MilestoneID] = &awarded
	return nil
}

func (m *MockDocsRepository) ListMilestones(ctx context.Context, userID string) ([]*domain.Milestone, error) {
	var out []*domain.Milestone
	for _, ms := range m.Milestones[userID] {
		out = append(out, ms)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *MockDocsRepository) CreateIdeaEvaluation(ctx context.Context, e *domain.IdeaEvaluation) (*domain.IdeaEvaluation, error) {
	e.ID = uuid.NewString()
	e.CreatedAt = time.Now().UTC()
	m.Ideas = append(m.Ideas, e)
	return e, nil
}

func (m *MockDocsRepository) ListIdeaEvaluations(ctx context.Context, userID string) ([]*domain.IdeaEvaluation, error) {
	var out []*domain.IdeaEvaluation
	for i := len(m.Ideas) - 1; i >= 0; i-- {
		if m.Ideas[i].UserID == userID {
			out = append(out, m.Ideas[i])
		}
	}
	return out, nil
}

func (m *MockDocsRepository) CreateDPR(ctx context.Context, d *domain.DPRDocument) (*domain.DPRDocument, error) {
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now().UTC()
	m.DPRs = append(m.DPRs, d)
	return d, nil
}

func (m *MockDocsRepository) CreateMudraDPR(ctx context.Context, r *domain.MudraDPRRecord) (*domain.MudraDPRRecord, error) {
	r.ID = uuid.NewString()
	r.CreatedAt = time.Now().UTC()
	m.MudraDPRs = append(m.MudraDPRs, r)
	return r, nil
}

func (m *MockDocsRepository) ListMudraDPRs(ctx context.Context, userID string) ([]*domain.MudraDPRRecord, error) {
	var out []*domain.MudraDPRRecord
	for i := len(m.MudraDPRs) - 1; i >= 0; i-- {
		if m.MudraDPRs[i].UserID == userID {
			out = append(out, m.MudraDPRs[i])
		}
	}
	return out, nil
}

func (m *MockDocsRepository) UpsertMonthlyMetrics(ctx context.Context, mm *domain.MonthlyMetrics) error {
	mm.UpdatedAt = time.Now().UTC()
	m.Metrics[mm.UserID+"/"+mm.Month] = mm
	return nil
}

func (m *MockDocsRepository) GetMonthlyMetrics(ctx context.Context, userID, month string) (*domain.MonthlyMetrics, error) {
	mm, ok := m.Metrics[userID+"/"+month]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return mm, nil
}

// MockBillingRepository is a mock implementation of domain.BillingRepository.
type MockBillingRepository struct {
	Vendors        map[string]*domain.Vendor
	VendorPayments []*domain.VendorPayment
	Customers      map[string]*domain.Customer
	Invoices       map[string]*domain.Invoice
	Profiles       map[string]*domain.BusinessProfile
}

// NewMockBillingRepository creates a new MockBillingRepository.
func NewMockBillingRepository() *MockBillingRepository {
	return &MockBillingRepository{
		Vendors:   make(map[string]*domain.Vendor),
		Customers: make(map[string]*domain.Customer),
		Invoices:  make(map[string]*domain.Invoice),
		Profiles:  make(map[string]*domain.BusinessProfile),
	}
}

func (m *MockBillingRepository) CreateVendor(ctx context.Context, v *domain.Vendor) (*domain.Vendor, error) {
	v.ID = uuid.NewString()
	v.CreatedAt = time.Now().UTC()
	m.Vendors[v.ID] = v
	return v, nil
}

func (m *MockBillingRepository) ListVendors(ctx context.Context, userID string) ([]*domain.Vendor, error) {
	var out []*domain.Vendor
	for _, v := range m.Vendors {
		if v.UserID == userID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockBillingRepository) DeleteVendor(ctx context.Context, userID, id string) error {
	v, ok := m.Vendors[id]
	if !ok || v.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.Vendors, id)
	return nil
}

func (m *MockBillingRepository) CreateVendorPayment(ctx context.Context, p *domain.VendorPayment) (*domain.VendorPayment, error) {
	p.ID = uuid.NewString()
	m.VendorPayments = append(m.VendorPayments, p)
	return p, nil
}

func (m *MockBillingRepository) ListVendorPayments(ctx context.Context, userID, vendorID string) ([]*domain.VendorPayment, error) {
	var out []*domain.VendorPayment
	for _, p := range m.VendorPayments {
		if p.UserID == userID && p.VendorID == vendorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockBillingRepository) CreateCustomer(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()
	m.Customers[c.ID] = c
	return c, nil
}

func (m *MockBillingRepository) ListCustomers(ctx context.Context, userID string) ([]*domain.Customer, error) {
	var out []*domain.Customer
	for _, c := range m.Customers {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MockBillingRepository) CreateInvoice(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	inv.ID = uuid.NewString()
	inv.CreatedAt = time.Now().UTC()
	if inv.Status == "" {
		inv.Status = domain.InvoiceStatusDraft
	}
	for _, item := range inv.Items {
		item.ID = uuid.NewString()
		item.InvoiceID = inv.ID
	}
	m.Invoices[inv.ID] = inv
	return inv, nil
}

func (m *MockBillingRepository) GetInvoice(ctx context.Context, userID, id string) (*domain.Invoice, error) {
	inv, ok := m.Invoices[id]
	if !ok || inv.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

func (m *MockBillingRepository) ListInvoices(ctx context.Context, userID string) ([]*domain.Invoice, error) {
	var out []*domain.Invoice
	for _, inv := range m.Invoices {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *MockBillingRepository) UpdateInvoiceStatus(ctx context.Context, userID, id string, status domain.InvoiceStatus) error {
	inv, ok := m.Invoices[id]
	if !ok || inv.UserID != userID {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (m *MockBillingRepository) UpsertBusinessProfile(ctx context.Context, p *domain.BusinessProfile) error {
	p.UpdatedAt = time.Now().UTC()
	m.Profiles[p.UserID] = p
	return nil
}

func (m *MockBillingRepository) GetBusinessProfile(ctx context.Context, userID string) (*domain.BusinessProfile, error) {
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// MockBillSplitRepository is a mock implementation of domain.BillSplitRepository.
type MockBillSplitRepository struct {
	Splits map[string]*domain.BillSplit
}

// NewMockBillSplitRepository creates a new MockBillSplitRepository.
func NewMockBillSplitRepository() *MockBillSplitRepository {
	return &MockBillSplitRepository{Splits: make(map[string]*domain.BillSplit)}
}

func (m *MockBillSplitRepository) CreateSplit(ctx context.Context, s *domain.BillSplit) (*domain.BillSplit, error) {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	for _, item := range s.Items {
		item.ID = uuid.NewString()
		item.SplitID = s.ID
	}
	for _, share := range s.Shares {
		share.ID = uuid.NewString()
		share.SplitID = s.ID
		if share.PaymentStatus == "" {
			share.PaymentStatus = domain.SplitPaymentPending
		}
	}
	m.Splits[s.ID] = s
	return s, nil
}

func (m *MockBillSplitRepository) GetSplit(ctx context.Context, userID, id string) (*domain.BillSplit, error) {
	s, ok := m.Splits[id]
	if !ok || s.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *MockBillSplitRepository) ListSplits(ctx context.Context, userID string) ([]*domain.BillSplit, error) {
	var out []*domain.BillSplit
	for _, s := range m.Splits {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (m *MockBillSplitRepository) UpdateSplitItem(ctx context.Context, item *domain.SplitItem) error {
	for _, s := range m.Splits {
		for i, share := range s.Shares {
			if share.ID == item.ID {
				s.Shares[i] = item
				return nil
			}
		}
	}
	return domain.ErrNotFound
}
