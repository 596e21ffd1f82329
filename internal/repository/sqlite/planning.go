package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanningStore is the SQLite-backed planning store. It implements
// domain.BudgetRepository, domain.GoalRepository,
// domain.ScheduledPaymentRepository, domain.MerchantRuleRepository,
// domain.BillingRepository and domain.BillSplitRepository.
type PlanningStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// OpenPlanning opens (creating if needed) the planning database at path.
func OpenPlanning(path string) (*PlanningStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("planning: %w", err)
	}
	s := &PlanningStore{db: db, now: time.Now}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying handle.
func (s *PlanningStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *PlanningStore) init(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS budgets (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL,
			amount TEXT NOT NULL,
			spent TEXT NOT NULL DEFAULT '0.00',
			period TEXT NOT NULL,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_budgets_user ON budgets(user_id);`,
		`CREATE TABLE IF NOT EXISTS goals (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			target_amount TEXT NOT NULL,
			current_amount TEXT NOT NULL DEFAULT '0.00',
			deadline TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'active',
			icon TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);`,
		`CREATE TABLE IF NOT EXISTS scheduled_payments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			amount TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			frequency TEXT NOT NULL,
			due_date TEXT NOT NULL,
			next_due_date TEXT NOT NULL,
			is_autopay INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			reminder_days INTEGER NOT NULL DEFAULT 3,
			last_paid_date TEXT NOT NULL DEFAULT '',
			payment_type TEXT NOT NULL DEFAULT 'regular',
			interest_rate REAL NOT NULL DEFAULT 0,
			total_tenure INTEGER NOT NULL DEFAULT 0,
			principal_outstanding TEXT NOT NULL DEFAULT '0.00',
			total_interest_paid TEXT NOT NULL DEFAULT '0.00',
			total_principal_paid TEXT NOT NULL DEFAULT '0.00',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user ON scheduled_payments(user_id);`,
		`CREATE TABLE IF NOT EXISTS merchant_rules (
			id TEXT PRIMARY KEY,
			keyword TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL,
			is_auto INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS vendors (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			gstin TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS vendor_payments (
			id TEXT PRIMARY KEY,
			vendor_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			amount TEXT NOT NULL,
			date TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			FOREIGN KEY (vendor_id) REFERENCES vendors(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			gstin TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS invoices (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			customer_id TEXT NOT NULL,
			number TEXT NOT NULL,
			date TEXT NOT NULL,
			due_date TEXT NOT NULL DEFAULT '',
			subtotal TEXT NOT NULL,
			gst_amount TEXT NOT NULL,
			total TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS invoice_items (
			id TEXT PRIMARY KEY,
			invoice_id TEXT NOT NULL,
			name TEXT NOT NULL,
			quantity TEXT NOT NULL,
			rate TEXT NOT NULL,
			gst_rate REAL NOT NULL DEFAULT 0,
			amount TEXT NOT NULL,
			FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS business_profiles (
			user_id TEXT PRIMARY KEY,
			business_name TEXT NOT NULL,
			sector TEXT NOT NULL DEFAULT '',
			gstin TEXT NOT NULL DEFAULT '',
			udyam_number TEXT NOT NULL DEFAULT '',
			years_active INTEGER NOT NULL DEFAULT 0,
			annual_turnover TEXT NOT NULL DEFAULT '0.00',
			address TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bill_splits (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			total_amount TEXT NOT NULL,
			date TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS bill_items (
			id TEXT PRIMARY KEY,
			split_id TEXT NOT NULL,
			name TEXT NOT NULL,
			amount TEXT NOT NULL,
			FOREIGN KEY (split_id) REFERENCES bill_splits(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS split_items (
			id TEXT PRIMARY KEY,
			split_id TEXT NOT NULL,
			participant TEXT NOT NULL,
			share_amount TEXT NOT NULL,
			paid_amount TEXT NOT NULL DEFAULT '0.00',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			FOREIGN KEY (split_id) REFERENCES bill_splits(id) ON DELETE CASCADE
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("planning: init: %w", err)
		}
	}
	return nil
}

// --- budgets ---

func (s *PlanningStore) CreateBudget(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = uuid.NewString()
	b.CreatedAt = s.now().UTC()
	if b.Spent.IsZero() {
		b.Spent = decimal.Zero
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, user_id, name, category, amount, spent, period, start_date, end_date, icon, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.Name, b.Category, b.Amount.StringFixed(2), b.Spent.StringFixed(2),
		string(b.Period), b.StartDate, b.EndDate, b.Icon, b.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("planning: insert budget: %w", err)
	}
	return b, nil
}

func (s *PlanningStore) GetBudget(ctx context.Context, userID, id string) (*domain.Budget, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, category, amount, spent, period, start_date, end_date, icon, created_at
		FROM budgets WHERE user_id = ? AND id = ?`, userID, id)
	b, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrBudgetNotFound
	}
	return b, err
}

func (s *PlanningStore) ListBudgets(ctx context.Context, userID string) ([]*domain.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, category, amount, spent, period, start_date, end_date, icon, created_at
		FROM budgets WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("planning: list budgets: %w", err)
	}
	defer rows.Close()

	var out []*domain.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PlanningStore) UpdateBudget(ctx context.Context, b *domain.Budget) (*domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET name = ?, category = ?, amount = ?, spent = ?, period = ?,
			start_date = ?, end_date = ?, icon = ?
		WHERE user_id = ? AND id = ?`,
		b.Name, b.Category, b.Amount.StringFixed(2), b.Spent.StringFixed(2),
		string(b.Period), b.StartDate, b.EndDate, b.Icon, b.UserID, b.ID)
	if err != nil {
		return nil, fmt.Errorf("planning: update budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrBudgetNotFound
	}
	return b, nil
}

func (s *PlanningStore) DeleteBudget(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("planning: delete budget: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrBudgetNotFound
	}
	return nil
}

func (s *PlanningStore) IncrementSpent(ctx context.Context, userID, category string, amount decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// SQLite stores spent as TEXT; do the arithmetic in SQL and reformat.
	_, err := s.db.ExecContext(ctx, `
		UPDATE budgets
		SET spent = printf('%.2f', CAST(spent AS REAL) + CAST(? AS REAL))
		WHERE user_id = ? AND category = ?`,
		amount.StringFixed(2), userID, category)
	if err != nil {
		return fmt.Errorf("planning: increment spent: %w", err)
	}
	return nil
}

func (s *PlanningStore) SetSpent(ctx context.Context, userID, id string, spent decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET spent = ? WHERE user_id = ? AND id = ?`,
		spent.StringFixed(2), userID, id)
	if err != nil {
		return fmt.Errorf("planning: set spent: %w", err)
	}
	return nil
}

func scanBudget(row rowScanner) (*domain.Budget, error) {
	var b domain.Budget
	var amount, spent, period, createdAt string
	err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Category, &amount, &spent,
		&period, &b.StartDate, &b.EndDate, &b.Icon, &createdAt)
	if err != nil {
		return nil, err
	}
	b.Amount, _ = decimal.NewFromString(amount)
	b.Spent, _ = decimal.NewFromString(spent)
	b.Period = domain.BudgetPeriod(period)
	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &b, nil
}

// --- goals ---

func (s *PlanningStore) CreateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g.ID = uuid.NewString()
	g.CreatedAt = s.now().UTC()
	if g.Status == "" {
		g.Status = domain.GoalStatusActive
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, user_id, name, target_amount, current_amount, deadline, status, icon, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Name, g.TargetAmount.StringFixed(2), g.CurrentAmount.StringFixed(2),
		g.Deadline, string(g.Status), g.Icon, g.Notes, g.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("planning: insert goal: %w", err)
	}
	return g, nil
}

func (s *PlanningStore) GetGoal(ctx context.Context, userID, id string) (*domain.Goal, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, target_amount, current_amount, deadline, status, icon, notes, created_at
		FROM goals WHERE user_id = ? AND id = ?`, userID, id)
	g, err := scanGoal(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrGoalNotFound
	}
	return g, err
}

func (s *PlanningStore) ListGoals(ctx context.Context, userID string) ([]*domain.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, target_amount, current_amount, deadline, status, icon, notes, created_at
		FROM goals WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("planning: list goals: %w", err)
	}
	defer rows.Close()

	var out []*domain.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *PlanningStore) UpdateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE goals SET name = ?, target_amount = ?, current_amount = ?, deadline = ?,
			status = ?, icon = ?, notes = ?
		WHERE user_id = ? AND id = ?`,
		g.Name, g.TargetAmount.StringFixed(2), g.CurrentAmount.StringFixed(2),
		g.Deadline, string(g.Status), g.Icon, g.Notes, g.UserID, g.ID)
	if err != nil {
		return nil, fmt.Errorf("planning: update goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrGoalNotFound
	}
	return g, nil
}

func (s *PlanningStore) DeleteGoal(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("planning: delete goal: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrGoalNotFound
	}
	return nil
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var g domain.Goal
	var target, current, status, createdAt string
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &target, &current, &g.Deadline,
		&status, &g.Icon, &g.Notes, &createdAt)
	if err != nil {
		return nil, err
	}
	g.TargetAmount, _ = decimal.NewFromString(target)
	g.CurrentAmount, _ = decimal.NewFromString(current)
	g.Status = domain.GoalStatus(status)
	g.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &g, nil
}

// --- scheduled payments ---

func (s *PlanningStore) CreatePayment(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = s.now().UTC()
	if p.Status == "" {
		p.Status = domain.PaymentStatusActive
	}
	if p.PaymentType == "" {
		p.PaymentType = domain.PaymentTypeRegular
	}
	if p.NextDueDate == "" {
		p.NextDueDate = p.DueDate
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scheduled_payments
			(id, user_id, name, amount, category, frequency, due_date, next_due_date,
			 is_autopay, status, reminder_days, last_paid_date, payment_type,
			 interest_rate, total_tenure, principal_outstanding, total_interest_paid,
			 total_principal_paid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Amount.StringFixed(2), p.Category, string(p.Frequency),
		p.DueDate, p.NextDueDate, boolToInt(p.IsAutopay), string(p.Status), p.ReminderDays,
		p.LastPaidDate, string(p.PaymentType), p.InterestRate, p.TotalTenure,
		p.PrincipalOutstanding.StringFixed(2), p.TotalInterestPaid.StringFixed(2),
		p.TotalPrincipalPaid.StringFixed(2), p.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("planning: insert payment: %w", err)
	}
	return p, nil
}

func (s *PlanningStore) GetPayment(ctx context.Context, userID, id string) (*domain.ScheduledPayment, error) {
	row := s.db.QueryRowContext(ctx, paymentSelect+` WHERE user_id = ? AND id = ?`, userID, id)
	p, err := scanPayment(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrPaymentNotFound
	}
	return p, err
}

func (s *PlanningStore) ListPayments(ctx context.Context, userID string) ([]*domain.ScheduledPayment, error) {
	rows, err := s.db.QueryContext(ctx, paymentSelect+` WHERE user_id = ? ORDER BY next_due_date ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("planning: list payments: %w", err)
	}
	defer rows.Close()

	var out []*domain.ScheduledPayment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *PlanningStore) UpdatePayment(ctx context.Context, p *domain.ScheduledPayment) (*domain.ScheduledPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		UPDATE scheduled_payments SET name = ?, amount = ?, category = ?, frequency = ?,
			due_date = ?, next_due_date = ?, is_autopay = ?, status = ?, reminder_days = ?,
			last_paid_date = ?, payment_type = ?, interest_rate = ?, total_tenure = ?,
			principal_outstanding = ?, total_interest_paid = ?, total_principal_paid = ?
		WHERE user_id = ? AND id = ?`,
		p.Name, p.Amount.StringFixed(2), p.Category, string(p.Frequency),
		p.DueDate, p.NextDueDate, boolToInt(p.IsAutopay), string(p.Status), p.ReminderDays,
		p.LastPaidDate, string(p.PaymentType), p.InterestRate, p.TotalTenure,
		p.PrincipalOutstanding.StringFixed(2), p.TotalInterestPaid.StringFixed(2),
		p.TotalPrincipalPaid.StringFixed(2), p.UserID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("planning: update payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

func (s *PlanningStore) DeletePayment(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM scheduled_payments WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("planning: delete payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

const paymentSelect = `
	SELECT id, user_id, name, amount, category, frequency, due_date, next_due_date,
	       is_autopay, status, reminder_days, last_paid_date, payment_type,
	       interest_rate, total_tenure, principal_outstanding, total_interest_paid,
	       total_principal_paid, created_at
	FROM scheduled_payments`

func scanPayment(row rowScanner) (*domain.ScheduledPayment, error) {
	var p domain.ScheduledPayment
	var amount, freq, status, ptype, principal, intPaid, prinPaid, createdAt string
	var autopay int
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &amount, &p.Category, &freq,
		&p.DueDate, &p.NextDueDate, &autopay, &status, &p.ReminderDays,
		&p.LastPaidDate, &ptype, &p.InterestRate, &p.TotalTenure,
		&principal, &intPaid, &prinPaid, &createdAt)
	if err != nil {
		return nil, err
	}
	p.Amount, _ = decimal.NewFromString(amount)
	p.Frequency = domain.PaymentFrequency(freq)
	p.IsAutopay = autopay != 0
	p.Status = domain.PaymentStatus(status)
	p.PaymentType = domain.PaymentType(ptype)
	p.PrincipalOutstanding, _ = decimal.NewFromString(principal)
	p.TotalInterestPaid, _ = decimal.NewFromString(intPaid)
	p.TotalPrincipalPaid, _ = decimal.NewFromString(prinPaid)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &p, nil
}

// --- merchant rules ---

func (s *PlanningStore) CreateRule(ctx context.Context, r *domain.MerchantRule) (*domain.MerchantRule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = uuid.NewString()
	r.CreatedAt = s.now().UTC()
	// Upsert on keyword so re-teaching a merchant replaces the category.
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchant_rules (id, keyword, category, is_auto, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(keyword) DO UPDATE SET category = excluded.category, is_auto = excluded.is_auto`,
		r.ID, r.Keyword, r.Category, boolToInt(r.IsAuto), r.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("planning: insert rule: %w", err)
	}
	return r, nil
}

func (s *PlanningStore) ListRules(ctx context.Context) ([]*domain.MerchantRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, keyword, category, is_auto, created_at
		FROM merchant_rules ORDER BY length(keyword) DESC, keyword ASC`)
	if err != nil {
		return nil, fmt.Errorf("planning: list rules: %w", err)
	}
	defer rows.Close()

	var out []*domain.MerchantRule
	for rows.Next() {
		var r domain.MerchantRule
		var auto int
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Keyword, &r.Category, &auto, &createdAt); err != nil {
			return nil, err
		}
		r.IsAuto = auto != 0
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *PlanningStore) DeleteRule(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM merchant_rules WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("planning: delete rule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrRuleNotFound
	}
	return nil
}
