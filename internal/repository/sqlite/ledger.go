// Package sqlite implements the three embedded stores (ledger, planning,
// docs) over database/sql with the mattn/go-sqlite3 driver. Each store
// serialises writes under its own mutex; monetary values are persisted as
// 2-decimal TEXT.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "github.com/mattn/go-sqlite3"
)

// LedgerStore is the SQLite-backed domain.LedgerRepository.
type LedgerStore struct {
	db  *sql.DB
	mu  sync.Mutex
	now func() time.Time
}

// OpenLedger opens (creating if needed) the ledger database at path.
func OpenLedger(path string) (*LedgerStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, fmt.Errorf("ledger: %w", err)
	}
	s := &LedgerStore{db: db, now: time.Now}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func openDB(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating DB dir: %w", err)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening DB: %w", err)
	}
	return db, nil
}

// Close closes the underlying handle.
func (s *LedgerStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *LedgerStore) init(ctx context.Context) error {
	stmts := []string{
		`PRAGMA foreign_keys = ON;`,
		`CREATE TABLE IF NOT EXISTS transactions (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			amount TEXT NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			time TEXT NOT NULL DEFAULT '',
			merchant TEXT NOT NULL DEFAULT '',
			payment_method TEXT NOT NULL DEFAULT '',
			receipt_url TEXT NOT NULL DEFAULT '',
			is_recurring INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date);`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_user_category ON transactions(user_id, category);`,
		`CREATE TABLE IF NOT EXISTS daily_trends (
			user_id TEXT NOT NULL,
			date TEXT NOT NULL,
			total_spent TEXT NOT NULL DEFAULT '0.00',
			total_income TEXT NOT NULL DEFAULT '0.00',
			PRIMARY KEY (user_id, date)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ledger: init: %w", err)
		}
	}
	return nil
}

// CreateTransaction assigns an id, stamps created_at and inserts the row.
func (s *LedgerStore) CreateTransaction(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	t.CreatedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions
			(id, user_id, amount, type, category, description, date, time,
			 merchant, payment_method, receipt_url, is_recurring, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Amount.StringFixed(2), string(t.Type), t.Category,
		t.Description, t.Date, t.Time, t.Merchant, t.PaymentMethod,
		t.ReceiptURL, boolToInt(t.IsRecurring), t.Notes,
		t.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("ledger: insert transaction: %w", err)
	}
	return t, nil
}

// GetTransaction fetches one transaction scoped to a user.
func (s *LedgerStore) GetTransaction(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount, type, category, description, date, time,
		       merchant, payment_method, receipt_url, is_recurring, notes, created_at
		FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTransactionNotFound
	}
	return t, err
}

// QueryTransactions returns rows newest-first by (date, time, created_at).
func (s *LedgerStore) QueryTransactions(ctx context.Context, userID string, f *domain.TransactionFilters) ([]*domain.Transaction, error) {
	if f == nil {
		f = &domain.TransactionFilters{}
	}
	limit := f.Limit
	if limit <= 0 {
		limit = domain.DefaultTransactionLimit
	}
	if limit > domain.MaxTransactionLimit {
		limit = domain.MaxTransactionLimit
	}

	query := `
		SELECT id, user_id, amount, type, category, description, date, time,
		       merchant, payment_method, receipt_url, is_recurring, notes, created_at
		FROM transactions WHERE user_id = ?`
	args := []interface{}{userID}

	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Type != "" {
		query += ` AND type = ?`
		args = append(args, string(f.Type))
	}
	if f.StartDate != "" {
		query += ` AND date >= ?`
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		query += ` AND date <= ?`
		args = append(args, f.EndDate)
	}
	query += ` ORDER BY date DESC, time DESC, created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, f.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger: query transactions: %w", err)
	}
	defer rows.Close()

	var out []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UpdateTransaction mutates only the editable fields.
func (s *LedgerStore) UpdateTransaction(ctx context.Context, userID, id string, category, description, notes *string) (*domain.Transaction, error) {
	s.mu.Lock()
	t, err := s.getLocked(ctx, userID, id)
	if err != nil {
		s.mu.Unlock()
		return nil, err
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
	_, err = s.db.ExecContext(ctx, `
		UPDATE transactions SET category = ?, description = ?, notes = ?
		WHERE user_id = ? AND id = ?`,
		t.Category, t.Description, t.Notes, userID, id)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("ledger: update transaction: %w", err)
	}
	return t, nil
}

func (s *LedgerStore) getLocked(ctx context.Context, userID, id string) (*domain.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, amount, type, category, description, date, time,
		       merchant, payment_method, receipt_url, is_recurring, notes, created_at
		FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrTransactionNotFound
	}
	return t, err
}

// DeleteTransaction removes a row. Budget spent is intentionally not
// decremented; the reconciliation job repairs the drift.
func (s *LedgerStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("ledger: delete transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrTransactionNotFound
	}
	return nil
}

// GetSpendingSummary aggregates the window [start, end].
func (s *LedgerStore) GetSpendingSummary(ctx context.Context, userID, start, end string) (*domain.SpendingSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, category, SUM(CAST(amount AS REAL))
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date <= ?
		GROUP BY type, category`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("ledger: spending summary: %w", err)
	}
	defer rows.Close()

	summary := &domain.SpendingSummary{
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
		ByCategory:    map[string]decimal.Decimal{},
	}
	for rows.Next() {
		var txnType, category string
		var total float64
		if err := rows.Scan(&txnType, &category, &total); err != nil {
			return nil, err
		}
		amount := decimal.NewFromFloat(total).Round(2)
		if domain.TransactionType(txnType) == domain.TransactionTypeIncome {
			summary.TotalIncome = summary.TotalIncome.Add(amount)
		} else {
			summary.TotalExpenses = summary.TotalExpenses.Add(amount)
			summary.ByCategory[category] = summary.ByCategory[category].Add(amount)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary.Net = summary.TotalIncome.Sub(summary.TotalExpenses)
	if summary.TotalIncome.IsPositive() {
		rate, _ := summary.Net.Div(summary.TotalIncome).Mul(decimal.NewFromInt(100)).Round(2).Float64()
		summary.SavingsRate = rate
	}
	return summary, nil
}

// GetCashflow returns the day-indexed series with a running balance
// seeded by the sum of all transactions strictly before start.
func (s *LedgerStore) GetCashflow(ctx context.Context, userID, start, end string) ([]*domain.CashflowPoint, error) {
	var opening float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN CAST(amount AS REAL)
		                         ELSE -CAST(amount AS REAL) END), 0)
		FROM transactions WHERE user_id = ? AND date < ?`, userID, start).Scan(&opening)
	if err != nil {
		return nil, fmt.Errorf("ledger: cashflow opening: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT date,
		       COALESCE(SUM(CASE WHEN type = 'income' THEN CAST(amount AS REAL) ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN type = 'expense' THEN CAST(amount AS REAL) ELSE 0 END), 0)
		FROM transactions
		WHERE user_id = ? AND date >= ? AND date <= ?
		GROUP BY date ORDER BY date ASC`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("ledger: cashflow: %w", err)
	}
	defer rows.Close()

	balance := decimal.NewFromFloat(opening).Round(2)
	var out []*domain.CashflowPoint
	for rows.Next() {
		var date string
		var income, expense float64
		if err := rows.Scan(&date, &income, &expense); err != nil {
			return nil, err
		}
		in := decimal.NewFromFloat(income).Round(2)
		ex := decimal.NewFromFloat(expense).Round(2)
		balance = balance.Add(in).Sub(ex)
		out = append(out, &domain.CashflowPoint{
			Date:    date,
			Income:  in,
			Expense: ex,
			Balance: balance,
		})
	}
	return out, rows.Err()
}

// DailyTotals returns the (date, type, sum) grouping the trend rebuild consumes.
func (s *LedgerStore) DailyTotals(ctx context.Context, userID string) ([]*domain.DailyTypeTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, type, SUM(CAST(amount AS REAL))
		FROM transactions WHERE user_id = ?
		GROUP BY date, type ORDER BY date ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger: daily totals: %w", err)
	}
	defer rows.Close()

	var out []*domain.DailyTypeTotal
	for rows.Next() {
		var d domain.DailyTypeTotal
		var typ string
		var total float64
		if err := rows.Scan(&d.Date, &typ, &total); err != nil {
			return nil, err
		}
		d.Type = domain.TransactionType(typ)
		d.Total = decimal.NewFromFloat(total).Round(2)
		out = append(out, &d)
	}
	return out, rows.Err()
}

// MonthlyTotals returns (month, type, sum) rows from startMonth (YYYY-MM)
// onwards, computed from the ledger directly.
func (s *LedgerStore) MonthlyTotals(ctx context.Context, userID, startMonth string) ([]*domain.MonthTypeTotal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT strftime('%Y-%m', date) AS month, type, SUM(CAST(amount AS REAL))
		FROM transactions
		WHERE user_id = ? AND strftime('%Y-%m', date) >= ?
		GROUP BY month, type ORDER BY month ASC`, userID, startMonth)
	if err != nil {
		return nil, fmt.Errorf("ledger: monthly totals: %w", err)
	}
	defer rows.Close()

	var out []*domain.MonthTypeTotal
	for rows.Next() {
		var m domain.MonthTypeTotal
		var typ string
		var total float64
		if err := rows.Scan(&m.Month, &typ, &total); err != nil {
			return nil, err
		}
		m.Type = domain.TransactionType(typ)
		m.Total = decimal.NewFromFloat(total).Round(2)
		out = append(out, &m)
	}
	return out, rows.Err()
}

// SumExpensesByCategory sums expenses in a category since start.
func (s *LedgerStore) SumExpensesByCategory(ctx context.Context, userID, category, start string) (decimal.Decimal, error) {
	var total float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(CAST(amount AS REAL)), 0)
		FROM transactions
		WHERE user_id = ? AND type = 'expense' AND category = ? AND date >= ?`,
		userID, category, start).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("ledger: sum expenses: %w", err)
	}
	return decimal.NewFromFloat(total).Round(2), nil
}

// ReplaceDailyTrends swaps the user's cache rows in one transaction.
func (s *LedgerStore) ReplaceDailyTrends(ctx context.Context, userID string, trends []*domain.DailyTrend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ledger: begin trends tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM daily_trends WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("ledger: clear trends: %w", err)
	}
	for _, t := range trends {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO daily_trends (user_id, date, total_spent, total_income)
			VALUES (?, ?, ?, ?)`,
			userID, t.Date, t.TotalSpent.StringFixed(2), t.TotalIncome.StringFixed(2))
		if err != nil {
			return fmt.Errorf("ledger: insert trend: %w", err)
		}
	}
	return tx.Commit()
}

// GetDailyTrends reads the cache for a window.
func (s *LedgerStore) GetDailyTrends(ctx context.Context, userID, start, end string) ([]*domain.DailyTrend, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, date, total_spent, total_income
		FROM daily_trends
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date ASC`, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("ledger: get trends: %w", err)
	}
	defer rows.Close()

	var out []*domain.DailyTrend
	for rows.Next() {
		var t domain.DailyTrend
		var spent, income string
		if err := rows.Scan(&t.UserID, &t.Date, &spent, &income); err != nil {
			return nil, err
		}
		t.TotalSpent, _ = decimal.NewFromString(spent)
		t.TotalIncome, _ = decimal.NewFromString(income)
		out = append(out, &t)
	}
	return out, rows.Err()
}

// ActiveUserIDs lists every user with at least one transaction.
func (s *LedgerStore) ActiveUserIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT user_id FROM transactions`)
	if err != nil {
		return nil, fmt.Errorf("ledger: active users: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var t domain.Transaction
	var amount, typ, createdAt string
	var recurring int
	err := row.Scan(&t.ID, &t.UserID, &amount, &typ, &t.Category, &t.Description,
		&t.Date, &t.Time, &t.Merchant, &t.PaymentMethod, &t.ReceiptURL,
		&recurring, &t.Notes, &createdAt)
	if err != nil {
		return nil, err
	}
	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("ledger: bad amount %q: %w", amount, err)
	}
	t.Type = domain.TransactionType(typ)
	t.IsRecurring = recurring != 0
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
