package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction is a single ledger entry. ID, UserID and CreatedAt are
// immutable after insert; category, description and notes may be edited.
type Transaction struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Date          string          `json:"date"` // YYYY-MM-DD, user's local day
	Time          string          `json:"time,omitempty"`
	Merchant      string          `json:"merchant,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	IsRecurring   bool            `json:"is_recurring"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TransactionFilters narrows QueryTransactions. Zero values mean "no filter".
type TransactionFilters struct {
	Category  string
	Type      TransactionType
	StartDate string
	EndDate   string
	Limit     int
	Offset    int
}

const (
	DefaultTransactionLimit = 50
	MaxTransactionLimit     = 500
)

// SpendingSummary aggregates a user's ledger over a date window.
type SpendingSummary struct {
	TotalIncome   decimal.Decimal            `json:"total_income"`
	TotalExpenses decimal.Decimal            `json:"total_expenses"`
	Net           decimal.Decimal            `json:"net"`
	SavingsRate   float64                    `json:"savings_rate"`
	ByCategory    map[string]decimal.Decimal `json:"by_category"`
}

// CashflowPoint is one day of the cashflow series. Balance is a running
// balance seeded with the sum of all transactions strictly before the
// window start.
type CashflowPoint struct {
	Date    string          `json:"date"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// DailyTrend is the derived per-day cache row keyed by (user_id, date).
type DailyTrend struct {
	UserID      string          `json:"user_id"`
	Date        string          `json:"date"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	TotalIncome decimal.Decimal `json:"total_income"`
}

// DailyTypeTotal is one (date, type) aggregation row used by the trend rebuild.
type DailyTypeTotal struct {
	Date  string
	Type  TransactionType
	Total decimal.Decimal
}

// MonthTypeTotal is one (month, type) aggregation row used by monthly trends.
type MonthTypeTotal struct {
	Month string // YYYY-MM
	Type  TransactionType
	Total decimal.Decimal
}

// LedgerRepository is the transactional store plus its derived daily cache.
type LedgerRepository interface {
	CreateTransaction(ctx context.Context, t *Transaction) (*Transaction, error)
	GetTransaction(ctx context.Context, userID, id string) (*Transaction, error)
	QueryTransactions(ctx context.Context, userID string, filters *TransactionFilters) ([]*Transaction, error)
	UpdateTransaction(ctx context.Context, userID, id string, category, description, notes *string) (*Transaction, error)
	DeleteTransaction(ctx context.Context, userID, id string) error
	GetSpendingSummary(ctx context.Context, userID, start, end string) (*SpendingSummary, error)
	GetCashflow(ctx context.Context, userID, start, end string) ([]*CashflowPoint, error)
	DailyTotals(ctx context.Context, userID string) ([]*DailyTypeTotal, error)
	MonthlyTotals(ctx context.Context, userID, startMonth string) ([]*MonthTypeTotal, error)
	SumExpensesByCategory(ctx context.Context, userID, category, start string) (decimal.Decimal, error)
	ReplaceDailyTrends(ctx context.Context, userID string, trends []*DailyTrend) error
	GetDailyTrends(ctx context.Context, userID, start, end string) ([]*DailyTrend, error)
	ActiveUserIDs(ctx context.Context) ([]string, error)
}
