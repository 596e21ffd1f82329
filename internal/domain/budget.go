package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type BudgetPeriod string

const (
	BudgetPeriodWeekly  BudgetPeriod = "weekly"
	BudgetPeriodMonthly BudgetPeriod = "monthly"
	BudgetPeriodYearly  BudgetPeriod = "yearly"
)

// Budget tracks a spending cap per category. Spent is a cache maintained
// by expense inserts; the ledger remains the authoritative truth and the
// reconciliation job recomputes Spent from it.
type Budget struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Spent     decimal.Decimal `json:"spent"`
	Period    BudgetPeriod    `json:"period"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date,omitempty"`
	Icon      string          `json:"icon,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// BudgetRepository persists budgets in the planning store.
type BudgetRepository interface {
	CreateBudget(ctx context.Context, b *Budget) (*Budget, error)
	GetBudget(ctx context.Context, userID, id string) (*Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]*Budget, error)
	UpdateBudget(ctx context.Context, b *Budget) (*Budget, error)
	DeleteBudget(ctx context.Context, userID, id string) error
	// IncrementSpent adds amount to the Spent of every budget matching
	// (userID, category). Used by the ledger insert side effect.
	IncrementSpent(ctx context.Context, userID, category string, amount decimal.Decimal) error
	SetSpent(ctx context.Context, userID, id string, spent decimal.Decimal) error
}
