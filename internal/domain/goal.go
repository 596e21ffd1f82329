package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
)

// Goal is a savings target. After any AddFunds the status must satisfy
// completed ⇔ current_amount ≥ target_amount.
type Goal struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	Name          string          `json:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Deadline      string          `json:"deadline,omitempty"`
	Status        GoalStatus      `json:"status"`
	Icon          string          `json:"icon,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// GoalRepository persists goals in the planning store.
type GoalRepository interface {
	CreateGoal(ctx context.Context, g *Goal) (*Goal, error)
	GetGoal(ctx context.Context, userID, id string) (*Goal, error)
	ListGoals(ctx context.Context, userID string) ([]*Goal, error)
	UpdateGoal(ctx context.Context, g *Goal) (*Goal, error)
	DeleteGoal(ctx context.Context, userID, id string) error
}
