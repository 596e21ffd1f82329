package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentFrequency string

const (
	FrequencyDaily   PaymentFrequency = "daily"
	FrequencyWeekly  PaymentFrequency = "weekly"
	FrequencyMonthly PaymentFrequency = "monthly"
	FrequencyYearly  PaymentFrequency = "yearly"
)

type PaymentStatus string

const (
	PaymentStatusActive    PaymentStatus = "active"
	PaymentStatusPaused    PaymentStatus = "paused"
	PaymentStatusCompleted PaymentStatus = "completed"
)

type PaymentType string

const (
	PaymentTypeRegular PaymentType = "regular"
	PaymentTypeLoan    PaymentType = "loan"
	PaymentTypeEMI     PaymentType = "emi"
)

// ScheduledPayment is a recurring bill, loan or EMI. The loan-only fields
// are zero for regular payments.
type ScheduledPayment struct {
	ID           string           `json:"id"`
	UserID       string           `json:"user_id"`
	Name         string           `json:"name"`
	Amount       decimal.Decimal  `json:"amount"`
	Category     string           `json:"category"`
	Frequency    PaymentFrequency `json:"frequency"`
	DueDate      string           `json:"due_date"`
	NextDueDate  string           `json:"next_due_date"`
	IsAutopay    bool             `json:"is_autopay"`
	Status       PaymentStatus    `json:"status"`
	ReminderDays int              `json:"reminder_days"`
	LastPaidDate string           `json:"last_paid_date,omitempty"`
	PaymentType  PaymentType      `json:"payment_type"`

	// Loan/EMI tracking
	InterestRate       float64         `json:"interest_rate,omitempty"`
	TotalTenure        int             `json:"total_tenure,omitempty"`
	PrincipalOutstanding decimal.Decimal `json:"principal_outstanding,omitempty"`
	TotalInterestPaid  decimal.Decimal `json:"total_interest_paid,omitempty"`
	TotalPrincipalPaid decimal.Decimal `json:"total_principal_paid,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ScheduledPaymentRepository persists scheduled payments in the planning store.
type ScheduledPaymentRepository interface {
	CreatePayment(ctx context.Context, p *ScheduledPayment) (*ScheduledPayment, error)
	GetPayment(ctx context.Context, userID, id string) (*ScheduledPayment, error)
	ListPayments(ctx context.Context, userID string) ([]*ScheduledPayment, error)
	UpdatePayment(ctx context.Context, p *ScheduledPayment) (*ScheduledPayment, error)
	DeletePayment(ctx context.Context, userID, id string) error
}
