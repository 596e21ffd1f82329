package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SplitPaymentStatus string

const (
	SplitPaymentPending SplitPaymentStatus = "pending"
	SplitPaymentPartial SplitPaymentStatus = "partial"
	SplitPaymentPaid    SplitPaymentStatus = "paid"
)

// BillSplit divides a bill across participants. Per-participant shares
// must sum to the bill total within 0.01.
type BillSplit struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Title       string          `json:"title"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Date        string          `json:"date"`
	Items       []*BillItem     `json:"items,omitempty"`
	Shares      []*SplitItem    `json:"shares,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BillItem is one line of the underlying bill.
type BillItem struct {
	ID      string          `json:"id"`
	SplitID string          `json:"split_id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
}

// SplitItem is one participant's share. PaidAmount accumulates through
// MakePayment and PaymentStatus moves pending → partial → paid
// monotonically; paid is terminal until a new bill.
type SplitItem struct {
	ID            string             `json:"id"`
	SplitID       string             `json:"split_id"`
	Participant   string             `json:"participant"`
	ShareAmount   decimal.Decimal    `json:"share_amount"`
	PaidAmount    decimal.Decimal    `json:"paid_amount"`
	PaymentStatus SplitPaymentStatus `json:"payment_status"`
}

// BillSplitRepository persists bill splits in the planning store.
type BillSplitRepository interface {
	CreateSplit(ctx context.Context, s *BillSplit) (*BillSplit, error)
	GetSplit(ctx context.Context, userID, id string) (*BillSplit, error)
	ListSplits(ctx context.Context, userID string) ([]*BillSplit, error)
	UpdateSplitItem(ctx context.Context, item *SplitItem) error
}
