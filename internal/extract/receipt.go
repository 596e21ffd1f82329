package extract

import (
	"context"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// ReceiptData is the shape the vision collaborator returns for a receipt
// image.
type ReceiptData struct {
	MerchantName  string        `json:"merchant_name"`
	Date          string        `json:"date,omitempty"`
	TotalAmount   float64       `json:"total_amount"`
	Currency      string        `json:"currency,omitempty"`
	Items         []ReceiptItem `json:"items,omitempty"`
	Category      string        `json:"category,omitempty"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	RawText       string        `json:"raw_text,omitempty"`
}

// ReceiptItem is one line item on a receipt.
type ReceiptItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// VisionOCR is the receipt-reading collaborator.
type VisionOCR interface {
	ExtractReceipt(ctx context.Context, imageBytes []byte, mimeType string) (*ReceiptData, error)
	IsConfigured() bool
}

// NormalizeReceipt converts vision output into a single expense
// transaction. A missing or unparseable date falls back to today.
func NormalizeReceipt(r *ReceiptData, now time.Time) *Transaction {
	date := strings.TrimSpace(r.Date)
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			date = ""
		}
	}
	if date == "" {
		date = now.Format("2006-01-02")
	}

	desc := strings.TrimSpace(r.MerchantName)
	if desc == "" {
		desc = "Receipt"
	}

	return &Transaction{
		Date:        date,
		Description: desc,
		Merchant:    r.MerchantName,
		Amount:      decimal.NewFromFloat(r.TotalAmount).Round(2),
		Type:        domain.TransactionTypeExpense,
	}
}
