package service

import (
	"context"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/categorize"
	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/extract"
	"github.com/arthamitra/arthamitra-backend/internal/repository/storage"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVision returns a fixed receipt without calling any provider.
type stubVision struct {
	receipt    *extract.ReceiptData
	configured bool
}

func (s *stubVision) IsConfigured() bool { return s.configured }
func (s *stubVision) ExtractReceipt(ctx context.Context, imageBytes []byte, mimeType string) (*extract.ReceiptData, error) {
	return s.receipt, nil
}

func newReceiptFixture(receipt *extract.ReceiptData) (*ReceiptService, *testutil.MockLedgerRepository) {
	ledger := testutil.NewMockLedgerRepository()
	txns := NewTransactionService(ledger, testutil.NewMockBudgetRepository(), nil)
	categorizer := categorize.NewCategorizer(testutil.NewMockMerchantRuleRepository(), nil)
	svc := NewReceiptService(&stubVision{receipt: receipt, configured: true}, categorizer, txns, &storage.NoOpObjectRepository{})
	return svc, ledger
}

func TestReceiptService_Scan(t *testing.T) {
	svc, ledger := newReceiptFixture(&extract.ReceiptData{
		MerchantName: "Swiggy",
		Date:         "2026-08-20",
		TotalAmount:  430.50,
	})

	result, err := svc.Scan(context.Background(), "u1", "bill.jpg", []byte("not-an-image"), "image/jpeg")
	require.NoError(t, err)

	assert.True(t, result.Transaction.Amount.Equal(decimal.NewFromFloat(430.50)))
	assert.Equal(t, "2026-08-20", result.Transaction.Date)
	// Keyword chain resolves Swiggy without a vision category.
	assert.Equal(t, "Food & Dining", result.Transaction.Category)
	assert.Len(t, ledger.Transactions, 1)
}

func TestReceiptService_Scan_VisionCategoryWins(t *testing.T) {
	svc, _ := newReceiptFixture(&extract.ReceiptData{
		MerchantName: "Swiggy",
		TotalAmount:  100,
		Category:     "Groceries",
	})

	result, err := svc.Scan(context.Background(), "u1", "bill.jpg", []byte("x"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", result.Transaction.Category)
}

func TestReceiptService_Scan_ZeroTotalFails(t *testing.T) {
	svc, _ := newReceiptFixture(&extract.ReceiptData{MerchantName: "Blur", TotalAmount: 0})

	_, err := svc.Scan(context.Background(), "u1", "bill.jpg", []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestReceiptService_Scan_Unconfigured(t *testing.T) {
	txns := NewTransactionService(testutil.NewMockLedgerRepository(), testutil.NewMockBudgetRepository(), nil)
	categorizer := categorize.NewCategorizer(testutil.NewMockMerchantRuleRepository(), nil)
	svc := NewReceiptService(&stubVision{configured: false}, categorizer, txns, &storage.NoOpObjectRepository{})

	_, err := svc.Scan(context.Background(), "u1", "bill.jpg", []byte("x"), "image/jpeg")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestStatementService_Import_RequiresUser(t *testing.T) {
	svc := NewStatementService(extract.NewPDFExtractor(nil), nil, nil, &storage.NoOpObjectRepository{})
	_, err := svc.Import(context.Background(), "", []byte("%PDF-1.4"))
	assert.ErrorIs(t, err, domain.ErrUserIDRequired)
}

func TestStatementService_Import_RejectsGarbage(t *testing.T) {
	svc := NewStatementService(extract.NewPDFExtractor(nil), nil, nil, &storage.NoOpObjectRepository{})
	_, err := svc.Import(context.Background(), "u1", []byte("not a pdf"))
	assert.Error(t, err)
}
