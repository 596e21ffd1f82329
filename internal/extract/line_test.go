package extract

import (
	"testing"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	return parsed
}

func TestParseLine_DebitWithBalance(t *testing.T) {
	txn, ok := ParseLine("04/01/2025 UPI-ZOMATO*ORDER12345 450.00 12,550.00")
	assert.True(t, ok)
	assert.Equal(t, "2025-01-04", txn.Date)
	assert.Equal(t, "UPI-ZOMATO*ORDER12345", txn.Description)
	assert.True(t, txn.Amount.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, domain.TransactionTypeExpense, txn.Type)
	assert.NotNil(t, txn.Balance)
	assert.True(t, txn.Balance.Equal(decimal.RequireFromString("12550")))
}

func TestParseLine_CreditKeyword(t *testing.T) {
	txn, ok := ParseLine("15-02-2025 NEFT SALARY CREDIT 55,000.00 67,550.00")
	assert.True(t, ok)
	assert.Equal(t, "2025-02-15", txn.Date)
	assert.Equal(t, domain.TransactionTypeIncome, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("55000")))
}

func TestParseLine_CrSuffix(t *testing.T) {
	txn, ok := ParseLine("01/03/2025 INTEREST 1,250.50Cr")
	assert.True(t, ok)
	assert.Equal(t, domain.TransactionTypeIncome, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("1250.50")))
}

func TestParseLine_DateFormats(t *testing.T) {
	cases := map[string]string{
		"04/01/2025 TEST 100.00":   "2025-01-04",
		"04-01-2025 TEST 100.00":   "2025-01-04",
		"04 Jan 2025 TEST 100.00":  "2025-01-04",
		"2025-01-04 TEST 100.00":   "2025-01-04",
		"Jan 04, 2025 TEST 100.00": "2025-01-04",
		"04/01/25 TEST 100.00":     "2025-01-04",
	}
	for line, want := range cases {
		txn, ok := ParseLine(line)
		assert.True(t, ok, "line=%q", line)
		assert.Equal(t, want, txn.Date, "line=%q", line)
	}
}

func TestParseLine_NoDate(t *testing.T) {
	_, ok := ParseLine("OPENING BALANCE 12,000.00")
	assert.False(t, ok)
}

func TestParseLine_NoAmount(t *testing.T) {
	_, ok := ParseLine("04/01/2025 STATEMENT PERIOD START")
	assert.False(t, ok)
}

func TestParseLine_IgnoresReferenceNumbers(t *testing.T) {
	txn, ok := ParseLine("04/01/2025 IMPS 402912345678 TRANSFER 2,500.00")
	assert.True(t, ok)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("2500")))
}

func TestParseLine_RupeePrefix(t *testing.T) {
	txn, ok := ParseLine("04/01/2025 SWIGGY ₹325.00")
	assert.True(t, ok)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("325")))
}

func TestParseText_MultipleLines(t *testing.T) {
	text := "HDFC BANK STATEMENT\n" +
		"04/01/2025 UPI-SWIGGY 325.00 11,675.00\n" +
		"\n" +
		"05/01/2025 ATM WDL 2,000.00 9,675.00\n"

	txns := ParseText(text)
	assert.Len(t, txns, 2)
}

func TestDedupe_MergesWithinOneDay(t *testing.T) {
	a := &Transaction{Date: "2025-01-04", Description: "SWIGGY", Amount: decimal.NewFromInt(325), Type: domain.TransactionTypeExpense}
	b := &Transaction{Date: "2025-01-05", Description: "swiggy", Amount: decimal.NewFromInt(325), Type: domain.TransactionTypeExpense}

	out := Dedupe([]*Transaction{a, b})
	assert.Len(t, out, 1)
	assert.Equal(t, "2025-01-04", out[0].Date)
}

func TestDedupe_KeepsTwoDaysApart(t *testing.T) {
	a := &Transaction{Date: "2025-01-04", Description: "SWIGGY", Amount: decimal.NewFromInt(325), Type: domain.TransactionTypeExpense}
	b := &Transaction{Date: "2025-01-06", Description: "SWIGGY", Amount: decimal.NewFromInt(325), Type: domain.TransactionTypeExpense}

	out := Dedupe([]*Transaction{a, b})
	assert.Len(t, out, 2)
}

func TestDedupe_DifferentTypeNotMerged(t *testing.T) {
	a := &Transaction{Date: "2025-01-04", Description: "REVERSAL", Amount: decimal.NewFromInt(100), Type: domain.TransactionTypeExpense}
	b := &Transaction{Date: "2025-01-04", Description: "REVERSAL", Amount: decimal.NewFromInt(100), Type: domain.TransactionTypeIncome}

	out := Dedupe([]*Transaction{a, b})
	assert.Len(t, out, 2)
}

func TestParsePhonePe_Fixture(t *testing.T) {
	text := "PhonePe Transaction Statement\n" +
		"Jan 05, 2025\n" +
		"Paid to Netflix India\n" +
		"199.00\n" +
		"Jan 07, 2025\n" +
		"Received from Ramesh Kumar\n" +
		"1,500.00\n"

	txns := parsePhonePe(text)
	assert.Len(t, txns, 2)

	assert.Equal(t, "2025-01-05", txns[0].Date)
	assert.Equal(t, domain.TransactionTypeExpense, txns[0].Type)
	assert.Equal(t, "Netflix India", txns[0].Merchant)
	assert.True(t, txns[0].Amount.Equal(decimal.RequireFromString("199")))

	assert.Equal(t, "2025-01-07", txns[1].Date)
	assert.Equal(t, domain.TransactionTypeIncome, txns[1].Type)
	assert.True(t, txns[1].Amount.Equal(decimal.RequireFromString("1500")))
}

func TestNormalizeReceipt(t *testing.T) {
	now := mustTime(t, "2025-08-20")
	r := &ReceiptData{MerchantName: "Star Bazaar", TotalAmount: 1289.5, Date: "2025-08-18"}

	txn := NormalizeReceipt(r, now)
	assert.Equal(t, "2025-08-18", txn.Date)
	assert.Equal(t, "Star Bazaar", txn.Description)
	assert.Equal(t, domain.TransactionTypeExpense, txn.Type)
	assert.True(t, txn.Amount.Equal(decimal.RequireFromString("1289.5")))
}

func TestNormalizeReceipt_BadDateFallsBack(t *testing.T) {
	now := mustTime(t, "2025-08-20")
	r := &ReceiptData{MerchantName: "Star Bazaar", TotalAmount: 100, Date: "18th Aug"}

	txn := NormalizeReceipt(r, now)
	assert.Equal(t, "2025-08-20", txn.Date)
}
