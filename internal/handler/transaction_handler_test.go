package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newTransactionHandler() (*TransactionHandler, *testutil.MockLedgerRepository) {
	ledger := testutil.NewMockLedgerRepository()
	svc := service.NewTransactionService(ledger, testutil.NewMockBudgetRepository(), nil)
	return NewTransactionHandler(svc), ledger
}

func TestTransactionCreate_Success(t *testing.T) {
	e := echo.New()
	handler, ledger := newTransactionHandler()

	body := `{"user_id": "u1", "amount": 450.50, "type": "expense", "category": "Groceries", "description": "BigBasket order", "date": "2026-08-20"}`
	c, rec := postJSON(t, e, "/transactions", body)

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if created.ID == "" {
		t.Error("Expected generated ID")
	}
	if !created.Amount.Equal(decimal.NewFromFloat(450.50)) {
		t.Errorf("Expected amount 450.50, got %s", created.Amount)
	}
	if len(ledger.Transactions) != 1 {
		t.Errorf("Expected 1 stored transaction, got %d", len(ledger.Transactions))
	}
}

func TestTransactionCreate_NegativeAmount(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	body := `{"user_id": "u1", "amount": -5, "type": "expense", "description": "x", "date": "2026-08-20"}`
	c, rec := postJSON(t, e, "/transactions", body)

	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestTransactionList_RequiresUserID(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestTransactionList_FiltersByUser(t *testing.T) {
	e := echo.New()
	handler, ledger := newTransactionHandler()

	ledger.Add(&domain.Transaction{ID: "t1", UserID: "u1", Amount: decimal.NewFromInt(100), Type: domain.TransactionTypeExpense, Category: "Other", Description: "a", Date: "2026-08-01"})
	ledger.Add(&domain.Transaction{ID: "t2", UserID: "u2", Amount: decimal.NewFromInt(200), Type: domain.TransactionTypeExpense, Category: "Other", Description: "b", Date: "2026-08-02"})

	req := httptest.NewRequest(http.MethodGet, "/transactions?user_id=u1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Transactions []*domain.Transaction `json:"transactions"`
		Count        int                   `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("Expected 1 transaction, got %d", resp.Count)
	}
	if len(resp.Transactions) == 1 && resp.Transactions[0].ID != "t1" {
		t.Errorf("Expected transaction t1, got %s", resp.Transactions[0].ID)
	}
}

func TestTransactionDelete_NotFound(t *testing.T) {
	e := echo.New()
	handler, _ := newTransactionHandler()

	req := httptest.NewRequest(http.MethodDelete, "/transactions/missing?user_id=u1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem: %v", err)
	}
	if problem.Type != ErrorTypeNotFound {
		t.Errorf("Expected not-found problem type, got %s", problem.Type)
	}
}
