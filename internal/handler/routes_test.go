package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/agent"
	"github.com/arthamitra/arthamitra-backend/internal/agent/tools"
	"github.com/arthamitra/arthamitra-backend/internal/brainstorm"
	"github.com/arthamitra/arthamitra-backend/internal/categorize"
	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/extract"
	"github.com/arthamitra/arthamitra-backend/internal/llm"
	"github.com/arthamitra/arthamitra-backend/internal/repository/storage"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/arthamitra/arthamitra-backend/internal/websocket"
	"github.com/labstack/echo/v4"
)

// newTestServer wires the full route table over mock repositories.
// Registration itself is part of the test: echo panics on conflicting
// route definitions.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	ledger := testutil.NewMockLedgerRepository()
	budgets := testutil.NewMockBudgetRepository()
	goals := testutil.NewMockGoalRepository()
	payments := testutil.NewMockScheduledPaymentRepository()
	rules := testutil.NewMockMerchantRuleRepository()
	docs := testutil.NewMockDocsRepository()
	billing := testutil.NewMockBillingRepository()
	splits := testutil.NewMockBillSplitRepository()

	gw := llm.NewGateway()
	categorizer := categorize.NewCategorizer(rules, nil)
	transactionService := service.NewTransactionService(ledger, budgets, nil)
	analyticsService := service.NewAnalyticsService(ledger, budgets, goals, payments)
	milestoneService := service.NewMilestoneService(docs, nil)
	paymentService := service.NewPaymentService(payments, transactionService, nil)
	dashboardService := service.NewDashboardService(transactionService, service.NewBudgetService(budgets, nil), service.NewGoalService(goals, nil), paymentService, milestoneService)
	businessService := service.NewBusinessService(docs, gw)

	registry := tools.NewRegistry()
	actionStore := tools.NewActionStore(0)
	agentSvc := agent.New(gw, registry, actionStore, nil, nil, ledger)

	receiptService := service.NewReceiptService(&stubVision{}, categorizer, transactionService, &storage.NoOpObjectRepository{})
	statementService := service.NewStatementService(extract.NewPDFExtractor(nil), categorizer, transactionService, &storage.NoOpObjectRepository{})

	e := echo.New()
	RegisterRoutes(
		e,
		nil,
		NewAgentHandler(agentSvc, receiptService, statementService),
		NewCalculatorHandler(),
		NewCategorizeHandler(categorizer),
		NewTransactionHandler(transactionService),
		NewBudgetHandler(service.NewBudgetService(budgets, nil)),
		NewGoalHandler(service.NewGoalService(goals, nil)),
		NewPaymentHandler(paymentService),
		NewMerchantRuleHandler(service.NewMerchantRuleService(rules)),
		NewAnalyticsHandler(analyticsService),
		NewDashboardHandler(dashboardService),
		NewBillingHandler(service.NewBillingService(billing)),
		NewBillSplitHandler(service.NewBillSplitService(splits, nil)),
		NewBusinessHandler(businessService, brainstorm.NewService(gw)),
		NewDocsHandler(milestoneService, analyticsService),
		NewWebSocketHandler(websocket.NewHub()),
	)
	return e
}

// stubVision satisfies extract.VisionOCR for wiring tests.
type stubVision struct{}

func (s *stubVision) IsConfigured() bool { return false }
func (s *stubVision) ExtractReceipt(ctx context.Context, imageBytes []byte, mimeType string) (*extract.ReceiptData, error) {
	return nil, domain.ErrNotConfigured
}

func TestRegisterRoutes_HealthCheck(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("Expected status ok, got %s", resp["status"])
	}
}

func TestRegisterRoutes_UnknownPath(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rec.Code)
	}
}
