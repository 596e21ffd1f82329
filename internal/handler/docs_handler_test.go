package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/service"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func newDocsHandler() (*DocsHandler, *testutil.MockLedgerRepository) {
	ledger := testutil.NewMockLedgerRepository()
	analytics := service.NewAnalyticsService(ledger, testutil.NewMockBudgetRepository(), testutil.NewMockGoalRepository(), testutil.NewMockScheduledPaymentRepository())
	milestones := service.NewMilestoneService(testutil.NewMockDocsRepository(), nil)
	return NewDocsHandler(milestones, analytics), ledger
}

func getWithUserID(e *echo.Echo, method, path, userID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues(userID)
	return c, rec
}

func TestMilestones_FullCatalogLocked(t *testing.T) {
	e := echo.New()
	handler, _ := newDocsHandler()

	c, rec := getWithUserID(e, http.MethodGet, "/milestones/u1", "u1")
	if err := handler.Milestones(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Milestones []*domain.Milestone `json:"milestones"`
		XP         *domain.UserXP      `json:"xp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if len(resp.Milestones) != 14 {
		t.Errorf("Expected 14 catalog milestones, got %d", len(resp.Milestones))
	}
	for _, m := range resp.Milestones {
		if m.Achieved {
			t.Errorf("Expected milestone %s locked for a fresh user", m.MilestoneID)
		}
	}
	if resp.XP.TotalXP != 0 || resp.XP.Level != 1 {
		t.Errorf("Expected 0 XP at level 1, got %d XP level %d", resp.XP.TotalXP, resp.XP.Level)
	}
}

func TestRunAnalysis_AwardsThenCoolsDown(t *testing.T) {
	e := echo.New()
	handler, ledger := newDocsHandler()

	today := util.FormatDate(time.Now())
	ledger.Add(&domain.Transaction{ID: "t1", UserID: "u1", Amount: decimal.NewFromInt(50000), Type: domain.TransactionTypeIncome, Category: "Salary", Description: "salary", Date: today})
	ledger.Add(&domain.Transaction{ID: "t2", UserID: "u1", Amount: decimal.NewFromInt(20000), Type: domain.TransactionTypeExpense, Category: "Rent & Housing", Description: "rent", Date: today})

	c, rec := getWithUserID(e, http.MethodPost, "/analysis/u1", "u1")
	if err := handler.RunAnalysis(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var result service.AnalysisResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal result: %v", err)
	}
	if len(result.NewMilestones) == 0 {
		t.Error("Expected at least one milestone from first analysis")
	}
	if result.XP == nil || result.XP.TotalXP == 0 {
		t.Error("Expected XP from awarded milestones")
	}

	// Immediately repeating is inside the cooldown window.
	c2, rec2 := getWithUserID(e, http.MethodPost, "/analysis/u1", "u1")
	if err := handler.RunAnalysis(c2); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec2.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec2.Code)
	}

	var gate service.AnalysisGate
	if err := json.Unmarshal(rec2.Body.Bytes(), &gate); err != nil {
		t.Fatalf("Failed to unmarshal gate: %v", err)
	}
	if gate.CanAnalyze {
		t.Error("Expected can_analyze=false inside cooldown")
	}
	if gate.NextAnalysisDate == "" {
		t.Error("Expected next_analysis_date inside cooldown")
	}
}

func TestAnalysisGate_FreshUser(t *testing.T) {
	e := echo.New()
	handler, _ := newDocsHandler()

	c, rec := getWithUserID(e, http.MethodGet, "/analysis/u1", "u1")
	if err := handler.AnalysisGate(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var gate service.AnalysisGate
	if err := json.Unmarshal(rec.Body.Bytes(), &gate); err != nil {
		t.Fatalf("Failed to unmarshal gate: %v", err)
	}
	if !gate.CanAnalyze {
		t.Error("Expected a fresh user to be allowed to analyze")
	}
}
