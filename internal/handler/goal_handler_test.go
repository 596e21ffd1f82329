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

func newGoalHandler() (*GoalHandler, *testutil.MockGoalRepository) {
	goals := testutil.NewMockGoalRepository()
	return NewGoalHandler(service.NewGoalService(goals, nil)), goals
}

func TestGoalCreate_Success(t *testing.T) {
	e := echo.New()
	handler, _ := newGoalHandler()

	c, rec := postJSON(t, e, "/goals", `{"user_id": "u1", "name": "Emergency Fund", "target_amount": 120000}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var goal domain.Goal
	if err := json.Unmarshal(rec.Body.Bytes(), &goal); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if goal.Status != domain.GoalStatusActive {
		t.Errorf("Expected active status, got %s", goal.Status)
	}
}

func TestGoalAddFunds_CompletesAtTarget(t *testing.T) {
	e := echo.New()
	handler, goals := newGoalHandler()

	goals.Add(&domain.Goal{
		ID:            "g1",
		UserID:        "u1",
		Name:          "Bike",
		TargetAmount:  decimal.NewFromInt(50000),
		CurrentAmount: decimal.NewFromInt(45000),
		Status:        domain.GoalStatusActive,
	})

	c, rec := postJSON(t, e, "/goals/g1/add-funds", `{"user_id": "u1", "amount": 5000}`)
	c.SetParamNames("id")
	c.SetParamValues("g1")

	if err := handler.AddFunds(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var goal domain.Goal
	if err := json.Unmarshal(rec.Body.Bytes(), &goal); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if goal.Status != domain.GoalStatusCompleted {
		t.Errorf("Expected completed status, got %s", goal.Status)
	}
	if !goal.CurrentAmount.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("Expected current amount 50000, got %s", goal.CurrentAmount)
	}
}

func TestGoalAddFunds_RejectsNonPositive(t *testing.T) {
	e := echo.New()
	handler, goals := newGoalHandler()

	goals.Add(&domain.Goal{ID: "g1", UserID: "u1", Name: "Bike", TargetAmount: decimal.NewFromInt(50000), Status: domain.GoalStatusActive})

	c, rec := postJSON(t, e, "/goals/g1/add-funds", `{"user_id": "u1", "amount": 0}`)
	c.SetParamNames("id")
	c.SetParamValues("g1")

	if err := handler.AddFunds(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}

func TestGoalList_RequiresUserID(t *testing.T) {
	e := echo.New()
	handler, _ := newGoalHandler()

	req := httptest.NewRequest(http.MethodGet, "/goals", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
