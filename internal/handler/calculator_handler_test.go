package handler

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(t *testing.T, e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCalculator_SIP(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	c, rec := postJSON(t, e, "/calculator/sip", `{"monthly_investment": 10000, "annual_rate": 12, "duration_months": 120}`)
	if err := handler.SIP(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp struct {
		FutureValue   float64 `json:"future_value"`
		TotalInvested float64 `json:"total_invested"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if math.Abs(resp.FutureValue-2323391.0) > 1.0 {
		t.Errorf("Expected future value ~2323391, got %f", resp.FutureValue)
	}
	if resp.TotalInvested != 1200000 {
		t.Errorf("Expected total invested 1200000, got %f", resp.TotalInvested)
	}
}

func TestCalculator_EMI(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	c, rec := postJSON(t, e, "/calculator/emi", `{"principal": 1000000, "annual_rate": 9, "tenure_months": 240}`)
	if err := handler.EMI(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp struct {
		EMI float64 `json:"emi"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	if math.Abs(resp.EMI-8997.26) > 0.01 {
		t.Errorf("Expected EMI 8997.26, got %f", resp.EMI)
	}
}

func TestCalculator_SIP_RejectsNonPositive(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	c, rec := postJSON(t, e, "/calculator/sip", `{"monthly_investment": 0, "annual_rate": 12, "duration_months": 120}`)
	if err := handler.SIP(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}

	var problem ProblemDetails
	if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
		t.Fatalf("Failed to unmarshal problem: %v", err)
	}
	if problem.Type != ErrorTypeValidation {
		t.Errorf("Expected validation problem type, got %s", problem.Type)
	}
}

func TestCalculator_Tax_PicksCheaperRegime(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	c, rec := postJSON(t, e, "/calculator/tax", `{"annual_income": 700000, "deductions": 0}`)
	if err := handler.Tax(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp struct {
		NewRegimeTax float64 `json:"new_regime_tax"`
		Recommended  string  `json:"recommended"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}

	// 7L income is fully rebated under the new regime.
	if resp.NewRegimeTax != 0 {
		t.Errorf("Expected new regime tax 0, got %f", resp.NewRegimeTax)
	}
	if resp.Recommended != "new" {
		t.Errorf("Expected recommendation 'new', got %s", resp.Recommended)
	}
}

func TestCalculator_EmergencyFund(t *testing.T) {
	e := echo.New()
	handler := NewCalculatorHandler()

	c, rec := postJSON(t, e, "/calculator/emergency-fund", `{"monthly_expenses": 40000, "months": 6}`)
	if err := handler.EmergencyFund(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var resp map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp["target_amount"] != 240000 {
		t.Errorf("Expected target 240000, got %f", resp["target_amount"])
	}
}
