package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/categorize"
	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/labstack/echo/v4"
)

func newCategorizeHandler(rules *testutil.MockMerchantRuleRepository) *CategorizeHandler {
	return NewCategorizeHandler(categorize.NewCategorizer(rules, nil))
}

func TestCategorize_KeywordChain(t *testing.T) {
	e := echo.New()
	handler := newCategorizeHandler(testutil.NewMockMerchantRuleRepository())

	c, rec := postJSON(t, e, "/categorize", `{"description": "UPI-ZOMATO*ORDER12345"}`)
	if err := handler.Categorize(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp["category"] != "Food & Dining" {
		t.Errorf("Expected Food & Dining, got %s", resp["category"])
	}
}

func TestCategorize_MerchantRuleWins(t *testing.T) {
	e := echo.New()
	rules := testutil.NewMockMerchantRuleRepository()
	rules.Add(&domain.MerchantRule{ID: "r1", Keyword: "ZOMATO*GOLD", Category: "Subscriptions"})
	handler := newCategorizeHandler(rules)

	c, rec := postJSON(t, e, "/categorize", `{"description": "ZOMATO*GOLD renewal"}`)
	if err := handler.Categorize(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if resp["category"] != "Subscriptions" {
		t.Errorf("Expected Subscriptions, got %s", resp["category"])
	}
}

func TestCategorizeBatch(t *testing.T) {
	e := echo.New()
	handler := newCategorizeHandler(testutil.NewMockMerchantRuleRepository())

	c, rec := postJSON(t, e, "/categorize/batch", `{"descriptions": ["SWIGGY ORDER", "completely unknown merchant"]}`)
	if err := handler.CategorizeBatch(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var resp struct {
		Categories []string `json:"categories"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if len(resp.Categories) != 2 {
		t.Fatalf("Expected 2 categories, got %d", len(resp.Categories))
	}
	if resp.Categories[0] != "Food & Dining" {
		t.Errorf("Expected Food & Dining, got %s", resp.Categories[0])
	}
	if resp.Categories[1] != categorize.CategoryOther {
		t.Errorf("Expected Other fallback, got %s", resp.Categories[1])
	}
}

func TestCategorize_RequiresDescription(t *testing.T) {
	e := echo.New()
	handler := newCategorizeHandler(testutil.NewMockMerchantRuleRepository())

	c, rec := postJSON(t, e, "/categorize", `{}`)
	if err := handler.Categorize(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
