package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow("u1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow("u1") {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentUsers(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	// Exhaust u1's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("u1") {
			t.Errorf("u1 request %d should be allowed", i+1)
		}
	}

	// u1 should be rate limited
	if rl.Allow("u1") {
		t.Error("u1 should be rate limited")
	}

	// u2 should still have its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("u2") {
			t.Errorf("u2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimitMiddleware_KeyedByPathParam(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2)
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	doRequest := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/dashboard/"+userID, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("user_id")
		c.SetParamValues(userID)
		if err := RateLimitMiddleware(rl)(handler)(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return rec
	}

	// First 2 requests succeed (burst)
	for i := 0; i < 2; i++ {
		rec := doRequest("u1")
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200, got %d", i+1, rec.Code)
		}
		if rec.Header().Get("X-RateLimit-Remaining") == "" {
			t.Errorf("Request %d: Expected X-RateLimit-Remaining header", i+1)
		}
	}

	// 3rd request is rate limited
	rec := doRequest("u1")
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	// Another user is unaffected
	if rec := doRequest("u2"); rec.Code != http.StatusOK {
		t.Errorf("Expected status 200 for other user, got %d", rec.Code)
	}
}

func TestRateLimitKey_FallsBackToHeaderThenIP(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-User-ID", "header-user")
	c := e.NewContext(req, httptest.NewRecorder())
	if got := rateLimitKey(c); got != "header-user" {
		t.Errorf("Expected header key, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:1234"
	c = e.NewContext(req, httptest.NewRecorder())
	if got := rateLimitKey(c); got != "10.1.2.3" {
		t.Errorf("Expected IP key, got %q", got)
	}
}
