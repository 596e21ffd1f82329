package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_NotConfigured(t *testing.T) {
	c, err := NewClient("", "")
	require.NoError(t, err)
	_, err = c.Search(context.Background(), "finance", "80C limit")
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestReformulate_StocksAppendsExchangeTerms(t *testing.T) {
	q := reformulate("stocks", "infosys")
	assert.Contains(t, q, "infosys")
	assert.Contains(t, q, "NSE")
	assert.Contains(t, q, "BSE")
	assert.Contains(t, q, "share price")
}

func TestReformulate_ShoppingAppendsMarketplaceFilters(t *testing.T) {
	q := reformulate("shopping", "running shoes under 3000")
	assert.Contains(t, q, "running shoes under 3000")
	assert.Contains(t, q, "site:amazon.in")
	assert.Contains(t, q, "site:flipkart.com")
}

func TestReformulate_SkipsPresentTerms(t *testing.T) {
	q := reformulate("finance", "India mutual fund")
	assert.Contains(t, q, "finance")
	// Terms already present are not duplicated.
	assert.Equal(t, 1, countOccurrences(q, "india"))
}

func countOccurrences(s, term string) int {
	n := 0
	for _, t := range queryTerms(s) {
		if t == term {
			n++
		}
	}
	return n
}

func TestFilterResults(t *testing.T) {
	raw := []Result{
		{Title: "Mudra loan eligibility", Snippet: "PMMY Mudra loans are available up to 10 lakh for micro enterprises in India.", URL: "https://a"},
		{Title: "Unrelated", Snippet: "A recipe for paneer butter masala that everyone will enjoy at dinner.", URL: "https://b"},
		{Title: "Short", Snippet: "too short", URL: "https://c"},
	}

	out := filterResults("mudra loan eligibility", raw)
	require.Len(t, out, 1)
	assert.Equal(t, "https://a", out[0].URL)
	assert.Greater(t, out[0].Score, 1.0)
}

func TestFilterResults_RankDecay(t *testing.T) {
	snippet := "PMMY Mudra loans are available up to 10 lakh for micro enterprises in India."
	raw := []Result{
		{Title: "Mudra loan guide", Snippet: snippet, URL: "https://a"},
		{Title: "Mudra loan guide", Snippet: snippet, URL: "https://b"},
	}

	out := filterResults("mudra loan", raw)
	require.Len(t, out, 2)
	// Identical content: the higher-ranked backend result must score higher.
	assert.Equal(t, "https://a", out[0].URL)
	assert.Greater(t, out[0].Score, out[1].Score)
}

func TestSearch_BackendAndCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "in", r.URL.Query().Get("gl"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"organic_results": []map[string]string{
				{"title": "PPF interest rate 2025", "snippet": "The PPF interest rate for the current quarter is 7.1 percent per annum compounded yearly.", "link": "https://x"},
			},
		})
	}))
	defer srv.Close()

	c, err := NewClient("test-key", srv.URL)
	require.NoError(t, err)

	results, err := c.Search(context.Background(), "finance", "PPF interest rate")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "https://x", results[0].URL)
	assert.Equal(t, "x", results[0].Source)
	assert.Equal(t, 1, calls)

	// Ristretto admits asynchronously; wait for the entry before the
	// cached lookup.
	c.cache.Wait()
	_, err = c.Search(context.Background(), "finance", "PPF interest rate")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestCategories_FixedSet(t *testing.T) {
	cats := Categories()
	assert.Len(t, cats, 10)
	for _, want := range []string{
		"general", "shopping", "news", "finance", "travel",
		"fashion", "real_estate", "stocks", "hotels", "local",
	} {
		assert.Contains(t, cats, want)
	}
}
