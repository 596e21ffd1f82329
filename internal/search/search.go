// Package search wraps the SERP backend used by the agent's web_search
// tool. Results are filtered for topical overlap with the query and
// cached per (category, query) for six hours.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/dgraph-io/ristretto"
	"github.com/rs/zerolog/log"
)

const (
	cacheTTL       = 6 * time.Hour
	requestTimeout = 15 * time.Second
	backendTimeout = 10 * time.Second
	maxResults     = 5
	minSnippetLen  = 30
)

// Categories the tool accepts; each carries hint terms that anchor the
// query to the Indian context. Shopping is special-cased with marketplace
// site filters in reformulate.
var categoryHints = map[string]string{
	"general":     "India",
	"shopping":    "",
	"news":        "latest news India",
	"finance":     "India finance",
	"travel":      "India travel booking",
	"fashion":     "India fashion trends",
	"real_estate": "India property prices",
	"stocks":      "share price NSE BSE live today",
	"hotels":      "India hotels tariff",
	"local":       "near me India",
}

// marketplaceSites anchors shopping queries to Indian marketplaces.
const marketplaceSites = "site:amazon.in OR site:flipkart.com OR site:myntra.com"

// Result is one filtered search hit.
type Result struct {
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	URL     string  `json:"url"`
	Source  string  `json:"source,omitempty"`
	Date    string  `json:"date,omitempty"`
	Price   string  `json:"price,omitempty"`
	Score   float64 `json:"score"`
}

// Client performs cached, filtered web lookups.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	cache   *ristretto.Cache
}

// NewClient creates a search client. An empty apiKey leaves the client
// unconfigured; lookups then return domain.ErrNotConfigured.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = "https://serpapi.com/search"
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("search: creating cache: %w", err)
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: backendTimeout},
		cache:   cache,
	}, nil
}

func (c *Client) IsConfigured() bool { return c.apiKey != "" }

// Categories lists the accepted category names.
func Categories() []string {
	out := make([]string, 0, len(categoryHints))
	for k := range categoryHints {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Search reformulates the query for the category, hits the cache, then
// the backend, and returns overlap-filtered results.
func (c *Client) Search(ctx context.Context, category, query string) ([]Result, error) {
	if !c.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}
	if _, ok := categoryHints[category]; !ok {
		category = "general"
	}

	key := category + "|" + strings.ToLower(strings.TrimSpace(query))
	if cached, ok := c.cache.Get(key); ok {
		if results, ok := cached.([]Result); ok {
			return results, nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	raw, err := c.fetch(ctx, reformulate(category, query))
	if err != nil {
		return nil, err
	}

	results := filterResults(query, raw)
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	c.cache.SetWithTTL(key, results, int64(len(results)+1), cacheTTL)
	return results, nil
}

// reformulate appends the category hint terms the query is missing.
// Shopping appends the marketplace site filters verbatim.
func reformulate(category, query string) string {
	if category == "shopping" {
		return query + " " + marketplaceSites
	}
	hint := categoryHints[category]
	have := map[string]bool{}
	for _, t := range queryTerms(query) {
		have[t] = true
	}
	var extra []string
	for _, t := range strings.Fields(hint) {
		if !have[strings.ToLower(t)] {
			extra = append(extra, t)
		}
	}
	if len(extra) == 0 {
		return query
	}
	return query + " " + strings.Join(extra, " ")
}

type serpResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
		Source  string `json:"source"`
		Date    string `json:"date"`
		Price   string `json:"price"`
	} `json:"organic_results"`
	Error string `json:"error,omitempty"`
}

func (c *Client) fetch(ctx context.Context, query string) ([]Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("gl", "in")
	params.Set("hl", "en")
	params.Set("num", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("search: creating request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("search: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: status %d", resp.StatusCode)
	}

	var parsed serpResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("search: decoding response: %w", err)
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("search: backend error: %s", parsed.Error)
	}

	out := make([]Result, 0, len(parsed.OrganicResults))
	for _, r := range parsed.OrganicResults {
		source := r.Source
		if source == "" {
			if u, err := url.Parse(r.Link); err == nil {
				source = u.Host
			}
		}
		out = append(out, Result{
			Title:   r.Title,
			Snippet: r.Snippet,
			URL:     r.Link,
			Source:  source,
			Date:    r.Date,
			Price:   r.Price,
		})
	}
	log.Debug().Int("results", len(out)).Str("query", query).Msg("Web search completed")
	return out, nil
}

var termRe = regexp.MustCompile(`[a-z0-9]{3,}`)

func queryTerms(s string) []string {
	return termRe.FindAllString(strings.ToLower(s), -1)
}

// filterResults keeps hits that share at least one meaningful term with
// the query and carry a substantive snippet. The score grows with term
// hits (plus a title bonus) and decays with the backend rank.
func filterResults(query string, raw []Result) []Result {
	terms := queryTerms(query)
	if len(terms) == 0 {
		return nil
	}

	var out []Result
	for rank, r := range raw {
		if len(r.Snippet) < minSnippetLen {
			continue
		}
		title := strings.ToLower(r.Title)
		snippet := strings.ToLower(r.Snippet)

		matched := 0
		titleHits := 0
		for _, t := range terms {
			inTitle := strings.Contains(title, t)
			if inTitle {
				titleHits++
			}
			if inTitle || strings.Contains(snippet, t) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		base := float64(matched)/float64(len(terms)) + 0.5*float64(titleHits)/float64(len(terms))
		r.Score = base / (1 + 0.1*float64(rank))
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}
