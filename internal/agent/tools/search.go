package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/search"
)

// SearchTool wraps the web search client.
func SearchTool(client *search.Client) *Tool {
	return &Tool{
		Name:        "web_search",
		Description: "Search the web for current information: prices, news, schemes, rates. Use for anything that needs fresh data.",
		InputSchema: ObjectSchema(map[string]interface{}{
			"query":    StringProperty("The search query"),
			"category": StringEnumProperty("Search category for query reformulation", search.Categories()...),
		}, "query"),
		Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
			var p struct {
				Query    string `json:"query"`
				Category string `json:"category"`
			}
			if err := json.Unmarshal(input, &p); err != nil || p.Query == "" {
				return Fail("web_search", "query is required")
			}
			results, err := client.Search(ctx, p.Category, p.Query)
			if errors.Is(err, domain.ErrNotConfigured) {
				return Fail("web_search", "web search is not configured")
			}
			if err != nil {
				return Fail("web_search", err.Error())
			}
			return &Result{Success: true, Action: "web_search", Data: results}
		},
	}
}
