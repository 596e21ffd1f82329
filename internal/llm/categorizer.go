package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

var categoryList = []string{
	"Food & Dining", "Groceries", "Transport", "Shopping", "Utilities",
	"Entertainment", "Healthcare", "Education", "Investment", "Insurance",
	"EMI & Loans", "Salary & Income", "Transfer", "Rent & Housing",
	"Personal Care", "Subscriptions", "Other",
}

// Categorizer resolves merchant descriptions to spending categories using
// the gateway. It is the fallback behind rules and keyword matching.
type Categorizer struct {
	gw *Gateway
}

// NewCategorizer creates a gateway-backed categorizer.
func NewCategorizer(gw *Gateway) *Categorizer {
	return &Categorizer{gw: gw}
}

func (c *Categorizer) IsConfigured() bool {
	return c.gw.IsConfigured()
}

// CategorizeOne returns the category for a single description.
func (c *Categorizer) CategorizeOne(ctx context.Context, description string) (string, error) {
	resp, err := c.gw.Chat(ctx, &Request{
		System: "You categorize Indian bank transaction descriptions. Answer with exactly one category name from the provided list and nothing else.",
		Messages: []Message{{
			Role: RoleUser,
			Content: fmt.Sprintf("Categories: %s\n\nTransaction: %s\n\nCategory:",
				strings.Join(categoryList, ", "), description),
		}},
		MaxTokens:   20,
		Temperature: 0,
	})
	if err != nil {
		return "", err
	}
	return sanitizeCategory(resp.Content), nil
}

// CategorizeBatch categorizes descriptions with one model call, preserving
// input order.
func (c *Categorizer) CategorizeBatch(ctx context.Context, descriptions []string) ([]string, error) {
	if len(descriptions) == 0 {
		return nil, nil
	}

	var sb strings.Builder
	for i, d := range descriptions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, d)
	}

	resp, err := c.gw.Chat(ctx, &Request{
		System: "You categorize Indian bank transaction descriptions. Respond with a JSON array of category names, one per input line, in order. Use only categories from the provided list.",
		Messages: []Message{{
			Role: RoleUser,
			Content: fmt.Sprintf("Categories: %s\n\nTransactions:\n%s\nJSON array:",
				strings.Join(categoryList, ", "), sb.String()),
		}},
		MaxTokens:   30 * len(descriptions),
		Temperature: 0,
	})
	if err != nil {
		return nil, err
	}

	var parsed []string
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &parsed); err != nil {
		return nil, fmt.Errorf("llm: parsing batch categories: %w", err)
	}

	out := make([]string, len(descriptions))
	for i := range out {
		if i < len(parsed) {
			out[i] = sanitizeCategory(parsed[i])
		} else {
			out[i] = "Other"
		}
	}
	return out, nil
}

// sanitizeCategory maps the model's answer onto the canonical list,
// falling back to Other.
func sanitizeCategory(answer string) string {
	answer = strings.TrimSpace(strings.Trim(answer, `"'.`))
	for _, c := range categoryList {
		if strings.EqualFold(answer, c) {
			return c
		}
	}
	return "Other"
}

// extractJSON strips markdown code fences and surrounding prose, keeping
// the first JSON array or object.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "```"); idx >= 0 {
		s = s[idx+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end >= 0 {
			s = s[:end]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}
	open := s[start]
	closeCh := byte(']')
	if open == '{' {
		closeCh = '}'
	}
	if end := strings.LastIndexByte(s, closeCh); end > start {
		return s[start : end+1]
	}
	return s[start:]
}
