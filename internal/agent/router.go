package agent

import (
	"regexp"
	"strings"
)

// Label classifies a query into an execution strategy.
type Label string

const (
	LabelTransaction    Label = "TRANSACTION"
	LabelStaticKB       Label = "STATIC_KB"
	LabelGovAPI         Label = "GOV_API"
	LabelWebSearch      Label = "WEB_SEARCH"
	LabelHeavyReasoning Label = "HEAVY_REASONING"
	LabelSimple         Label = "SIMPLE"
)

// RouteConfig tunes the downstream LLM call for a label.
type RouteConfig struct {
	MaxTokens int
}

var routeConfigs = map[Label]RouteConfig{
	LabelTransaction:    {MaxTokens: 600},
	LabelStaticKB:       {MaxTokens: 500},
	LabelGovAPI:         {MaxTokens: 300},
	LabelWebSearch:      {MaxTokens: 500},
	LabelHeavyReasoning: {MaxTokens: 1500},
	LabelSimple:         {MaxTokens: 800},
}

var (
	panTokenRe   = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	gstinTokenRe = regexp.MustCompile(`\b[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]\b`)

	actionVerbRe   = regexp.MustCompile(`(?i)\b(create|add|set|make|record|schedule|start)\b.{0,40}\b(budget|goal|payment|transaction|expense|income|bill|emi)\b`)
	amountNearVerb = regexp.MustCompile(`(?i)\b(spent|paid|received|earned|add|save|budget)\b[^.]{0,30}(₹|rs\.?\s?|inr\s?)?\d`)
)

var kbKeywords = []string{
	"tax", "80c", "80d", "gst", "tds", "itr", "regime", "deduction",
	"slab", "ppf", "nps", "epf", "elss", "section", "rebate", "cess",
}

var searchKeywords = []string{
	"buy", "price", "shop", "news", "latest", "scheme", "hotels near",
	"near me", "rate today", "share price", "best deal",
}

var reasoningKeywords = []string{
	"why", "compare", "analyze", "analyse", "should i", "versus", " vs ",
	"pros and cons", "explain in detail", "strategy",
}

// Classify labels a query. First match wins; the order follows the
// dispatch priority: explicit IDs, then actions, then knowledge, search,
// reasoning, plain chat.
func Classify(query, userContext string) (Label, RouteConfig) {
	upper := strings.ToUpper(query)
	lower := strings.ToLower(query)

	switch {
	case gstinTokenRe.MatchString(upper) || panTokenRe.MatchString(upper):
		return withConfig(LabelGovAPI)
	case actionVerbRe.MatchString(query) || amountNearVerb.MatchString(query):
		return withConfig(LabelTransaction)
	case containsAny(lower, kbKeywords):
		return withConfig(LabelStaticKB)
	case containsAny(lower, searchKeywords):
		return withConfig(LabelWebSearch)
	case len(strings.Fields(query)) > 40 || containsAny(lower, reasoningKeywords):
		return withConfig(LabelHeavyReasoning)
	default:
		return withConfig(LabelSimple)
	}
}

func withConfig(l Label) (Label, RouteConfig) {
	return l, routeConfigs[l]
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ExtractGovToken pulls the first government ID from a query, returning
// the token and its kind ("pan" or "gstin"). GSTIN is checked first since
// a GSTIN embeds a PAN.
func ExtractGovToken(query string) (token, kind string) {
	upper := strings.ToUpper(query)
	if m := gstinTokenRe.FindString(upper); m != "" {
		return m, "gstin"
	}
	if m := panTokenRe.FindString(upper); m != "" {
		return m, "pan"
	}
	return "", ""
}
