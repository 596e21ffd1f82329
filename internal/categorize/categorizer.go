package categorize

import (
	"context"
	"sort"
	"strings"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
)

// CategoryOther is the fall-through category when nothing matches.
const CategoryOther = "Other"

// keywordEntry pairs a category with the merchant keywords that imply it.
// Entries are checked in order; the first hit wins.
type keywordEntry struct {
	category string
	keywords []string
}

var builtinKeywords = []keywordEntry{
	{"Food & Dining", []string{"ZOMATO", "SWIGGY", "RESTAURANT", "CAFE", "DOMINO", "PIZZA", "MCDONALD", "KFC", "BURGER", "DHABA", "EATERY", "BIRYANI", "FOOD"}},
	{"Groceries", []string{"BIGBASKET", "BLINKIT", "ZEPTO", "GROFER", "DMART", "GROCERY", "KIRANA", "SUPERMARKET", "RELIANCE FRESH", "MORE RETAIL"}},
	{"Transport", []string{"UBER", "OLA", "RAPIDO", "IRCTC", "REDBUS", "METRO", "PETROL", "DIESEL", "FUEL", "IOCL", "HPCL", "BPCL", "FASTAG", "PARKING"}},
	{"Shopping", []string{"AMAZON", "FLIPKART", "MYNTRA", "AJIO", "MEESHO", "NYKAA", "TATA CLIQ", "SNAPDEAL", "SHOPPING", "MALL"}},
	{"Utilities", []string{"ELECTRICITY", "BESCOM", "MSEB", "WATER BILL", "BROADBAND", "AIRTEL", "JIO", "VODAFONE", "BSNL", "RECHARGE", "GAS", "TANGEDCO"}},
	{"Entertainment", []string{"NETFLIX", "HOTSTAR", "PRIME VIDEO", "SPOTIFY", "BOOKMYSHOW", "PVR", "INOX", "SONYLIV", "ZEE5", "GAMING"}},
	{"Healthcare", []string{"PHARMACY", "APOLLO", "MEDPLUS", "PHARMEASY", "1MG", "HOSPITAL", "CLINIC", "DIAGNOSTIC", "LAB", "DOCTOR", "MEDICAL"}},
	{"Education", []string{"SCHOOL", "COLLEGE", "UNIVERSITY", "UDEMY", "COURSERA", "BYJU", "UNACADEMY", "TUITION", "COACHING", "FEES"}},
	{"Investment", []string{"ZERODHA", "GROWW", "UPSTOX", "KUVERA", "MUTUAL FUND", "SIP", "NPS", "PPF", "ETMONEY", "STOCK"}},
	{"Insurance", []string{"LIC", "INSURANCE", "POLICYBAZAAR", "HDFC ERGO", "ICICI LOMBARD", "PREMIUM", "STAR HEALTH"}},
	{"EMI & Loans", []string{"EMI", "LOAN", "BAJAJ FIN", "HOME CREDIT", "NACH", "ECS", "MANDATE", "REPAYMENT"}},
	{"Salary & Income", []string{"SALARY", "PAYROLL", "STIPEND", "COMMISSION", "BONUS", "INCENTIVE"}},
	{"Transfer", []string{"NEFT", "IMPS", "RTGS", "SELF TRANSFER", "UPI TRANSFER", "WALLET"}},
	{"Rent & Housing", []string{"RENT", "NOBROKER", "NESTAWAY", "MAINTENANCE", "SOCIETY", "HOUSING"}},
	{"Personal Care", []string{"SALON", "SPA", "GYM", "CULTFIT", "FITNESS", "BARBER", "PARLOUR"}},
}

// LLMCategorizer upgrades "Other" items when a gateway is configured.
// Implementations must return one category per input, order preserved.
type LLMCategorizer interface {
	CategorizeOne(ctx context.Context, description string) (string, error)
	CategorizeBatch(ctx context.Context, descriptions []string) ([]string, error)
}

// Categorizer resolves categories through the rule → keyword → LLM chain.
type Categorizer struct {
	rules domain.MerchantRuleRepository
	llm   LLMCategorizer // optional
}

// NewCategorizer creates a Categorizer. llm may be nil.
func NewCategorizer(rules domain.MerchantRuleRepository, llm LLMCategorizer) *Categorizer {
	return &Categorizer{rules: rules, llm: llm}
}

// Categorize resolves a single description. User rules are consulted
// longest keyword first, matched as substrings of both the raw
// upper-cased description and the normalized merchant token, so a rule
// saved with channel noise still wins over a broader one.
func (c *Categorizer) Categorize(ctx context.Context, description string) (string, error) {
	if cat, ok, err := c.matchRules(ctx, description); err != nil {
		return "", err
	} else if ok {
		return cat, nil
	}

	if cat, ok := matchKeywords(description); ok {
		return cat, nil
	}

	if c.llm != nil {
		if cat, err := c.llm.CategorizeOne(ctx, description); err == nil && cat != "" {
			return cat, nil
		}
	}
	return CategoryOther, nil
}

// CategorizeBatch applies rules and keywords to every item, then sends
// the remaining "Other" items to the LLM in one batch call. Input order
// is preserved.
func (c *Categorizer) CategorizeBatch(ctx context.Context, descriptions []string) ([]string, error) {
	out := make([]string, len(descriptions))
	var pendingIdx []int
	var pending []string

	for i, d := range descriptions {
		if cat, ok, err := c.matchRules(ctx, d); err != nil {
			return nil, err
		} else if ok {
			out[i] = cat
			continue
		}
		if cat, ok := matchKeywords(d); ok {
			out[i] = cat
			continue
		}
		out[i] = CategoryOther
		pendingIdx = append(pendingIdx, i)
		pending = append(pending, d)
	}

	if c.llm != nil && len(pending) > 0 {
		cats, err := c.llm.CategorizeBatch(ctx, pending)
		if err == nil && len(cats) == len(pending) {
			for j, i := range pendingIdx {
				if cats[j] != "" {
					out[i] = cats[j]
				}
			}
		}
	}
	return out, nil
}

func (c *Categorizer) matchRules(ctx context.Context, description string) (string, bool, error) {
	rules, err := c.rules.ListRules(ctx)
	if err != nil {
		return "", false, err
	}
	// Longest keyword wins; ties keep repository order.
	sort.SliceStable(rules, func(i, j int) bool {
		return len(rules[i].Keyword) > len(rules[j].Keyword)
	})

	raw := strings.ToUpper(strings.TrimSpace(description))
	normalized := NormalizeMerchant(description)
	for _, r := range rules {
		if r.Keyword == "" {
			continue
		}
		if strings.Contains(raw, r.Keyword) || strings.Contains(normalized, r.Keyword) {
			return r.Category, true, nil
		}
	}
	return "", false, nil
}

func matchKeywords(description string) (string, bool) {
	upper := strings.ToUpper(description)
	for _, entry := range builtinKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(upper, kw) {
				return entry.category, true
			}
		}
	}
	return "", false
}
