package categorize

import (
	"context"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeMerchant(t *testing.T) {
	cases := map[string]string{
		"UPI-ZOMATO*ORDER12345":       "ZOMATO",
		"POS SWIGGY BANGALORE":        "SWIGGY BANGALORE",
		"  amazon india  ":            "AMAZON",
		"RELIANCE RETAIL PVT LTD":     "RELIANCE RETAIL",
		"NEFT-ACME CORP-REF99881":     "ACME CORP",
		"NETFLIX COM AMSTERDAM EXTRA": "NETFLIX COM AMSTERDAM",
		"":                            "",
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeMerchant(raw), "raw=%q", raw)
	}
}

func TestCategorize_LongestRuleWins(t *testing.T) {
	rules := testutil.NewMockMerchantRuleRepository()
	rules.Add(&domain.MerchantRule{ID: "1", Keyword: "ZOMATO", Category: "Food & Dining"})
	rules.Add(&domain.MerchantRule{ID: "2", Keyword: "ZOMATO*GOLD", Category: "Subscriptions"})

	c := NewCategorizer(rules, nil)

	cat, err := c.Categorize(context.Background(), "ZOMATO*GOLD ORDER 12345")
	assert.NoError(t, err)
	assert.Equal(t, "Subscriptions", cat)
}

func TestCategorize_RuleOnNormalizedDescription(t *testing.T) {
	rules := testutil.NewMockMerchantRuleRepository()
	rules.Add(&domain.MerchantRule{ID: "1", Keyword: "ZOMATO", Category: "Food & Dining"})

	c := NewCategorizer(rules, nil)

	cat, err := c.Categorize(context.Background(), "UPI-ZOMATO*ORDER12345")
	assert.NoError(t, err)
	assert.Equal(t, "Food & Dining", cat)
}

func TestCategorize_KeywordTableFallback(t *testing.T) {
	c := NewCategorizer(testutil.NewMockMerchantRuleRepository(), nil)

	cases := map[string]string{
		"swiggy order":        "Food & Dining",
		"UBER TRIP 8821":      "Transport",
		"NETFLIX.COM":         "Entertainment",
		"BESCOM ELECTRICITY":  "Utilities",
		"ZERODHA BROKING":     "Investment",
		"monthly rent to owner": "Rent & Housing",
	}
	for desc, want := range cases {
		cat, err := c.Categorize(context.Background(), desc)
		assert.NoError(t, err)
		assert.Equal(t, want, cat, "desc=%q", desc)
	}
}

func TestCategorize_FallsThroughToOther(t *testing.T) {
	c := NewCategorizer(testutil.NewMockMerchantRuleRepository(), nil)

	cat, err := c.Categorize(context.Background(), "XQZT UNKNOWN 42")
	assert.NoError(t, err)
	assert.Equal(t, CategoryOther, cat)
}

type stubLLM struct {
	batchCalls int
}

func (s *stubLLM) CategorizeOne(_ context.Context, _ string) (string, error) {
	return "Gifts", nil
}

func (s *stubLLM) CategorizeBatch(_ context.Context, descs []string) ([]string, error) {
	s.batchCalls++
	out := make([]string, len(descs))
	for i := range descs {
		out[i] = "Gifts"
	}
	return out, nil
}

func TestCategorize_LLMUpgradesOther(t *testing.T) {
	llm := &stubLLM{}
	c := NewCategorizer(testutil.NewMockMerchantRuleRepository(), llm)

	cat, err := c.Categorize(context.Background(), "XQZT UNKNOWN 42")
	assert.NoError(t, err)
	assert.Equal(t, "Gifts", cat)
}

func TestCategorizeBatch_PreservesOrderSingleLLMCall(t *testing.T) {
	llm := &stubLLM{}
	rules := testutil.NewMockMerchantRuleRepository()
	rules.Add(&domain.MerchantRule{ID: "1", Keyword: "ZOMATO", Category: "Food & Dining"})
	c := NewCategorizer(rules, llm)

	out, err := c.CategorizeBatch(context.Background(), []string{
		"ZOMATO ORDER",
		"XQZT UNKNOWN",
		"UBER TRIP",
		"ANOTHER MYSTERY",
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Food & Dining", "Gifts", "Transport", "Gifts"}, out)
	assert.Equal(t, 1, llm.batchCalls)
}

func TestCategorizeBatch_NoLLM(t *testing.T) {
	c := NewCategorizer(testutil.NewMockMerchantRuleRepository(), nil)

	out, err := c.CategorizeBatch(context.Background(), []string{"mystery spend"})
	assert.NoError(t, err)
	assert.Equal(t, []string{CategoryOther}, out)
}
