package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const taxCorpus = `{
	"category": "tax",
	"items": [
		{"title": "Section 80C deductions", "content": "Section 80C allows deductions up to 1.5 lakh for PPF, ELSS, life insurance premium and home loan principal repayment."},
		{"title": "New tax regime", "content": "The new tax regime offers lower slab rates but removes most deductions including 80C and HRA exemption."}
	]
}`

const sipCorpus = `{
	"category": "investing",
	"items": [
		{"title": "What is SIP", "content": "A systematic investment plan invests a fixed amount in mutual funds every month, averaging out purchase cost over time."}
	]
}`

func newTestService(t *testing.T, withFTS bool) *Service {
	t.Helper()
	dir := t.TempDir()
	writeCorpus(t, dir, "tax.json", taxCorpus)
	writeCorpus(t, dir, "investing.json", sipCorpus)

	ftsPath := ""
	if withFTS {
		ftsPath = filepath.Join(t.TempDir(), "knowledge.db")
	}
	svc, err := NewService(dir, ftsPath)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestLoadCorpus_StableIDs(t *testing.T) {
	svc := newTestService(t, false)
	assert.Equal(t, 3, svc.DocumentCount())

	svc.mu.RLock()
	defer svc.mu.RUnlock()
	ids := map[string]bool{}
	for _, d := range svc.docs {
		ids[d.ID] = true
	}
	assert.True(t, ids["tax_0"])
	assert.True(t, ids["tax_1"])
	assert.True(t, ids["investing_0"])
}

func TestSearch_TFIDF(t *testing.T) {
	svc := newTestService(t, false)

	results, err := svc.Search(context.Background(), "80C deduction limit", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "Section 80C deductions", results[0].Document.Title)
	assert.Greater(t, results[0].Score, minScore)
}

func TestSearch_FTSPreferred(t *testing.T) {
	svc := newTestService(t, true)

	results, err := svc.Search(context.Background(), "systematic investment plan", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "What is SIP", results[0].Document.Title)
}

func TestSearch_PunctuationSafe(t *testing.T) {
	svc := newTestService(t, true)

	// Quotes and operators must not break the MATCH grammar.
	_, err := svc.Search(context.Background(), `"80C" AND (NEAR OR*)`, 3)
	assert.NoError(t, err)
}

func TestSearch_NoMatch(t *testing.T) {
	svc := newTestService(t, false)

	results, err := svc.Search(context.Background(), "quantum chromodynamics lattice", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestAddDocument_VisibleImmediately(t *testing.T) {
	svc := newTestService(t, true)

	_, err := svc.AddDocument(context.Background(), "schemes", "PMEGP subsidy",
		"PMEGP provides margin money subsidy between 15 and 35 percent for new micro enterprises.")
	require.NoError(t, err)
	assert.Equal(t, 4, svc.DocumentCount())

	results, err := svc.Search(context.Background(), "PMEGP margin money subsidy", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "PMEGP subsidy", results[0].Document.Title)
}

func TestAddDocument_RejectsEmpty(t *testing.T) {
	svc := newTestService(t, false)
	_, err := svc.AddDocument(context.Background(), "tax", " ", "content")
	assert.Error(t, err)
}

func TestTokenize_BigramsAndStopWords(t *testing.T) {
	tokens := tokenize("What is the SIP plan")
	assert.Contains(t, tokens, "sip")
	assert.Contains(t, tokens, "plan")
	assert.Contains(t, tokens, "sip plan")
	assert.NotContains(t, tokens, "the")
}

func TestCategories(t *testing.T) {
	svc := newTestService(t, false)
	cats := svc.Categories()
	assert.ElementsMatch(t, []string{"tax", "investing"}, cats)
}
