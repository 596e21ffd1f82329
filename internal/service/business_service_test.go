package service

import (
	"context"
	"testing"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/llm"
	"github.com/arthamitra/arthamitra-backend/internal/mudra"
	"github.com/arthamitra/arthamitra-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cannedProvider returns a fixed response for every chat call.
type cannedProvider struct {
	response string
	calls    int
}

func (p *cannedProvider) Name() string       { return "canned" }
func (p *cannedProvider) IsConfigured() bool { return true }
func (p *cannedProvider) Chat(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	p.calls++
	return &llm.Response{Content: p.response, Model: "canned"}, nil
}

func TestBusinessService_EvaluateIdea(t *testing.T) {
	docs := testutil.NewMockDocsRepository()
	provider := &cannedProvider{response: "```json\n{\"score\": 72, \"verdict\": \"promising\", \"strengths\": [\"low capital\"], \"risks\": [\"competition\"], \"suggestions\": [\"start small\"]}\n```"}
	svc := NewBusinessService(docs, llm.NewGateway(provider))

	assessment, err := svc.EvaluateIdea(context.Background(), "u1", "cloud kitchen for tiffin services")
	require.NoError(t, err)
	assert.Equal(t, 72, assessment.Score)
	assert.Equal(t, "promising", assessment.Verdict)

	stored, err := svc.ListIdeaEvaluations(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "cloud kitchen for tiffin services", stored[0].Idea)
}

func TestBusinessService_EvaluateIdea_BadJSON(t *testing.T) {
	provider := &cannedProvider{response: "sorry, I cannot help with that"}
	svc := NewBusinessService(testutil.NewMockDocsRepository(), llm.NewGateway(provider))

	_, err := svc.EvaluateIdea(context.Background(), "u1", "an idea")
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestBusinessService_GenerateMudraDPR_StoresRun(t *testing.T) {
	docs := testutil.NewMockDocsRepository()
	svc := NewBusinessService(docs, llm.NewGateway())

	in := mudra.Input{
		BusinessName:       "Asha Snacks",
		FixedAssets:        []mudra.FixedAsset{{Name: "Fryer", Amount: 150000}},
		MonthlyRent:        8000,
		MonthlyWages:       15000,
		RawMaterialPerUnit: 12,
		UnitsFullCapacity:  5000,
		SellingPrice:       25,
	}
	out, err := svc.GenerateMudraDPR(context.Background(), "u1", in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.Tier)
	assert.Len(t, out.ProfitAndLoss, 5)

	runs, err := svc.ListMudraDPRs(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestBusinessService_GenerateDPRNarrative_RequiresGateway(t *testing.T) {
	svc := NewBusinessService(testutil.NewMockDocsRepository(), llm.NewGateway())
	out := mudra.Generate(mudra.Input{BusinessName: "x"})

	_, err := svc.GenerateDPRNarrative(context.Background(), "u1", "DPR", &out)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}
