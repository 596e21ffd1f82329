package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/llm"
	"github.com/arthamitra/arthamitra-backend/internal/mudra"
	"github.com/google/uuid"
)

// IdeaAssessment is the structured verdict on a business idea.
type IdeaAssessment struct {
	Score       int      `json:"score"`
	Verdict     string   `json:"verdict"`
	Strengths   []string `json:"strengths"`
	Risks       []string `json:"risks"`
	Suggestions []string `json:"suggestions"`
}

const ideaPrompt = `Evaluate this business idea for a first-time Indian entrepreneur.
Respond with only a JSON object:
{"score": 0-100, "verdict": string, "strengths": [string], "risks": [string], "suggestions": [string]}
Consider market size, capital needs, regulatory burden and competition in India.`

// BusinessService covers idea evaluation and DPR generation.
type BusinessService struct {
	docsRepo domain.DocsRepository
	gw       *llm.Gateway
}

// NewBusinessService creates a new BusinessService.
func NewBusinessService(docsRepo domain.DocsRepository, gw *llm.Gateway) *BusinessService {
	return &BusinessService{docsRepo: docsRepo, gw: gw}
}

// EvaluateIdea scores the idea through the gateway and persists the
// verdict.
func (s *BusinessService) EvaluateIdea(ctx context.Context, userID, idea string) (*IdeaAssessment, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, domain.ErrInvalidInput
	}
	if !s.gw.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}

	resp, err := s.gw.Chat(ctx, &llm.Request{
		System:      ideaPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: idea}},
		MaxTokens:   800,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	var assessment IdeaAssessment
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &assessment); err != nil {
		return nil, domain.ErrExtractionFailed
	}

	raw, err := json.Marshal(&assessment)
	if err != nil {
		return nil, err
	}
	if _, err := s.docsRepo.CreateIdeaEvaluation(ctx, &domain.IdeaEvaluation{
		ID:     uuid.NewString(),
		UserID: userID,
		Idea:   idea,
		Result: raw,
	}); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// ListIdeaEvaluations returns stored idea verdicts for a user.
func (s *BusinessService) ListIdeaEvaluations(ctx context.Context, userID string) ([]*domain.IdeaEvaluation, error) {
	return s.docsRepo.ListIdeaEvaluations(ctx, userID)
}

// GenerateMudraDPR runs the deterministic Mudra projection engine and
// stores the run for later recall.
func (s *BusinessService) GenerateMudraDPR(ctx context.Context, userID string, in mudra.Input) (*mudra.Output, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	out := mudra.Generate(in)

	rawIn, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	rawOut, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	if _, err := s.docsRepo.CreateMudraDPR(ctx, &domain.MudraDPRRecord{
		ID:     uuid.NewString(),
		UserID: userID,
		Input:  rawIn,
		Output: rawOut,
	}); err != nil {
		return nil, err
	}
	return &out, nil
}

// MudraWhatIf reruns a projection with field overrides, without storing
// the result.
func (s *BusinessService) MudraWhatIf(ctx context.Context, in mudra.Input, overrides map[string]json.RawMessage) (*mudra.Output, error) {
	out, err := mudra.WhatIf(in, overrides)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &out, nil
}

// ListMudraDPRs returns stored projection runs for a user.
func (s *BusinessService) ListMudraDPRs(ctx context.Context, userID string) ([]*domain.MudraDPRRecord, error) {
	return s.docsRepo.ListMudraDPRs(ctx, userID)
}

const dprPrompt = `Write a detailed project report (DPR) for a Mudra loan application.
Respond with only a JSON object:
{"executive_summary": string, "promoter_background": string, "market_analysis": string,
 "technical_feasibility": string, "financial_summary": string, "risk_mitigation": string}
Base every number on the projection data provided. Keep each section under 200 words.`

// GenerateDPRNarrative turns a stored projection into prose sections and
// saves the document.
func (s *BusinessService) GenerateDPRNarrative(ctx context.Context, userID, title string, projection *mudra.Output) (*domain.DPRDocument, error) {
	if userID == "" {
		return nil, domain.ErrUserIDRequired
	}
	if !s.gw.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}

	rawProjection, err := json.Marshal(projection)
	if err != nil {
		return nil, err
	}
	resp, err := s.gw.Chat(ctx, &llm.Request{
		System:      dprPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: string(rawProjection)}},
		MaxTokens:   1500,
		Temperature: 0.4,
	})
	if err != nil {
		return nil, err
	}

	content := stripFences(resp.Content)
	if !json.Valid([]byte(content)) {
		return nil, domain.ErrExtractionFailed
	}

	if title == "" {
		title = "Project Report"
	}
	return s.docsRepo.CreateDPR(ctx, &domain.DPRDocument{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Content: json.RawMessage(content),
	})
}

// stripFences drops markdown code fences around a JSON answer.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
