// Package brainstorm runs persona-driven ideation sessions for business
// ideas: persona chat, reverse brainstorming and lean-canvas extraction.
package brainstorm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arthamitra/arthamitra-backend/internal/llm"
)

// Persona selects the voice the model answers in.
type Persona string

const (
	PersonaNeutral   Persona = "neutral"
	PersonaCritic    Persona = "critic"
	PersonaAnalyst   Persona = "analyst"
	PersonaOptimist  Persona = "optimist"
	PersonaInnovator Persona = "innovator"
)

var personaPrompts = map[Persona]string{
	PersonaNeutral:   "You are a balanced business mentor for small Indian entrepreneurs. Give practical, even-handed feedback.",
	PersonaCritic:    "You are a sceptical investor. Probe weaknesses, risks and unvalidated assumptions in the idea. Be blunt but constructive.",
	PersonaAnalyst:   "You are a market analyst. Ground every point in market sizing, competition, unit economics and regulatory context for India.",
	PersonaOptimist:  "You are an encouraging mentor. Highlight strengths, adjacent opportunities and quick wins, while staying realistic.",
	PersonaInnovator: "You are a product innovator. Suggest unconventional angles, technology leverage and differentiation for the idea.",
}

// Message is one turn of a brainstorm conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Canvas is a lean canvas extracted from a session transcript.
type Canvas struct {
	Problem       []string `json:"problem"`
	Solution      []string `json:"solution"`
	ValueProp     string   `json:"value_proposition"`
	CustomerSeg   []string `json:"customer_segments"`
	Channels      []string `json:"channels"`
	RevenueStream []string `json:"revenue_streams"`
	CostStructure []string `json:"cost_structure"`
	KeyMetrics    []string `json:"key_metrics"`
	UnfairAdv     string   `json:"unfair_advantage"`
}

// Service orchestrates sessions over the LLM gateway.
type Service struct {
	gw *llm.Gateway
}

// NewService creates a brainstorm service.
func NewService(gw *llm.Gateway) *Service {
	return &Service{gw: gw}
}

func (s *Service) IsConfigured() bool { return s.gw.IsConfigured() }

// Chat continues a persona conversation. Unknown personas fall back to
// neutral. Returns domain.ErrNotConfigured via the gateway when no
// provider is available.
func (s *Service) Chat(ctx context.Context, persona Persona, history []Message, userMessage string) (string, error) {
	system, ok := personaPrompts[persona]
	if !ok {
		system = personaPrompts[PersonaNeutral]
	}

	req := &llm.Request{
		System:      system,
		MaxTokens:   700,
		Temperature: 0.7,
	}
	for _, m := range history {
		role := llm.RoleUser
		if m.Role == "assistant" {
			role = llm.RoleAssistant
		}
		req.Messages = append(req.Messages, llm.Message{Role: role, Content: m.Content})
	}
	req.Messages = append(req.Messages, llm.Message{Role: llm.RoleUser, Content: userMessage})

	resp, err := s.gw.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Reverse runs a reverse-brainstorming pass: how could this idea fail,
// then flip each failure mode into a preventive action.
func (s *Service) Reverse(ctx context.Context, idea string) ([]string, []string, error) {
	resp, err := s.gw.Chat(ctx, &llm.Request{
		System: "You run reverse brainstorming for business ideas in India. Respond with only a JSON object {\"failure_modes\": [...], \"preventions\": [...]} where preventions[i] addresses failure_modes[i]. 5 items each, one sentence per item.",
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: "Idea: " + idea,
		}},
		MaxTokens:   900,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, nil, err
	}

	var parsed struct {
		FailureModes []string `json:"failure_modes"`
		Preventions  []string `json:"preventions"`
	}
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &parsed); err != nil {
		return nil, nil, fmt.Errorf("brainstorm: parsing reverse output: %w", err)
	}
	return parsed.FailureModes, parsed.Preventions, nil
}

// ExtractCanvas condenses a session transcript into a lean canvas.
func (s *Service) ExtractCanvas(ctx context.Context, history []Message) (*Canvas, error) {
	var transcript strings.Builder
	for _, m := range history {
		fmt.Fprintf(&transcript, "%s: %s\n", m.Role, m.Content)
	}

	resp, err := s.gw.Chat(ctx, &llm.Request{
		System: "Extract a lean canvas from the brainstorm transcript. Respond with only a JSON object with keys: problem, solution, value_proposition, customer_segments, channels, revenue_streams, cost_structure, key_metrics, unfair_advantage. List fields are string arrays; value_proposition and unfair_advantage are strings. Use empty values for anything the transcript does not cover.",
		Messages: []llm.Message{{
			Role:    llm.RoleUser,
			Content: transcript.String(),
		}},
		MaxTokens:   1200,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	var canvas Canvas
	if err := json.Unmarshal([]byte(extractJSON(resp.Content)), &canvas); err != nil {
		return nil, fmt.Errorf("brainstorm: parsing canvas: %w", err)
	}
	return &canvas, nil
}

// Personas lists the available persona names.
func Personas() []string {
	return []string{
		string(PersonaNeutral), string(PersonaCritic), string(PersonaAnalyst),
		string(PersonaOptimist), string(PersonaInnovator),
	}
}

// extractJSON trims code fences and prose around a JSON object.
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
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}
