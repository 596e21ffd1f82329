package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	sarvamBaseURL = "https://api.sarvam.ai/v1"
	openAIBaseURL = "https://api.openai.com/v1"
)

// openAICompatible speaks the OpenAI chat-completions wire format. Sarvam
// exposes the same surface behind a different base URL and auth header.
type openAICompatible struct {
	name       string
	baseURL    string
	apiKey     string
	model      string
	authHeader string // "Authorization: Bearer" when empty
	client     *http.Client
}

// NewSarvam creates the Sarvam provider.
func NewSarvam(apiKey, model string) Provider {
	if model == "" {
		model = "sarvam-m"
	}
	return &openAICompatible{
		name:       "sarvam",
		baseURL:    sarvamBaseURL,
		apiKey:     apiKey,
		model:      model,
		authHeader: "api-subscription-key",
		client:     &http.Client{Timeout: 60 * time.Second},
	}
}

// NewOpenAI creates the OpenAI provider.
func NewOpenAI(apiKey, model string) Provider {
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &openAICompatible{
		name:    "openai",
		baseURL: openAIBaseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *openAICompatible) Name() string       { return p.name }
func (p *openAICompatible) IsConfigured() bool { return p.apiKey != "" }

type oaMessage struct {
	Role       string          `json:"role"`
	Content    json.RawMessage `json:"content,omitempty"`
	ToolCalls  []oaToolCall    `json:"tool_calls,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
}

type oaToolCall struct {
	ID       string     `json:"id"`
	Type     string     `json:"type"`
	Function oaFunction `json:"function"`
}

type oaFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type oaTool struct {
	Type     string    `json:"type"`
	Function oaToolDef `json:"function"`
}

type oaToolDef struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters,omitempty"`
}

type oaRequest struct {
	Model       string      `json:"model"`
	Messages    []oaMessage `json:"messages"`
	Tools       []oaTool    `json:"tools,omitempty"`
	MaxTokens   int         `json:"max_tokens,omitempty"`
	Temperature float64     `json:"temperature,omitempty"`
}

type oaResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content   string       `json:"content"`
			ToolCalls []oaToolCall `json:"tool_calls"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (p *openAICompatible) Chat(ctx context.Context, req *Request) (*Response, error) {
	body := oaRequest{
		Model:       p.model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, oaMessage{Role: "system", Content: textContent(req.System)})
	}
	for _, m := range req.Messages {
		body.Messages = append(body.Messages, toOAMessage(m))
	}
	for _, t := range req.Tools {
		body.Tools = append(body.Tools, oaTool{
			Type: "function",
			Function: oaToolDef{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.InputSchema,
			},
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%s: marshaling request: %w", p.name, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%s: creating request: %w", p.name, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if p.authHeader != "" {
		httpReq.Header.Set(p.authHeader, p.apiKey)
	} else {
		httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: request: %w", p.name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", p.name, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: status %d: %s", p.name, resp.StatusCode, truncate(string(raw), 300))
	}

	var parsed oaResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%s: decoding response: %w", p.name, err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("%s: API error: %s", p.name, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%s: empty choices", p.name)
	}

	choice := parsed.Choices[0]
	out := &Response{Content: choice.Message.Content, Model: parsed.Model}
	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: json.RawMessage(tc.Function.Arguments),
		})
	}
	return out, nil
}

func toOAMessage(m Message) oaMessage {
	out := oaMessage{Role: string(m.Role), ToolCallID: m.ToolCallID}
	if m.Role == RoleTool {
		out.Role = "tool"
	}
	switch {
	case m.ImageDataURL != "":
		parts := []map[string]interface{}{
			{"type": "text", "text": m.Content},
			{"type": "image_url", "image_url": map[string]string{"url": m.ImageDataURL}},
		}
		raw, _ := json.Marshal(parts)
		out.Content = raw
	case len(m.ToolCalls) > 0:
		for _, tc := range m.ToolCalls {
			out.ToolCalls = append(out.ToolCalls, oaToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: oaFunction{
					Name:      tc.Name,
					Arguments: string(tc.Arguments),
				},
			})
		}
		if m.Content != "" {
			out.Content = textContent(m.Content)
		}
	default:
		out.Content = textContent(m.Content)
	}
	return out
}

func textContent(s string) json.RawMessage {
	raw, _ := json.Marshal(s)
	return raw
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
