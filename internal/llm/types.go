// Package llm is the gateway to chat-completion providers. Providers are
// tried in configuration order and the first usable answer wins.
package llm

import (
	"context"
	"encoding/json"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn of a conversation. ToolCalls is set on assistant
// turns that requested tools; ToolCallID is set on tool-result turns.
// ImageDataURL attaches an inline image to a user turn.
type Message struct {
	Role         Role
	Content      string
	ToolCalls    []ToolCall
	ToolCallID   string
	ImageDataURL string
}

// ToolCall is one tool invocation requested by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Tool describes a callable tool in provider-neutral form. InputSchema is
// a JSON Schema object.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]interface{}
}

// Request is a single chat completion request.
type Request struct {
	System      string
	Messages    []Message
	Tools       []Tool
	MaxTokens   int
	Temperature float64
}

// Response is the model's answer: text, tool calls, or both.
type Response struct {
	Content   string
	ToolCalls []ToolCall
	Model     string
}

// Provider is one backing chat-completion API.
type Provider interface {
	Name() string
	IsConfigured() bool
	Chat(ctx context.Context, req *Request) (*Response, error)
}
