// Package tools holds the named, schema-described functions the agent can
// call: pure calculators, knowledge lookups, two-phase write prepares and
// web search.
package tools

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/arthamitra/arthamitra-backend/internal/llm"
)

// Result is the structured object every tool handler returns. Failures are
// carried in-band; a handler never returns a Go error to the loop.
type Result struct {
	Success           bool        `json:"success"`
	Action            string      `json:"action"`
	Data              interface{} `json:"data,omitempty"`
	Message           string      `json:"message,omitempty"`
	NeedsConfirmation bool        `json:"needs_confirmation"`
	RequiresData      bool        `json:"requires_data,omitempty"`
	Error             string      `json:"error,omitempty"`
}

// Fail builds a failed result for the given action.
func Fail(action, errMsg string) *Result {
	return &Result{Action: action, Error: errMsg}
}

// Handler executes one tool call for a user.
type Handler func(ctx context.Context, userID string, input json.RawMessage) *Result

// Tool is one registered tool.
type Tool struct {
	Name                 string
	Description          string
	InputSchema          map[string]interface{}
	RequiresConfirmation bool
	Handler              Handler
}

// Registry manages the available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(t *Tool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[t.Name] = t
}

// RegisterAll adds multiple tools to the registry.
func (r *Registry) RegisterAll(ts ...*Tool) {
	for _, t := range ts {
		r.Register(t)
	}
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Names returns all registered tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Dispatch runs the named tool. Unknown names come back as a failed
// result so the LLM can recover.
func (r *Registry) Dispatch(ctx context.Context, userID, name string, input json.RawMessage) *Result {
	t, ok := r.Get(name)
	if !ok {
		return Fail(name, "unknown tool: "+name)
	}
	return t.Handler(ctx, userID, input)
}

// Definitions converts registered tools to the gateway format. With no
// names given, all tools are returned.
func (r *Registry) Definitions(names ...string) []llm.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filter map[string]bool
	if len(names) > 0 {
		filter = make(map[string]bool, len(names))
		for _, n := range names {
			filter[n] = true
		}
	}

	out := make([]llm.Tool, 0, len(r.tools))
	for _, t := range r.tools {
		if filter != nil && !filter[t.Name] {
			continue
		}
		out = append(out, llm.Tool{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: t.InputSchema,
		})
	}
	return out
}
