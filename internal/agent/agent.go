// Package agent implements the query router and the bounded tool-calling
// loop that answers natural-language finance queries.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/agent/tools"
	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/knowledge"
	"github.com/arthamitra/arthamitra-backend/internal/llm"
	"github.com/arthamitra/arthamitra-backend/internal/search"
	"github.com/arthamitra/arthamitra-backend/internal/util"
	"github.com/rs/zerolog/log"
)

const (
	// maxIterations bounds the tool loop; with the final classification
	// call the agent never makes more than maxIterations+1 LLM calls.
	maxIterations = 5

	// toolResultLimit trims serialized tool results before they are fed
	// back to the model.
	toolResultLimit = 1000
)

var prepareToolNames = []string{
	"create_budget", "create_savings_goal", "schedule_payment", "add_transaction",
}

const fallbackResponse = "I could not reach the language model right now. " +
	"Your data is safe; please try again in a moment, or use the calculators " +
	"and dashboards directly."

const systemPromptBase = "You are ArthaMitra, a personal finance assistant for Indian users. " +
	"Amounts are in Indian rupees. Be concise and practical. Use the available tools " +
	"for calculations and account actions instead of doing arithmetic yourself. " +
	"Never invent transaction data."

// HistoryMessage is one prior conversation turn supplied by the client.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the input to one agent run.
type ChatRequest struct {
	UserID      string
	Query       string
	UserContext string
	History     []HistoryMessage
}

// ChatResponse is the agent's answer plus any prepared action.
type ChatResponse struct {
	Response          string                 `json:"response"`
	ActionTaken       bool                   `json:"action_taken"`
	ActionType        string                 `json:"action_type,omitempty"`
	ActionData        map[string]interface{} `json:"action_data,omitempty"`
	NeedsConfirmation bool                   `json:"needs_confirmation"`
	UserID            string                 `json:"user_id"`
	QueryType         string                 `json:"query_type"`
	ModelUsed         string                 `json:"model_used,omitempty"`
	Sources           []string               `json:"sources"`
}

// Agent drives the router and the tool loop.
type Agent struct {
	gw       *llm.Gateway
	registry *tools.Registry
	actions  *tools.ActionStore
	kb       *knowledge.Service
	search   *search.Client
	ledger   domain.LedgerRepository
}

// New creates an agent over its collaborators.
func New(gw *llm.Gateway, registry *tools.Registry, actions *tools.ActionStore, kb *knowledge.Service, searchClient *search.Client, ledger domain.LedgerRepository) *Agent {
	return &Agent{
		gw:       gw,
		registry: registry,
		actions:  actions,
		kb:       kb,
		search:   searchClient,
		ledger:   ledger,
	}
}

// Chat classifies the query and runs the strategy for its label.
func (a *Agent) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	label, cfg := Classify(req.Query, req.UserContext)
	log.Debug().Str("user_id", req.UserID).Str("label", string(label)).Msg("Query routed")

	resp := &ChatResponse{
		UserID:    req.UserID,
		QueryType: string(label),
		Sources:   []string{},
	}

	switch label {
	case LabelGovAPI:
		return a.runGovVerify(ctx, req, resp)
	case LabelStaticKB:
		if done := a.tryKnowledge(ctx, req, resp); done {
			return resp, nil
		}
		// No confident hit; fall through to the full tool path.
		return a.runToolLoop(ctx, req, resp, cfg, a.registry.Definitions())
	case LabelWebSearch:
		return a.runWebSearch(ctx, req, resp)
	case LabelHeavyReasoning:
		return a.runHeavyReasoning(ctx, req, resp, cfg)
	case LabelTransaction:
		names := append(append([]string{}, prepareToolNames...), tools.CalculatorToolNames()...)
		return a.runToolLoop(ctx, req, resp, cfg, a.registry.Definitions(names...))
	default:
		return a.runToolLoop(ctx, req, resp, cfg, a.registry.Definitions())
	}
}

// ConfirmAction commits a prepared action.
func (a *Agent) ConfirmAction(ctx context.Context, userID, actionID string) (*tools.PendingAction, error) {
	return a.actions.Confirm(ctx, userID, actionID)
}

// CancelAction drops a prepared action without committing it.
func (a *Agent) CancelAction(userID, actionID string) error {
	return a.actions.Cancel(userID, actionID)
}

// runToolLoop is the bounded ReAct cycle: LLM call, tool dispatch, repeat
// until the model answers without tools or the bound is hit.
func (a *Agent) runToolLoop(ctx context.Context, req *ChatRequest, resp *ChatResponse, cfg RouteConfig, toolDefs []llm.Tool) (*ChatResponse, error) {
	msgs := a.buildMessages(ctx, req)

	var lastContent string
	var lastToolResult *tools.Result

	for i := 0; i < maxIterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		llmResp, err := a.gw.Chat(ctx, &llm.Request{
			System:    a.systemPrompt(ctx, req),
			Messages:  msgs,
			Tools:     toolDefs,
			MaxTokens: cfg.MaxTokens,
		})
		if err != nil {
			log.Warn().Err(err).Msg("Agent loop falling back to canned response")
			resp.Response = fallbackResponse
			return resp, nil
		}
		resp.ModelUsed = llmResp.Model

		if len(llmResp.ToolCalls) == 0 {
			resp.Response = cleanFinalAnswer(llmResp.Content)
			return resp, nil
		}
		lastContent = llmResp.Content

		msgs = append(msgs, llm.Message{
			Role:      llm.RoleAssistant,
			Content:   llmResp.Content,
			ToolCalls: llmResp.ToolCalls,
		})

		var iterationAction *tools.Result
		for _, tc := range llmResp.ToolCalls {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			result := a.registry.Dispatch(ctx, req.UserID, tc.Name, tc.Arguments)
			msgs = append(msgs, llm.Message{
				Role:       llm.RoleTool,
				ToolCallID: tc.ID,
				Content:    serializeResult(result),
			})
			lastToolResult = result
			if result.NeedsConfirmation {
				iterationAction = result
			}
		}

		// A prepared action with a confirmation message is a complete
		// answer; no further model turns are needed.
		if iterationAction != nil && iterationAction.Message != "" {
			applyAction(resp, iterationAction)
			resp.Response = iterationAction.Message
			return resp, nil
		}
	}

	// Bound exhausted: answer with what we have.
	switch {
	case lastContent != "":
		resp.Response = cleanFinalAnswer(lastContent)
	case lastToolResult != nil && lastToolResult.Message != "":
		resp.Response = lastToolResult.Message
	case lastToolResult != nil:
		resp.Response = "Here is what I found: " + serializeResult(lastToolResult)
	default:
		resp.Response = fallbackResponse
	}
	if lastToolResult != nil && lastToolResult.NeedsConfirmation {
		applyAction(resp, lastToolResult)
	}
	return resp, nil
}

// tryKnowledge answers from the static knowledge base. Returns false when
// no hit is confident enough.
func (a *Agent) tryKnowledge(ctx context.Context, req *ChatRequest, resp *ChatResponse) bool {
	hits, err := a.kb.Search(ctx, req.Query, 1)
	if err != nil || len(hits) == 0 {
		return false
	}
	top := hits[0]
	resp.Response = top.Document.Content
	resp.Sources = []string{"knowledge_base:" + top.Document.ID}
	return true
}

func (a *Agent) runGovVerify(ctx context.Context, req *ChatRequest, resp *ChatResponse) (*ChatResponse, error) {
	token, kind := ExtractGovToken(req.Query)
	if token == "" {
		resp.Response = "Please share the exact ID you want verified (PAN like ABCDE1234F, or a 15-character GSTIN)."
		return resp, nil
	}

	args, _ := json.Marshal(map[string]string{kind: token})
	result := a.registry.Dispatch(ctx, req.UserID, "gov_verify_"+kind, args)
	if !result.Success {
		resp.Response = "Verification failed: " + result.Error
		return resp, nil
	}

	resp.Sources = []string{"gov_registry"}
	if result.Message != "" {
		resp.Response = fmt.Sprintf("%s %s: %s", strings.ToUpper(kind), token, result.Message)
	} else {
		resp.Response = fmt.Sprintf("%s %s checked: %s", strings.ToUpper(kind), token, serializeResult(result))
	}
	return resp, nil
}

func (a *Agent) runWebSearch(ctx context.Context, req *ChatRequest, resp *ChatResponse) (*ChatResponse, error) {
	results, err := a.search.Search(ctx, "general", req.Query)
	if err != nil || len(results) == 0 {
		// Search unavailable: degrade to a plain model answer.
		return a.runToolLoop(ctx, req, resp, routeConfigs[LabelSimple], nil)
	}

	var b strings.Builder
	b.WriteString("Here is what I found:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s — %s (%s)\n", i+1, r.Title, r.Snippet, r.URL)
		resp.Sources = append(resp.Sources, r.URL)
	}
	resp.Response = b.String()
	return resp, nil
}

func (a *Agent) runHeavyReasoning(ctx context.Context, req *ChatRequest, resp *ChatResponse, cfg RouteConfig) (*ChatResponse, error) {
	system := a.systemPrompt(ctx, req)
	if hits, err := a.kb.Search(ctx, req.Query, 2); err == nil {
		for _, h := range hits {
			system += "\n\nReference material (" + h.Document.Title + "): " + h.Document.Content
			resp.Sources = append(resp.Sources, "knowledge_base:"+h.Document.ID)
		}
	}

	llmResp, err := a.gw.Chat(ctx, &llm.Request{
		System:    system,
		Messages:  a.buildMessages(ctx, req),
		MaxTokens: cfg.MaxTokens,
	})
	if err != nil {
		resp.Response = fallbackResponse
		return resp, nil
	}
	resp.Response = cleanFinalAnswer(llmResp.Content)
	resp.ModelUsed = llmResp.Model
	return resp, nil
}

func (a *Agent) buildMessages(_ context.Context, req *ChatRequest) []llm.Message {
	msgs := make([]llm.Message, 0, len(req.History)+1)
	for _, h := range req.History {
		role := llm.RoleUser
		if h.Role == "assistant" {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: h.Content})
	}
	return append(msgs, llm.Message{Role: llm.RoleUser, Content: req.Query})
}

// systemPrompt folds the caller-supplied context and a 30-day spending
// snapshot into the base prompt.
func (a *Agent) systemPrompt(ctx context.Context, req *ChatRequest) string {
	prompt := systemPromptBase
	if req.UserContext != "" {
		prompt += "\n\nUser context: " + req.UserContext
	}
	if a.ledger != nil && req.UserID != "" {
		end := time.Now()
		start := end.AddDate(0, 0, -30)
		if summary, err := a.ledger.GetSpendingSummary(ctx, req.UserID, util.FormatDate(start), util.FormatDate(end)); err == nil {
			prompt += fmt.Sprintf(
				"\n\nLast 30 days: income ₹%s, expenses ₹%s, savings rate %.0f%%.",
				summary.TotalIncome.StringFixed(0), summary.TotalExpenses.StringFixed(0), summary.SavingsRate)
		}
	}
	return prompt
}

func applyAction(resp *ChatResponse, result *tools.Result) {
	resp.ActionTaken = true
	resp.ActionType = result.Action
	resp.NeedsConfirmation = true
	if data, ok := result.Data.(map[string]interface{}); ok {
		resp.ActionData = data
	}
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*\\{.*?\\}\\s*```")
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
	preambleRes  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*final answer\s*[:,]?\s*`),
		regexp.MustCompile(`(?i)^\s*here is the answer\s*[:,]?\s*`),
		regexp.MustCompile(`(?i)^\s*based on the search(?: results)?\s*[:,]?\s*`),
	}
)

// cleanFinalAnswer strips model scaffolding before the text reaches the
// client: fenced JSON blocks, stock preambles, excess blank lines.
func cleanFinalAnswer(s string) string {
	s = fencedJSONRe.ReplaceAllString(s, "")
	for _, re := range preambleRes {
		s = re.ReplaceAllString(s, "")
	}
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// serializeResult renders a tool result as JSON trimmed to the limit the
// model sees.
func serializeResult(r *tools.Result) string {
	raw, err := json.Marshal(r)
	if err != nil {
		return `{"success":false,"error":"unserializable tool result"}`
	}
	s := string(raw)
	if len(s) > toolResultLimit {
		s = s[:toolResultLimit]
	}
	return s
}
