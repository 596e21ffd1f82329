package tools

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/arthamitra/arthamitra-backend/internal/gov"
	"github.com/arthamitra/arthamitra-backend/internal/knowledge"
)

// KnowledgeTools returns the side-effect-free lookup tools over the static
// knowledge base and the government registries.
func KnowledgeTools(kb *knowledge.Service, govClient *gov.Client) []*Tool {
	return []*Tool{
		{
			Name:        "get_tax_info",
			Description: "Look up Indian tax rules (slabs, 80C, GST, TDS) in the knowledge base.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"topic": StringProperty("Tax topic to look up, e.g. '80C deduction limit'"),
			}, "topic"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Topic string `json:"topic"`
				}
				if err := json.Unmarshal(input, &p); err != nil || p.Topic == "" {
					return Fail("get_tax_info", "topic is required")
				}
				hits, err := kb.Search(ctx, p.Topic, 2)
				if err != nil {
					return Fail("get_tax_info", err.Error())
				}
				if len(hits) == 0 {
					return &Result{Success: true, Action: "get_tax_info", Message: "no knowledge base entry for this topic", RequiresData: true}
				}
				return &Result{Success: true, Action: "get_tax_info", Data: hits}
			},
		},
		{
			Name:        "static_kb_search",
			Description: "Search the curated personal-finance knowledge base for Indian users.",
			InputSchema: ObjectSchema(map[string]interface{}{
				"query": StringProperty("What to look up"),
				"top_k": IntegerProperty("Number of results, default 3"),
			}, "query"),
			Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
				var p struct {
					Query string `json:"query"`
					TopK  int    `json:"top_k"`
				}
				if err := json.Unmarshal(input, &p); err != nil || p.Query == "" {
					return Fail("static_kb_search", "query is required")
				}
				hits, err := kb.Search(ctx, p.Query, p.TopK)
				if err != nil {
					return Fail("static_kb_search", err.Error())
				}
				return &Result{Success: true, Action: "static_kb_search", Data: hits}
			},
		},
		govVerifyTool("gov_verify_pan", "Validate a PAN (Permanent Account Number) format and, when configured, verify it against the registry.", "pan", govClient.VerifyPAN),
		govVerifyTool("gov_verify_gstin", "Validate a GSTIN format and, when configured, verify the registration.", "gstin", govClient.VerifyGSTIN),
		govVerifyTool("gov_verify_itr", "Validate an ITR acknowledgement number and, when configured, verify the filing.", "itr", govClient.VerifyITR),
	}
}

func govVerifyTool(name, description, field string, verify func(ctx context.Context, value string) (*gov.VerificationResult, error)) *Tool {
	return &Tool{
		Name:        name,
		Description: description,
		InputSchema: ObjectSchema(map[string]interface{}{
			field: StringProperty("The identifier to verify"),
		}, field),
		Handler: func(ctx context.Context, userID string, input json.RawMessage) *Result {
			var params map[string]string
			if err := json.Unmarshal(input, &params); err != nil || params[field] == "" {
				return Fail(name, field+" is required")
			}
			res, err := verify(ctx, params[field])
			// Format-only validation is still a useful answer when the
			// registry client is not configured.
			if err != nil && !errors.Is(err, domain.ErrNotConfigured) {
				return Fail(name, err.Error())
			}
			return &Result{Success: true, Action: name, Data: res, Message: res.Detail}
		},
	}
}
