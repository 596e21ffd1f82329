// Package gov validates Indian business identifiers (PAN, GSTIN, ITR
// acknowledgements) and, when an API key is configured, verifies them
// against the MSME gateway.
package gov

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
)

var (
	panRe = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	// GSTIN: 2-digit state code, PAN, entity digit, Z, check character.
	gstinRe = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
	itrRe   = regexp.MustCompile(`^[0-9]{15}$`)
)

// VerificationResult is the outcome of a document check.
type VerificationResult struct {
	DocumentType string `json:"document_type"`
	Value        string `json:"value"`
	FormatValid  bool   `json:"format_valid"`
	Verified     bool   `json:"verified"`
	Detail       string `json:"detail,omitempty"`
}

// Client checks identifier formats locally and calls the gateway for
// registry verification when configured.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a verification client. An empty apiKey limits it to
// offline format checks.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.msme.gov.in/v1"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) IsConfigured() bool { return c.apiKey != "" }

// VerifyPAN checks the PAN format and registry status.
func (c *Client) VerifyPAN(ctx context.Context, pan string) (*VerificationResult, error) {
	pan = strings.ToUpper(strings.TrimSpace(pan))
	res := &VerificationResult{DocumentType: "pan", Value: pan, FormatValid: panRe.MatchString(pan)}
	if !res.FormatValid {
		res.Detail = "PAN must match AAAAA9999A"
		return res, nil
	}
	return c.verifyRemote(ctx, res, "/verify/pan", map[string]string{"pan": pan})
}

// VerifyGSTIN checks the GSTIN format (including the embedded PAN) and
// registry status.
func (c *Client) VerifyGSTIN(ctx context.Context, gstin string) (*VerificationResult, error) {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	res := &VerificationResult{DocumentType: "gstin", Value: gstin, FormatValid: len(gstin) == 15 && gstinRe.MatchString(gstin)}
	if !res.FormatValid {
		res.Detail = "GSTIN must be 15 characters: state code + PAN + entity + Z + check digit"
		return res, nil
	}
	return c.verifyRemote(ctx, res, "/verify/gstin", map[string]string{"gstin": gstin})
}

// VerifyITR checks an ITR acknowledgement number.
func (c *Client) VerifyITR(ctx context.Context, ack string) (*VerificationResult, error) {
	ack = strings.TrimSpace(ack)
	res := &VerificationResult{DocumentType: "itr", Value: ack, FormatValid: itrRe.MatchString(ack)}
	if !res.FormatValid {
		res.Detail = "ITR acknowledgement must be 15 digits"
		return res, nil
	}
	return c.verifyRemote(ctx, res, "/verify/itr", map[string]string{"acknowledgement": ack})
}

type remoteVerifyResponse struct {
	Valid  bool   `json:"valid"`
	Status string `json:"status"`
}

func (c *Client) verifyRemote(ctx context.Context, res *VerificationResult, path string, payload map[string]string) (*VerificationResult, error) {
	if !c.IsConfigured() {
		res.Detail = "format check only; registry verification not configured"
		return res, domain.ErrNotConfigured
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("gov: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gov: request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gov: reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gov: status %d", resp.StatusCode)
	}

	var parsed remoteVerifyResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("gov: decoding response: %w", err)
	}
	res.Verified = parsed.Valid
	res.Detail = parsed.Status
	return res, nil
}
