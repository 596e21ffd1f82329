// Package docintel calls the hosted document-intelligence service for
// statement text extraction. The flow is upload-then-poll: submit the PDF,
// poll the job until it completes or the 60s budget runs out.
package docintel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

const (
	pollInterval = 2 * time.Second
	maxPolls     = 30
)

// Client implements extract.DocumentIntelligence.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a document-intelligence client. An empty apiKey
// leaves it unconfigured; the extractor then skips this strategy.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) IsConfigured() bool { return c.apiKey != "" && c.baseURL != "" }

type submitResponse struct {
	JobID string `json:"job_id"`
}

type jobResponse struct {
	Status string `json:"status"` // pending | processing | completed | failed
	Text   string `json:"text"`
	Error  string `json:"error,omitempty"`
}

// ExtractText submits the PDF and polls for the extracted text.
func (c *Client) ExtractText(ctx context.Context, pdfBytes []byte) (string, error) {
	if !c.IsConfigured() {
		return "", domain.ErrNotConfigured
	}

	jobID, err := c.submit(ctx, pdfBytes)
	if err != nil {
		return "", err
	}
	log.Debug().Str("job_id", jobID).Msg("Document intelligence job submitted")

	for i := 0; i < maxPolls; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(pollInterval):
		}

		job, err := c.poll(ctx, jobID)
		if err != nil {
			return "", err
		}
		switch job.Status {
		case "completed":
			return job.Text, nil
		case "failed":
			return "", fmt.Errorf("docintel: job failed: %s", job.Error)
		}
	}
	return "", fmt.Errorf("docintel: job %s timed out", jobID)
}

func (c *Client) submit(ctx context.Context, pdfBytes []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract", bytes.NewReader(pdfBytes))
	if err != nil {
		return "", fmt.Errorf("docintel: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("docintel: submit: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("docintel: reading submit response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("docintel: submit status %d", resp.StatusCode)
	}

	var parsed submitResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("docintel: decoding submit response: %w", err)
	}
	if parsed.JobID == "" {
		return "", fmt.Errorf("docintel: empty job id")
	}
	return parsed.JobID, nil
}

func (c *Client) poll(ctx context.Context, jobID string) (*jobResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/jobs/"+jobID, nil)
	if err != nil {
		return nil, fmt.Errorf("docintel: creating poll request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docintel: poll: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("docintel: reading poll response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("docintel: poll status %d", resp.StatusCode)
	}

	var parsed jobResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("docintel: decoding poll response: %w", err)
	}
	return &parsed, nil
}
