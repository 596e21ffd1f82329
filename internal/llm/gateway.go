package llm

import (
	"context"
	"errors"
	"time"

	"github.com/arthamitra/arthamitra-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

const defaultChatTimeout = 45 * time.Second

// Gateway fans a request across the configured providers in order,
// returning the first success. Providers without credentials are skipped.
type Gateway struct {
	providers []Provider
	timeout   time.Duration
}

// NewGateway creates a gateway over the given providers. Order matters:
// the first configured provider is the primary.
func NewGateway(providers ...Provider) *Gateway {
	return &Gateway{providers: providers, timeout: defaultChatTimeout}
}

// IsConfigured reports whether at least one provider has credentials.
func (g *Gateway) IsConfigured() bool {
	for _, p := range g.providers {
		if p.IsConfigured() {
			return true
		}
	}
	return false
}

// Chat sends the request to the first configured provider, falling back
// down the chain on error. Returns domain.ErrNotConfigured when no
// provider has credentials.
func (g *Gateway) Chat(ctx context.Context, req *Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var lastErr error
	for _, p := range g.providers {
		if !p.IsConfigured() {
			continue
		}
		resp, err := p.Chat(ctx, req)
		if err == nil {
			return resp, nil
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		log.Warn().Err(err).Str("provider", p.Name()).Msg("LLM provider failed, trying next")
		lastErr = err
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, domain.ErrNotConfigured
}
