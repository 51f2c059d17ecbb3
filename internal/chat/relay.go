// Package chat implements the multi-provider AI chat relay: a stateless
// endpoint that normalizes a provider-agnostic conversation into the wire
// format of one of four upstream services and translates the reply back
// into a common message type.
package chat

import (
	"context"
	"sort"

	"github.com/admybrand/pulseboard/pkg/llm"
)

// Relay validates provider-agnostic chat requests and dispatches them to the
// registered provider adapters. It holds no per-request state and is safe
// for concurrent use.
type Relay struct {
	providers map[string]llm.Provider
}

// NewRelay creates a relay over the given adapters.
// Add new providers by registering another adapter, not by editing Send.
func NewRelay(providers ...llm.Provider) *Relay {
	r := &Relay{providers: make(map[string]llm.Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

// Providers returns the registered provider names, sorted.
func (r *Relay) Providers() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Send validates the request, dispatches to the selected provider, and wraps
// the reply text into a freshly minted assistant message. All failures are
// *llm.RelayError values; the relay never retries and has no side effects
// beyond the single outbound call. Generation parameters are passed through
// untouched: defaulting for omitted fields happens in the HTTP handler, so
// an explicit zero temperature reaches the adapter as zero.
func (r *Relay) Send(ctx context.Context, provider string, req llm.Request) (*llm.Message, error) {
	if req.APIKey == "" {
		return nil, llm.NewRelayError(llm.ErrCodeMissingCredential, "API key is required", nil)
	}
	if len(req.Messages) == 0 {
		return nil, llm.NewRelayError(llm.ErrCodeEmptyHistory, "Messages are required", nil)
	}

	p, ok := r.providers[provider]
	if !ok {
		return nil, llm.NewRelayError(llm.ErrCodeUnsupportedProvider, "Unsupported provider", nil)
	}
	if provider == llm.ProviderCustom && req.Endpoint == "" {
		return nil, llm.NewRelayError(llm.ErrCodeMissingEndpoint, "Custom endpoint required for custom provider", nil)
	}

	content, err := p.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	msg := llm.NewAssistantMessage(content)
	return &msg, nil
}
