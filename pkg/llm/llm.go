// Package llm provides the public SDK types for the AI chat relay.
// Each upstream service (OpenAI, Anthropic, Google, caller-supplied custom
// endpoints) implements the Provider interface. Implementations live in
// internal/chat adapters.
package llm

import "context"

// Provider is implemented by one adapter per upstream chat-completion
// service. Complete transforms the provider-agnostic request into the
// upstream wire format, issues exactly one HTTP call, and returns the
// extracted reply text.
type Provider interface {
	// Name returns the provider selector value ("openai", "anthropic", ...).
	Name() string

	// Complete performs a single chat completion. Failures are returned
	// as *RelayError values; no retries are attempted.
	Complete(ctx context.Context, req Request) (string, error)
}

// Defaults for generation parameters the client omitted. The HTTP handler
// applies them; a value of zero supplied explicitly is a valid setting and
// is passed through unchanged.
const (
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
)

// Request is the provider-agnostic chat request handed to an adapter.
// Callers set MaxTokens and Temperature before dispatch; the relay does not
// rewrite them.
type Request struct {
	Messages    []Message
	Model       string  // Empty selects the adapter's default model.
	APIKey      string  // Opaque bearer credential. Never logged or echoed.
	MaxTokens   int     // Token cap sent to the upstream service.
	Temperature float64 // In [0, 1]; zero is a valid setting.
	Endpoint    string  // Custom provider only: caller-supplied URL.
}
