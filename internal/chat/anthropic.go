package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/admybrand/pulseboard/pkg/llm"
)

const (
	anthropicBaseURL      = "https://api.anthropic.com"
	anthropicVersion      = "2023-06-01"
	anthropicDefaultModel = "claude-3-haiku-20240307"

	// Used when the history carries no system message.
	anthropicDefaultSystem = "You are a helpful AI assistant."
)

// Compile-time interface guard.
var _ llm.Provider = (*anthropicProvider)(nil)

// anthropicProvider adapts relay requests to the Anthropic Messages API.
// The first system message becomes the dedicated system field; system
// messages are filtered from the main list, and every non-assistant role
// maps to "user". The Messages API takes no temperature from this adapter.
type anthropicProvider struct {
	client  *http.Client
	baseURL string
}

func newAnthropicProvider(client *http.Client, baseURL string) *anthropicProvider {
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &anthropicProvider{client: client, baseURL: baseURL}
}

func (p *anthropicProvider) Name() string { return llm.ProviderAnthropic }

func (p *anthropicProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	model := req.Model
	if model == "" {
		model = anthropicDefaultModel
	}

	system := anthropicDefaultSystem
	apiMessages := make([]anthropicMessage, 0, len(req.Messages))
	systemSeen := false
	for _, m := range req.Messages {
		if m.Role == llm.RoleSystem {
			if !systemSeen {
				system = m.Content
				systemSeen = true
			}
			continue
		}
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "assistant"
		}
		apiMessages = append(apiMessages, anthropicMessage{Role: role, Content: m.Content})
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     model,
		MaxTokens: req.MaxTokens,
		System:    system,
		Messages:  apiMessages,
	})
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Anthropic API error", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Anthropic API error", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", req.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Anthropic API error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, parseAnthropicError(resp.Body), nil)
	}

	var out anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Anthropic API error", err)
	}
	if len(out.Content) == 0 {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Anthropic API error: empty content", nil)
	}

	return out.Content[0].Text, nil
}

// parseAnthropicError extracts the provider's error message from its JSON
// envelope, falling back to a generic message when unparseable.
func parseAnthropicError(body io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil || json.Unmarshal(data, &envelope) != nil || envelope.Error.Message == "" {
		return "Anthropic API error"
	}
	return envelope.Error.Message
}

// --- Anthropic Messages API types (internal) ---

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}
