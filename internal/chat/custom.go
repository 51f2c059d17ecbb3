package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/admybrand/pulseboard/pkg/llm"
)

// Compile-time interface guard.
var _ llm.Provider = (*customProvider)(nil)

// customProvider forwards the conversation verbatim to a caller-supplied
// endpoint with bearer auth. No system-message special-casing; the reply is
// read from the first present of the response, content, or message fields.
type customProvider struct {
	client *http.Client
}

func newCustomProvider(client *http.Client) *customProvider {
	return &customProvider{client: client}
}

func (p *customProvider) Name() string { return llm.ProviderCustom }

func (p *customProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	apiMessages := make([]customMessage, len(req.Messages))
	for i, m := range req.Messages {
		apiMessages[i] = customMessage{Role: m.Role, Content: m.Content}
	}

	body, err := json.Marshal(customRequest{Messages: apiMessages})
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Custom API error", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Custom API error", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Custom API error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Custom API error", nil)
	}

	var out customResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Custom API error", err)
	}

	for _, field := range []string{out.Response, out.Content, out.Message} {
		if field != "" {
			return field, nil
		}
	}
	return "", llm.NewRelayError(llm.ErrCodeUpstream, "Custom API error: no reply field", nil)
}

// --- Custom endpoint wire types (internal) ---

type customRequest struct {
	Messages []customMessage `json:"messages"`
}

type customMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type customResponse struct {
	Response string `json:"response"`
	Content  string `json:"content"`
	Message  string `json:"message"`
}
