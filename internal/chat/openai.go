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
	openaiBaseURL      = "https://api.openai.com"
	openaiDefaultModel = "gpt-3.5-turbo"
)

// Compile-time interface guard.
var _ llm.Provider = (*openaiProvider)(nil)

// openaiProvider adapts relay requests to the OpenAI chat completions API.
// All messages pass through unchanged, including system messages in-band.
type openaiProvider struct {
	client  *http.Client
	baseURL string
}

func newOpenAIProvider(client *http.Client, baseURL string) *openaiProvider {
	if baseURL == "" {
		baseURL = openaiBaseURL
	}
	return &openaiProvider{client: client, baseURL: baseURL}
}

func (p *openaiProvider) Name() string { return llm.ProviderOpenAI }

func (p *openaiProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	model := req.Model
	if model == "" {
		model = openaiDefaultModel
	}

	apiMessages := make([]openaiMessage, len(req.Messages))
	for i, m := range req.Messages {
		apiMessages[i] = openaiMessage{Role: m.Role, Content: m.Content}
	}

	body, err := json.Marshal(openaiRequest{
		Model:       model,
		Messages:    apiMessages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "OpenAI API error", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "OpenAI API error", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.APIKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "OpenAI API error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, parseOpenAIError(resp.Body), nil)
	}

	var out openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "OpenAI API error", err)
	}
	if len(out.Choices) == 0 {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "OpenAI API error: empty choices", nil)
	}

	return out.Choices[0].Message.Content, nil
}

// parseOpenAIError extracts the provider's error message from its JSON
// envelope, falling back to a generic message when unparseable.
func parseOpenAIError(body io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil || json.Unmarshal(data, &envelope) != nil || envelope.Error.Message == "" {
		return "OpenAI API error"
	}
	return envelope.Error.Message
}

// --- OpenAI REST API types (internal) ---

type openaiRequest struct {
	Model       string          `json:"model"`
	Messages    []openaiMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens"`
	Temperature float64         `json:"temperature"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}
