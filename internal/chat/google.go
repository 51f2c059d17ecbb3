package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/admybrand/pulseboard/pkg/llm"
)

const (
	googleBaseURL      = "https://generativelanguage.googleapis.com"
	googleDefaultModel = "gemini-pro"

	// The generateContent call uses a fixed output budget, not the
	// caller's maxTokens.
	googleMaxOutputTokens = 1000
)

// Compile-time interface guard.
var _ llm.Provider = (*googleProvider)(nil)

// googleProvider adapts relay requests to the Google generateContent API.
// System messages are dropped entirely (no equivalent field is used),
// assistant maps to "model", and everything else maps to "user".
type googleProvider struct {
	client  *http.Client
	baseURL string
}

func newGoogleProvider(client *http.Client, baseURL string) *googleProvider {
	if baseURL == "" {
		baseURL = googleBaseURL
	}
	return &googleProvider{client: client, baseURL: baseURL}
}

func (p *googleProvider) Name() string { return llm.ProviderGoogle }

func (p *googleProvider) Complete(ctx context.Context, req llm.Request) (string, error) {
	model := req.Model
	if model == "" {
		model = googleDefaultModel
	}

	contents := make([]googleContent, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == llm.RoleSystem {
			continue
		}
		role := "user"
		if m.Role == llm.RoleAssistant {
			role = "model"
		}
		contents = append(contents, googleContent{
			Role:  role,
			Parts: []googlePart{{Text: m.Content}},
		})
	}

	body, err := json.Marshal(googleRequest{
		Contents: contents,
		GenerationConfig: googleGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: googleMaxOutputTokens,
		},
	})
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Google API error", err)
	}

	// The API key travels as a query parameter, not a header.
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		p.baseURL, model, url.QueryEscape(req.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Google API error", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Google API error", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, parseGoogleError(resp.Body), nil)
	}

	var out googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Google API error", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", llm.NewRelayError(llm.ErrCodeUpstream, "Google API error: empty candidates", nil)
	}

	return out.Candidates[0].Content.Parts[0].Text, nil
}

// parseGoogleError extracts the provider's error message from its JSON
// envelope, falling back to a generic message when unparseable.
func parseGoogleError(body io.Reader) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(body, 1<<16))
	if err != nil || json.Unmarshal(data, &envelope) != nil || envelope.Error.Message == "" {
		return "Google API error"
	}
	return envelope.Error.Message
}

// --- Google generateContent API types (internal) ---

type googleRequest struct {
	Contents         []googleContent        `json:"contents"`
	GenerationConfig googleGenerationConfig `json:"generationConfig"`
}

type googleContent struct {
	Role  string       `json:"role"`
	Parts []googlePart `json:"parts"`
}

type googlePart struct {
	Text string `json:"text"`
}

type googleGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type googleResponse struct {
	Candidates []struct {
		Content struct {
			Parts []googlePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
