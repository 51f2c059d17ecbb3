package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/admybrand/pulseboard/pkg/llm"
	"go.uber.org/zap"
)

// ChatRequest is the request body for POST /chat.
// MaxTokens and Temperature are pointers so that an omitted field is
// distinguishable from an explicit zero.
type ChatRequest struct {
	Messages       []llm.Message `json:"messages"`
	Provider       string        `json:"provider" example:"openai"`
	Model          string        `json:"model,omitempty" example:"gpt-3.5-turbo"`
	APIKey         string        `json:"apiKey"`
	MaxTokens      *int          `json:"maxTokens,omitempty" example:"1000"`
	Temperature    *float64      `json:"temperature,omitempty" example:"0.7"`
	CustomEndpoint string        `json:"customEndpoint,omitempty"`
}

// ChatResponse is the success envelope for POST /chat.
type ChatResponse struct {
	Success bool        `json:"success"`
	Message llm.Message `json:"message"`
	Usage   ChatUsage   `json:"usage"`
}

// ChatUsage echoes which provider and model served the request.
type ChatUsage struct {
	Provider  string `json:"provider" example:"openai"`
	Model     string `json:"model" example:"gpt-3.5-turbo"`
	Timestamp string `json:"timestamp" example:"2025-07-29T12:00:00Z"`
}

// ErrorResponse is the error envelope for POST /chat.
type ErrorResponse struct {
	Error string `json:"error" example:"API key is required"`
}

// handleChat relays a provider-agnostic conversation to the selected
// upstream provider.
//
//	@Summary		Send chat request
//	@Description	Relays the conversation to the selected AI provider and returns the assistant reply.
//	@Tags			chat
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ChatRequest	true	"Chat request"
//	@Success		200		{object}	ChatResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/chat [post]
func (m *Module) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeChatError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	relayReq := llm.Request{
		Messages:    req.Messages,
		Model:       req.Model,
		APIKey:      req.APIKey,
		MaxTokens:   llm.DefaultMaxTokens,
		Temperature: llm.DefaultTemperature,
		Endpoint:    req.CustomEndpoint,
	}
	if req.MaxTokens != nil {
		relayReq.MaxTokens = *req.MaxTokens
	}
	if req.Temperature != nil {
		relayReq.Temperature = *req.Temperature
	}
	// The original API also accepted the custom endpoint as a query parameter.
	if relayReq.Endpoint == "" {
		relayReq.Endpoint = r.URL.Query().Get("endpoint")
	}

	msg, err := m.relay.Send(r.Context(), req.Provider, relayReq)
	m.recordOutcome(req.Provider, err)
	if err != nil {
		status := http.StatusInternalServerError
		if llm.IsUserCorrectable(err) {
			status = http.StatusBadRequest
		}
		m.logger.Warn("chat relay failed",
			zap.String("provider", req.Provider),
			zap.Int("status", status),
			zap.Error(err),
		)
		writeChatError(w, status, err.Error())
		return
	}

	model := req.Model
	if model == "" {
		model = "default"
	}
	m.publishCompleted(r.Context(), req.Provider, model)

	writeChatJSON(w, http.StatusOK, ChatResponse{
		Success: true,
		Message: *msg,
		Usage: ChatUsage{
			Provider:  req.Provider,
			Model:     model,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// DescribeResponse is the response for GET /chat.
type DescribeResponse struct {
	Message            string         `json:"message" example:"AI Chat API"`
	SupportedProviders []string       `json:"supportedProviders"`
	Endpoints          map[string]any `json:"endpoints"`
}

// handleDescribe returns the relay's static capability description.
//
//	@Summary		Describe chat API
//	@Description	Returns supported providers and an example request body. No side effects.
//	@Tags			chat
//	@Produce		json
//	@Success		200	{object}	DescribeResponse
//	@Router			/chat [get]
func (m *Module) handleDescribe(w http.ResponseWriter, _ *http.Request) {
	writeChatJSON(w, http.StatusOK, DescribeResponse{
		Message: "AI Chat API",
		SupportedProviders: []string{
			llm.ProviderOpenAI,
			llm.ProviderAnthropic,
			llm.ProviderGoogle,
			llm.ProviderCustom,
		},
		Endpoints: map[string]any{
			"chat": "POST /api/v1/chat",
			"example": map[string]any{
				"messages": []map[string]string{
					{"role": "user", "content": "Hello!"},
				},
				"provider": "openai",
				"apiKey":   "your-api-key",
				"model":    "gpt-3.5-turbo",
			},
		},
	})
}

func writeChatJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeChatError(w http.ResponseWriter, status int, message string) {
	writeChatJSON(w, status, ErrorResponse{Error: message})
}
