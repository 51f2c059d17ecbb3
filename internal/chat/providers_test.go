package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/admybrand/pulseboard/pkg/llm"
)

// capture records the last upstream request for wire-format assertions.
type capture struct {
	method string
	path   string
	query  string
	header http.Header
	body   map[string]any
}

// newUpstream starts a test server that records requests and replies with
// the given status and JSON body.
func newUpstream(t *testing.T, status int, reply string) (*httptest.Server, *capture) {
	t.Helper()
	rec := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.header = r.Header.Clone()
		rec.body = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&rec.body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func messages(t *testing.T, body map[string]any) []map[string]any {
	t.Helper()
	key := "messages"
	if _, ok := body[key]; !ok {
		key = "contents"
	}
	raw, ok := body[key].([]any)
	if !ok {
		t.Fatalf("body has no %s list: %v", key, body)
	}
	out := make([]map[string]any, len(raw))
	for i, m := range raw {
		out[i] = m.(map[string]any)
	}
	return out
}

func history() []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: "Be terse."},
		{Role: llm.RoleUser, Content: "Hi"},
		{Role: llm.RoleAssistant, Content: "Hello"},
		{Role: llm.RoleUser, Content: "Bye"},
	}
}

func baseRequest() llm.Request {
	return llm.Request{
		APIKey:      "sk-test",
		Messages:    history(),
		MaxTokens:   llm.DefaultMaxTokens,
		Temperature: llm.DefaultTemperature,
	}
}

// -- OpenAI --

func TestOpenAIWireFormat(t *testing.T) {
	srv, rec := newUpstream(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"done"}}]}`)
	p := newOpenAIProvider(srv.Client(), srv.URL)

	got, err := p.Complete(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "done" {
		t.Errorf("reply = %q, want %q", got, "done")
	}

	if rec.path != "/v1/chat/completions" {
		t.Errorf("path = %q, want /v1/chat/completions", rec.path)
	}
	if auth := rec.header.Get("Authorization"); auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want bearer key", auth)
	}
	if rec.body["model"] != "gpt-3.5-turbo" {
		t.Errorf("model = %v, want default gpt-3.5-turbo", rec.body["model"])
	}
	if rec.body["max_tokens"] != float64(1000) {
		t.Errorf("max_tokens = %v, want 1000", rec.body["max_tokens"])
	}
	if rec.body["temperature"] != 0.7 {
		t.Errorf("temperature = %v, want 0.7", rec.body["temperature"])
	}
	// All roles pass through verbatim, system included.
	msgs := messages(t, rec.body)
	if len(msgs) != 4 || msgs[0]["role"] != "system" {
		t.Errorf("messages = %v, want 4 verbatim entries", msgs)
	}
}

func TestOpenAIErrorEnvelope(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusUnauthorized,
		`{"error":{"message":"Incorrect API key provided"}}`)
	p := newOpenAIProvider(srv.Client(), srv.URL)

	_, err := p.Complete(context.Background(), baseRequest())
	var relayErr *llm.RelayError
	if !errors.As(err, &relayErr) {
		t.Fatalf("error %T is not a RelayError", err)
	}
	if relayErr.Code != llm.ErrCodeUpstream {
		t.Errorf("Code = %q, want upstream", relayErr.Code)
	}
	if relayErr.Message != "Incorrect API key provided" {
		t.Errorf("Message = %q, want provider message", relayErr.Message)
	}
}

func TestOpenAIErrorFallback(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusBadGateway, `<html>bad gateway</html>`)
	p := newOpenAIProvider(srv.Client(), srv.URL)

	_, err := p.Complete(context.Background(), baseRequest())
	var relayErr *llm.RelayError
	if !errors.As(err, &relayErr) || relayErr.Message != "OpenAI API error" {
		t.Errorf("error = %v, want generic fallback", err)
	}
}

func TestOpenAIEmptyChoices(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"choices":[]}`)
	p := newOpenAIProvider(srv.Client(), srv.URL)

	if _, err := p.Complete(context.Background(), baseRequest()); err == nil {
		t.Error("Complete() error = nil, want empty-choices error")
	}
}

// -- Anthropic --

func TestAnthropicWireFormat(t *testing.T) {
	srv, rec := newUpstream(t, http.StatusOK,
		`{"content":[{"type":"text","text":"done"}]}`)
	p := newAnthropicProvider(srv.Client(), srv.URL)

	got, err := p.Complete(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "done" {
		t.Errorf("reply = %q, want %q", got, "done")
	}

	if rec.path != "/v1/messages" {
		t.Errorf("path = %q, want /v1/messages", rec.path)
	}
	if key := rec.header.Get("x-api-key"); key != "sk-test" {
		t.Errorf("x-api-key = %q, want sk-test", key)
	}
	if v := rec.header.Get("anthropic-version"); v != "2023-06-01" {
		t.Errorf("anthropic-version = %q, want 2023-06-01", v)
	}
	if rec.body["model"] != "claude-3-haiku-20240307" {
		t.Errorf("model = %v, want default claude-3-haiku-20240307", rec.body["model"])
	}
	// The system message moves into the dedicated field.
	if rec.body["system"] != "Be terse." {
		t.Errorf("system = %v, want extracted system message", rec.body["system"])
	}
	if _, present := rec.body["temperature"]; present {
		t.Error("temperature must not be sent to Anthropic")
	}
	msgs := messages(t, rec.body)
	if len(msgs) != 3 {
		t.Fatalf("messages = %d entries, want 3 (system filtered)", len(msgs))
	}
	if msgs[0]["role"] != "user" || msgs[1]["role"] != "assistant" || msgs[2]["role"] != "user" {
		t.Errorf("roles = %v/%v/%v, want user/assistant/user",
			msgs[0]["role"], msgs[1]["role"], msgs[2]["role"])
	}
}

func TestAnthropicDefaultSystem(t *testing.T) {
	srv, rec := newUpstream(t, http.StatusOK,
		`{"content":[{"type":"text","text":"ok"}]}`)
	p := newAnthropicProvider(srv.Client(), srv.URL)

	req := baseRequest()
	req.Messages = []llm.Message{{Role: llm.RoleUser, Content: "Hi"}}
	if _, err := p.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if rec.body["system"] != "You are a helpful AI assistant." {
		t.Errorf("system = %v, want default prompt", rec.body["system"])
	}
}

func TestAnthropicErrorFallback(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusInternalServerError, `not json`)
	p := newAnthropicProvider(srv.Client(), srv.URL)

	_, err := p.Complete(context.Background(), baseRequest())
	var relayErr *llm.RelayError
	if !errors.As(err, &relayErr) || relayErr.Message != "Anthropic API error" {
		t.Errorf("error = %v, want generic fallback", err)
	}
}

// -- Google --

func TestGoogleWireFormat(t *testing.T) {
	srv, rec := newUpstream(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"done"}]}}]}`)
	p := newGoogleProvider(srv.Client(), srv.URL)

	got, err := p.Complete(context.Background(), baseRequest())
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "done" {
		t.Errorf("reply = %q, want %q", got, "done")
	}

	if rec.path != "/v1beta/models/gemini-pro:generateContent" {
		t.Errorf("path = %q, want generateContent with default model", rec.path)
	}
	// The API key travels in the query string, not a header.
	if rec.query != "key=sk-test" {
		t.Errorf("query = %q, want key=sk-test", rec.query)
	}
	if auth := rec.header.Get("Authorization"); auth != "" {
		t.Errorf("Authorization = %q, want unset", auth)
	}

	// System messages are dropped; assistant maps to model.
	msgs := messages(t, rec.body)
	if len(msgs) != 3 {
		t.Fatalf("contents = %d entries, want 3", len(msgs))
	}
	if msgs[0]["role"] != "user" || msgs[1]["role"] != "model" || msgs[2]["role"] != "user" {
		t.Errorf("roles = %v/%v/%v, want user/model/user",
			msgs[0]["role"], msgs[1]["role"], msgs[2]["role"])
	}
	parts := msgs[0]["parts"].([]any)
	if parts[0].(map[string]any)["text"] != "Hi" {
		t.Errorf("parts = %v, want text wrapper", parts)
	}

	gen := rec.body["generationConfig"].(map[string]any)
	if gen["maxOutputTokens"] != float64(1000) {
		t.Errorf("maxOutputTokens = %v, want fixed 1000", gen["maxOutputTokens"])
	}
	if gen["temperature"] != 0.7 {
		t.Errorf("temperature = %v, want 0.7", gen["temperature"])
	}
}

func TestGoogleFixedOutputBudget(t *testing.T) {
	srv, rec := newUpstream(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	p := newGoogleProvider(srv.Client(), srv.URL)

	req := baseRequest()
	req.MaxTokens = 5
	if _, err := p.Complete(context.Background(), req); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	gen := rec.body["generationConfig"].(map[string]any)
	if gen["maxOutputTokens"] != float64(1000) {
		t.Errorf("maxOutputTokens = %v, want 1000 regardless of request", gen["maxOutputTokens"])
	}
}

func TestGoogleErrorEnvelope(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusBadRequest,
		`{"error":{"message":"API key not valid"}}`)
	p := newGoogleProvider(srv.Client(), srv.URL)

	_, err := p.Complete(context.Background(), baseRequest())
	var relayErr *llm.RelayError
	if !errors.As(err, &relayErr) || relayErr.Message != "API key not valid" {
		t.Errorf("error = %v, want provider message", err)
	}
}

// -- Custom --

func TestCustomWireFormat(t *testing.T) {
	srv, rec := newUpstream(t, http.StatusOK, `{"response":"done"}`)
	p := newCustomProvider(srv.Client())

	req := baseRequest()
	req.Endpoint = srv.URL + "/chat"
	got, err := p.Complete(context.Background(), req)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "done" {
		t.Errorf("reply = %q, want %q", got, "done")
	}

	if rec.path != "/chat" {
		t.Errorf("path = %q, want caller endpoint", rec.path)
	}
	if auth := rec.header.Get("Authorization"); auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want bearer key", auth)
	}
	// The history is forwarded verbatim, system messages included.
	msgs := messages(t, rec.body)
	if len(msgs) != 4 || msgs[0]["role"] != "system" {
		t.Errorf("messages = %v, want 4 verbatim entries", msgs)
	}
}

func TestCustomReplyFieldPrecedence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"response wins", `{"response":"a","content":"b","message":"c"}`, "a"},
		{"content second", `{"content":"b","message":"c"}`, "b"},
		{"message last", `{"message":"c"}`, "c"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newUpstream(t, http.StatusOK, tt.body)
			p := newCustomProvider(srv.Client())

			req := baseRequest()
			req.Endpoint = srv.URL
			got, err := p.Complete(context.Background(), req)
			if err != nil {
				t.Fatalf("Complete() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("reply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCustomNoReplyField(t *testing.T) {
	srv, _ := newUpstream(t, http.StatusOK, `{"status":"ok"}`)
	p := newCustomProvider(srv.Client())

	req := baseRequest()
	req.Endpoint = srv.URL
	if _, err := p.Complete(context.Background(), req); err == nil {
		t.Error("Complete() error = nil, want no-reply error")
	}
}

func TestCustomErrorIsOpaque(t *testing.T) {
	// Unlike the named providers, custom endpoints get no envelope parsing.
	srv, _ := newUpstream(t, http.StatusBadRequest, `{"error":{"message":"detailed"}}`)
	p := newCustomProvider(srv.Client())

	req := baseRequest()
	req.Endpoint = srv.URL
	_, err := p.Complete(context.Background(), req)
	var relayErr *llm.RelayError
	if !errors.As(err, &relayErr) || relayErr.Message != "Custom API error" {
		t.Errorf("error = %v, want opaque custom error", err)
	}
}
