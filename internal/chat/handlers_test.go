package chat

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/admybrand/pulseboard/pkg/llm"
	"go.uber.org/zap"
)

func newTestModule(provider llm.Provider) *Module {
	return &Module{
		logger: zap.NewNop(),
		relay:  NewRelay(provider),
	}
}

func TestHandleChatSuccess(t *testing.T) {
	fake := &fakeProvider{name: llm.ProviderOpenAI, reply: "Hello there!"}
	m := newTestModule(fake)

	body := `{
		"provider": "openai",
		"apiKey": "sk-test",
		"model": "gpt-4",
		"messages": [{"role":"user","content":"Hi"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	w := httptest.NewRecorder()

	m.handleChat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	var resp ChatResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Error("Success = false, want true")
	}
	if resp.Message.Content != "Hello there!" || resp.Message.Role != llm.RoleAssistant {
		t.Errorf("message = %+v", resp.Message)
	}
	if resp.Usage.Provider != "openai" || resp.Usage.Model != "gpt-4" {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.Usage.Timestamp == "" {
		t.Error("usage timestamp is empty")
	}
}

func TestHandleChatDefaultsOmittedTuning(t *testing.T) {
	fake := &fakeProvider{name: llm.ProviderOpenAI, reply: "ok"}
	m := newTestModule(fake)

	body := `{"provider":"openai","apiKey":"sk-test","messages":[{"role":"user","content":"Hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	m.handleChat(httptest.NewRecorder(), req)

	if fake.got.MaxTokens != llm.DefaultMaxTokens || fake.got.Temperature != llm.DefaultTemperature {
		t.Errorf("got %d/%v, want defaults", fake.got.MaxTokens, fake.got.Temperature)
	}

	// An explicit zero temperature is honored, not replaced.
	body = `{"provider":"openai","apiKey":"sk-test","temperature":0,"maxTokens":10,"messages":[{"role":"user","content":"Hi"}]}`
	req = httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	m.handleChat(httptest.NewRecorder(), req)

	if fake.got.MaxTokens != 10 || fake.got.Temperature != 0 {
		t.Errorf("got %d/%v, want 10/0", fake.got.MaxTokens, fake.got.Temperature)
	}
}

func TestHandleChatEndpointQueryFallback(t *testing.T) {
	fake := &fakeProvider{name: llm.ProviderCustom, reply: "ok"}
	m := newTestModule(fake)

	body := `{"provider":"custom","apiKey":"sk-test","messages":[{"role":"user","content":"Hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chat?endpoint=https://llm.example.com", strings.NewReader(body))
	w := httptest.NewRecorder()

	m.handleChat(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if fake.got.Endpoint != "https://llm.example.com" {
		t.Errorf("Endpoint = %q, want query fallback", fake.got.Endpoint)
	}
}

func TestHandleChatErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		upstream   error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid json",
			body:       "{nope",
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request body",
		},
		{
			name:       "missing api key",
			body:       `{"provider":"openai","messages":[{"role":"user","content":"Hi"}]}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "API key is required",
		},
		{
			name:       "missing messages",
			body:       `{"provider":"openai","apiKey":"sk-test"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Messages are required",
		},
		{
			name:       "unsupported provider",
			body:       `{"provider":"cohere","apiKey":"sk-test","messages":[{"role":"user","content":"Hi"}]}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Unsupported provider",
		},
		{
			name:       "upstream failure",
			body:       `{"provider":"openai","apiKey":"sk-test","messages":[{"role":"user","content":"Hi"}]}`,
			upstream:   llm.NewRelayError(llm.ErrCodeUpstream, "OpenAI API error", nil),
			wantStatus: http.StatusInternalServerError,
			wantError:  "OpenAI API error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModule(&fakeProvider{name: llm.ProviderOpenAI, err: tt.upstream})
			req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			m.handleChat(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if resp.Error != tt.wantError {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantError)
			}
		})
	}
}

func TestHandleDescribe(t *testing.T) {
	m := newTestModule(&fakeProvider{name: llm.ProviderOpenAI})
	req := httptest.NewRequest(http.MethodGet, "/chat", http.NoBody)
	w := httptest.NewRecorder()

	m.handleDescribe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var resp DescribeResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "AI Chat API" {
		t.Errorf("message = %q", resp.Message)
	}
	if len(resp.SupportedProviders) != 4 {
		t.Errorf("providers = %v, want 4", resp.SupportedProviders)
	}
}
