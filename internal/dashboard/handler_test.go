package dashboard

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHandlerServesSPARoutes(t *testing.T) {
	handler := Handler()

	tests := []struct {
		name string
		path string
	}{
		{"root path", "/"},
		{"dashboard route", "/dashboard"},
		{"campaigns route", "/campaigns"},
		{"nested route", "/campaigns/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			// Client-side routes fall back to index.html.
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
			}
		})
	}
}

func TestHandlerExcludesAPIRoutes(t *testing.T) {
	handler := Handler()

	paths := []string{
		"/api/v1/health",
		"/api/v1/campaigns",
		"/healthz",
		"/readyz",
		"/metrics",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want %d", path, rec.Code, http.StatusNotFound)
		}
	}
}
