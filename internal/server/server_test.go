package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/admybrand/pulseboard/pkg/plugin"
	"go.uber.org/zap"
)

// fakeModuleSource satisfies ModuleSource for testing.
type fakeModuleSource struct {
	modules []plugin.Plugin
	routes  map[string][]plugin.Route
}

func (f *fakeModuleSource) AllRoutes() map[string][]plugin.Route {
	if f.routes != nil {
		return f.routes
	}
	return map[string][]plugin.Route{}
}

func (f *fakeModuleSource) All() []plugin.Plugin { return f.modules }

type fakeModule struct {
	info plugin.PluginInfo
}

func (f *fakeModule) Info() plugin.PluginInfo                             { return f.info }
func (f *fakeModule) Init(_ context.Context, _ plugin.Dependencies) error { return nil }
func (f *fakeModule) Start(_ context.Context) error                       { return nil }
func (f *fakeModule) Stop(_ context.Context) error                        { return nil }

func newTestServer(ready ReadinessChecker) *Server {
	modules := &fakeModuleSource{
		modules: []plugin.Plugin{
			&fakeModule{info: plugin.PluginInfo{
				Name:        "chat",
				Version:     "1.0.0",
				Description: "Multi-provider AI chat relay",
			}},
		},
	}
	return New("127.0.0.1:0", modules, zap.NewNop(), ready, nil, false)
}

func TestHandleHealthz(t *testing.T) {
	srv := newTestServer(nil)

	req := httptest.NewRequest("GET", "/healthz", http.NoBody)
	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body map[string]string
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body["status"] != "alive" {
		t.Errorf("status = %q, want %q", body["status"], "alive")
	}
}

func TestHandleReadyz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		srv := newTestServer(func(_ context.Context) error { return nil })

		w := httptest.NewRecorder()
		srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/readyz", http.NoBody))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("unhealthy", func(t *testing.T) {
		srv := newTestServer(func(_ context.Context) error {
			return errors.New("database unreachable")
		})

		w := httptest.NewRecorder()
		srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/readyz", http.NoBody))

		if w.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
		}
		var body map[string]string
		_ = json.NewDecoder(w.Body).Decode(&body)
		if !strings.Contains(body["error"], "database unreachable") {
			t.Errorf("error = %q, want checker message", body["error"])
		}
	})

	t.Run("nil checker is ready", func(t *testing.T) {
		srv := newTestServer(nil)

		w := httptest.NewRecorder()
		srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/readyz", http.NoBody))

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(nil)

	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/health", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var body HealthResponse
	_ = json.NewDecoder(w.Body).Decode(&body)
	if body.Status != "ok" || body.Service != "pulseboard" {
		t.Errorf("body = %+v", body)
	}
	if body.Version == nil {
		t.Error("expected version field in response")
	}
}

func TestHandleModules(t *testing.T) {
	srv := newTestServer(nil)

	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/modules", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	var modules []ModuleResponse
	_ = json.NewDecoder(w.Body).Decode(&modules)
	if len(modules) != 1 {
		t.Fatalf("len(modules) = %d, want 1", len(modules))
	}
	if modules[0].Name != "chat" || modules[0].Version != "1.0.0" {
		t.Errorf("module = %+v", modules[0])
	}
	if modules[0].Health != nil {
		t.Error("module without a health checker should omit health")
	}
}

// healthyModule reports health alongside its metadata.
type healthyModule struct {
	fakeModule
}

func (h *healthyModule) Health(_ context.Context) plugin.HealthStatus {
	return plugin.HealthStatus{Status: "healthy", Details: map[string]string{"campaigns": "3"}}
}

func TestHandleModulesSurfacesHealth(t *testing.T) {
	modules := &fakeModuleSource{
		modules: []plugin.Plugin{
			&healthyModule{fakeModule{info: plugin.PluginInfo{Name: "campaigns", Version: "0.1.0"}}},
		},
	}
	srv := New("127.0.0.1:0", modules, zap.NewNop(), nil, nil, false)

	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/modules", http.NoBody))

	var got []ModuleResponse
	_ = json.NewDecoder(w.Body).Decode(&got)
	if len(got) != 1 || got[0].Health == nil {
		t.Fatalf("modules = %+v, want health reported", got)
	}
	if got[0].Health.Status != "healthy" || got[0].Health.Details["campaigns"] != "3" {
		t.Errorf("health = %+v", got[0].Health)
	}
}

func TestHandleMetrics(t *testing.T) {
	srv := newTestServer(nil)

	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("expected prometheus Go runtime metrics in /metrics output")
	}
}

func TestMiddlewareChainIntegration(t *testing.T) {
	srv := newTestServer(nil)

	w := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", http.NoBody))

	if v := w.Header().Get("X-PulseBoard-Version"); v == "" {
		t.Error("expected X-PulseBoard-Version header from middleware")
	}
	if v := w.Header().Get("X-Request-ID"); v == "" {
		t.Error("expected X-Request-ID header from middleware")
	}
	if v := w.Header().Get("X-Content-Type-Options"); v != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want %q", v, "nosniff")
	}
}

func TestModuleRoutesMounted(t *testing.T) {
	modules := &fakeModuleSource{
		routes: map[string][]plugin.Route{
			"reports": {
				{
					Method: "POST",
					Path:   "",
					Handler: func(w http.ResponseWriter, _ *http.Request) {
						w.WriteHeader(http.StatusAccepted)
					},
				},
			},
		},
	}
	srv := New("127.0.0.1:0", modules, zap.NewNop(), nil, nil, false)

	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, httptest.NewRequest("POST", "/api/v1/reports", http.NoBody))

	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}
}

func TestExtraRouteRegistrar(t *testing.T) {
	registrar := routeRegistrarFunc(func(mux *http.ServeMux) {
		mux.HandleFunc("GET /api/v1/ws/events", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusSwitchingProtocols)
		})
	})
	srv := New("127.0.0.1:0", &fakeModuleSource{}, zap.NewNop(), nil, nil, false, registrar)

	w := httptest.NewRecorder()
	srv.mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/ws/events", http.NoBody))

	if w.Code != http.StatusSwitchingProtocols {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSwitchingProtocols)
	}
}

type routeRegistrarFunc func(mux *http.ServeMux)

func (f routeRegistrarFunc) RegisterRoutes(mux *http.ServeMux) { f(mux) }
