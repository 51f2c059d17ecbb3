package support

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/admybrand/pulseboard/pkg/plugin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

var supportSessionsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "support_sessions_total",
		Help: "Total support WebSocket sessions opened.",
	},
)

func init() {
	prometheus.MustRegister(supportSessionsTotal)
}

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// ModuleConfig holds the support module configuration.
type ModuleConfig struct {
	ReplyDelay    time.Duration `mapstructure:"reply_delay"`
	FeedbackDelay time.Duration `mapstructure:"feedback_delay"`
	ResetDelay    time.Duration `mapstructure:"reset_delay"`
}

// Module serves the scripted support assistant over WebSocket.
type Module struct {
	logger *zap.Logger
	cfg    ModuleConfig
}

// New creates a new support module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "support",
		Version:     "0.1.0",
		Description: "Scripted FAQ support assistant with feedback tracking",
		Required:    false,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	m.cfg = ModuleConfig{
		ReplyDelay:    DefaultReplyDelay,
		FeedbackDelay: DefaultFeedbackDelay,
		ResetDelay:    DefaultResetDelay,
	}
	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return err
		}
	}

	m.logger.Info("support assistant initialized",
		zap.Duration("reply_delay", m.cfg.ReplyDelay),
		zap.Int("knowledge_entries", len(DefaultKnowledgeBase())),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("support module stopped")
	return nil
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/ws", Handler: m.handleMetered},
		{Method: "GET", Path: "", Handler: m.handleDescribe},
	}
}

func (m *Module) handleMetered(w http.ResponseWriter, r *http.Request) {
	supportSessionsTotal.Inc()
	m.handleWS(w, r)
}

// sessionConfig builds per-session pacing from module config.
func (m *Module) sessionConfig() Config {
	return Config{
		ReplyDelay:    m.cfg.ReplyDelay,
		FeedbackDelay: m.cfg.FeedbackDelay,
		ResetDelay:    m.cfg.ResetDelay,
	}
}

// DescribeResponse documents the support WebSocket protocol.
type DescribeResponse struct {
	Message  string   `json:"message" example:"Support Assistant API"`
	Endpoint string   `json:"endpoint" example:"GET /api/v1/support/ws"`
	Frames   []string `json:"frames"`
}

// handleDescribe returns the support API description.
//
//	@Summary		Describe support API
//	@Description	Returns the WebSocket endpoint and accepted frame types.
//	@Tags			support
//	@Produce		json
//	@Success		200	{object}	DescribeResponse
//	@Router			/support [get]
func (m *Module) handleDescribe(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(DescribeResponse{
		Message:  "Support Assistant API",
		Endpoint: "GET /api/v1/support/ws",
		Frames:   []string{string(FrameMessage), string(FrameOption), string(FrameFeedback), string(FrameReset)},
	})
}
