package chat

import (
	"context"
	"net/http"
	"time"

	"github.com/admybrand/pulseboard/pkg/plugin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// TopicChatCompleted is published after every successful relay call.
// The payload is a CompletedEvent; message content and credentials are
// never placed on the bus.
const TopicChatCompleted = "chat.completed"

// CompletedEvent is the payload for TopicChatCompleted.
type CompletedEvent struct {
	Provider string
	Model    string
}

var relayRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chat_relay_requests_total",
		Help: "Total chat relay requests by provider and outcome.",
	},
	[]string{"provider", "outcome"},
)

func init() {
	prometheus.MustRegister(relayRequestsTotal)
}

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// ModuleConfig holds the chat module configuration.
type ModuleConfig struct {
	// Timeout bounds each upstream HTTP call. Zero means the transport
	// default (wait indefinitely); retry policy belongs to the caller.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Module implements the chat relay module.
type Module struct {
	logger *zap.Logger
	bus    plugin.EventBus
	relay  *Relay
	cfg    ModuleConfig
}

// New creates a new chat module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "chat",
		Version:     "0.1.0",
		Description: "Multi-provider AI chat relay (OpenAI, Anthropic, Google, custom)",
		Required:    false,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	m.bus = deps.Bus

	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return err
		}
	}

	client := &http.Client{Timeout: m.cfg.Timeout}
	m.relay = NewRelay(
		newOpenAIProvider(client, ""),
		newAnthropicProvider(client, ""),
		newGoogleProvider(client, ""),
		newCustomProvider(client),
	)

	m.logger.Info("chat relay initialized",
		zap.Duration("timeout", m.cfg.Timeout),
		zap.Strings("providers", m.relay.Providers()),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("chat module stopped")
	return nil
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "POST", Path: "", Handler: m.handleChat},
		{Method: "GET", Path: "", Handler: m.handleDescribe},
	}
}

// Relay returns the underlying relay for in-process callers.
func (m *Module) Relay() *Relay {
	return m.relay
}

func (m *Module) recordOutcome(provider string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	relayRequestsTotal.WithLabelValues(provider, outcome).Inc()
}

func (m *Module) publishCompleted(ctx context.Context, provider, model string) {
	if m.bus == nil {
		return
	}
	m.bus.PublishAsync(ctx, plugin.Event{
		Topic:     TopicChatCompleted,
		Source:    "chat",
		Timestamp: time.Now().UTC(),
		Payload:   CompletedEvent{Provider: provider, Model: model},
	})
}
