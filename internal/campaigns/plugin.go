package campaigns

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/admybrand/pulseboard/pkg/plugin"
	"go.uber.org/zap"
)

// Event topics published by the campaigns module. Payloads are *Campaign.
const (
	TopicCampaignCreated = "campaigns.created"
	TopicCampaignUpdated = "campaigns.updated"
	TopicCampaignDeleted = "campaigns.deleted"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin        = (*Module)(nil)
	_ plugin.HTTPProvider  = (*Module)(nil)
	_ plugin.HealthChecker = (*Module)(nil)
)

// ModuleConfig holds the campaigns module configuration.
type ModuleConfig struct {
	// Seed loads demo campaigns into an empty database on startup.
	Seed bool `mapstructure:"seed"`
}

// Module implements campaign CRUD backed by the shared store.
type Module struct {
	logger *zap.Logger
	bus    plugin.EventBus
	store  *CampaignStore
	cfg    ModuleConfig
}

// New creates a new campaigns module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "campaigns",
		Version:     "0.1.0",
		Description: "Marketing campaign CRUD with demo seed data",
		Required:    false,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	m.bus = deps.Bus

	if deps.Config != nil {
		if err := deps.Config.Unmarshal(&m.cfg); err != nil {
			return err
		}
	}
	if deps.Store == nil {
		return fmt.Errorf("campaigns: store is required")
	}
	if err := deps.Store.Migrate(ctx, "campaigns", migrations()); err != nil {
		return fmt.Errorf("campaigns: migrate: %w", err)
	}
	m.store = NewStore(deps.Store.DB())

	if m.cfg.Seed {
		if err := m.store.seed(ctx); err != nil {
			return fmt.Errorf("campaigns: seed: %w", err)
		}
	}

	n, err := m.store.Count(ctx)
	if err != nil {
		return err
	}
	m.logger.Info("campaigns module initialized",
		zap.Bool("seed", m.cfg.Seed),
		zap.Int("campaigns", n),
	)
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("campaigns module stopped")
	return nil
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: m.handleList},
		{Method: "POST", Path: "", Handler: m.handleCreate},
		{Method: "PUT", Path: "", Handler: m.handleUpdate},
		{Method: "DELETE", Path: "", Handler: m.handleDelete},
	}
}

// Health implements plugin.HealthChecker by probing the campaign table.
func (m *Module) Health(ctx context.Context) plugin.HealthStatus {
	n, err := m.store.Count(ctx)
	if err != nil {
		return plugin.HealthStatus{Status: "unhealthy", Message: err.Error()}
	}
	return plugin.HealthStatus{
		Status:  "healthy",
		Details: map[string]string{"campaigns": strconv.Itoa(n)},
	}
}

// Store returns the campaign store for in-process callers.
func (m *Module) Store() *CampaignStore {
	return m.store
}

func (m *Module) publish(ctx context.Context, topic string, c *Campaign) {
	if m.bus == nil {
		return
	}
	m.bus.PublishAsync(ctx, plugin.Event{
		Topic:     topic,
		Source:    "campaigns",
		Timestamp: time.Now().UTC(),
		Payload:   c,
	})
}
