package reports

import (
	"context"
	"time"

	"github.com/admybrand/pulseboard/pkg/plugin"
	"go.uber.org/zap"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// Module generates campaign performance reports in JSON and CSV.
type Module struct {
	logger    *zap.Logger
	generator *Generator
}

// New creates a new reports module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "reports",
		Version:     "0.1.0",
		Description: "Campaign report generation with JSON and CSV export",
		Required:    false,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(_ context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger
	m.generator = NewGenerator(time.Now().UnixNano())
	m.logger.Info("reports module initialized")
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("reports module stopped")
	return nil
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: m.handleGet},
		{Method: "POST", Path: "", Handler: m.handleGenerate},
	}
}
