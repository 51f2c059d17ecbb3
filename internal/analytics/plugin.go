package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/admybrand/pulseboard/pkg/plugin"
	"go.uber.org/zap"
)

// Compile-time interface guards.
var (
	_ plugin.Plugin       = (*Module)(nil)
	_ plugin.HTTPProvider = (*Module)(nil)
)

// Module serves dashboard analytics datasets and records client events.
type Module struct {
	logger *zap.Logger
	db     *sql.DB
}

// New creates a new analytics module instance.
func New() *Module {
	return &Module{}
}

func (m *Module) Info() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:        "analytics",
		Version:     "0.1.0",
		Description: "Dashboard analytics datasets and event ingestion",
		Required:    false,
		APIVersion:  plugin.APIVersionCurrent,
	}
}

func (m *Module) Init(ctx context.Context, deps plugin.Dependencies) error {
	m.logger = deps.Logger

	if deps.Store == nil {
		return fmt.Errorf("analytics: store is required")
	}
	if err := deps.Store.Migrate(ctx, "analytics", migrations()); err != nil {
		return fmt.Errorf("analytics: migrate: %w", err)
	}
	m.db = deps.Store.DB()

	m.logger.Info("analytics module initialized")
	return nil
}

func (m *Module) Start(_ context.Context) error { return nil }

func (m *Module) Stop(_ context.Context) error {
	m.logger.Info("analytics module stopped")
	return nil
}

// Routes implements plugin.HTTPProvider.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: m.handleGet},
		{Method: "POST", Path: "", Handler: m.handleRecordEvent},
	}
}

func migrations() []plugin.Migration {
	return []plugin.Migration{
		{
			Version:     1,
			Description: "create analytics_events table",
			Up: func(tx *sql.Tx) error {
				_, err := tx.Exec(`CREATE TABLE IF NOT EXISTS analytics_events (
					id          TEXT PRIMARY KEY,
					payload     TEXT NOT NULL,
					received_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`)
				return err
			},
		},
	}
}

func (m *Module) insertEvent(ctx context.Context, id, payload string, receivedAt time.Time) error {
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO analytics_events (id, payload, received_at) VALUES (?, ?, ?)",
		id, payload, receivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// EventCount returns the number of recorded analytics events.
func (m *Module) EventCount(ctx context.Context) (int, error) {
	var n int
	if err := m.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM analytics_events").Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}
