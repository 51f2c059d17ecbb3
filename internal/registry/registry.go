// Package registry manages module registration, initialization order, and
// lifecycle for PulseBoard.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/admybrand/pulseboard/pkg/plugin"
	"go.uber.org/zap"
)

// Registry holds all registered modules and drives their lifecycle.
// Modules initialize and start in registration order and stop in reverse.
type Registry struct {
	mu       sync.RWMutex
	modules  map[string]plugin.Plugin
	order    []string // registration order
	started  []string // successfully started, for reverse-order shutdown
	disabled map[string]bool
	logger   *zap.Logger
}

// New creates an empty module registry.
func New(logger *zap.Logger) *Registry {
	return &Registry{
		modules:  make(map[string]plugin.Plugin),
		disabled: make(map[string]bool),
		logger:   logger,
	}
}

// Register adds a module to the registry. Names must be unique.
func (r *Registry) Register(p plugin.Plugin) error {
	info := p.Info()
	if info.Name == "" {
		return fmt.Errorf("module has empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[info.Name]; exists {
		return fmt.Errorf("module %q already registered", info.Name)
	}

	r.modules[info.Name] = p
	r.order = append(r.order, info.Name)

	r.logger.Debug("module registered",
		zap.String("module", info.Name),
		zap.String("version", info.Version),
	)
	return nil
}

// Validate checks that every registered module targets a supported API version.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		info := r.modules[name].Info()
		if info.APIVersion < plugin.APIVersionMin || info.APIVersion > plugin.APIVersionCurrent {
			return fmt.Errorf("module %q targets API version %d, supported range is %d-%d",
				name, info.APIVersion, plugin.APIVersionMin, plugin.APIVersionCurrent)
		}
	}
	return nil
}

// InitAll initializes all modules in registration order. The depsFn callback
// produces each module's scoped dependencies. A module whose config sets
// enabled=false is skipped (unless Required). Init failure of a non-required
// module disables it; a required module's failure aborts startup.
func (r *Registry) InitAll(ctx context.Context, depsFn func(name string) plugin.Dependencies) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		m := r.modules[name]
		info := m.Info()
		deps := depsFn(name)

		if deps.Config != nil && deps.Config.IsSet("enabled") && !deps.Config.GetBool("enabled") {
			if info.Required {
				return fmt.Errorf("module %q is required and cannot be disabled", name)
			}
			r.disabled[name] = true
			r.logger.Info("module disabled by configuration", zap.String("module", name))
			continue
		}

		if err := m.Init(ctx, deps); err != nil {
			if info.Required {
				return fmt.Errorf("init required module %q: %w", name, err)
			}
			r.disabled[name] = true
			r.logger.Error("module init failed, disabling",
				zap.String("module", name),
				zap.Error(err),
			)
			continue
		}

		r.logger.Debug("module initialized", zap.String("module", name))
	}
	return nil
}

// StartAll starts all enabled modules in registration order.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		if r.disabled[name] {
			continue
		}
		if err := r.modules[name].Start(ctx); err != nil {
			return fmt.Errorf("start module %q: %w", name, err)
		}
		r.started = append(r.started, name)
	}
	return nil
}

// StopAll stops started modules in reverse start order. Stop errors are
// logged, not propagated, so every module gets a shutdown chance.
func (r *Registry) StopAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := len(r.started) - 1; i >= 0; i-- {
		name := r.started[i]
		if err := r.modules[name].Stop(ctx); err != nil {
			r.logger.Error("module stop failed",
				zap.String("module", name),
				zap.Error(err),
			)
		}
	}
	r.started = nil
}

// Get returns the named module.
func (r *Registry) Get(name string) (plugin.Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// All returns enabled modules in registration order.
func (r *Registry) All() []plugin.Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]plugin.Plugin, 0, len(r.order))
	for _, name := range r.order {
		if r.disabled[name] {
			continue
		}
		out = append(out, r.modules[name])
	}
	return out
}

// AllRoutes returns the HTTP routes of every enabled module that exposes
// them, keyed by module name.
func (r *Registry) AllRoutes() map[string][]plugin.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()

	routes := make(map[string][]plugin.Route)
	for _, name := range r.order {
		if r.disabled[name] {
			continue
		}
		if hp, ok := r.modules[name].(plugin.HTTPProvider); ok {
			routes[name] = hp.Routes()
		}
	}
	return routes
}

// IsDisabled reports whether the named module was disabled during startup.
func (r *Registry) IsDisabled(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.disabled[name]
}
