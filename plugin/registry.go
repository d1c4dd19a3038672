package plugin

import (
	"github.com/hupe1980/gauss/core"
	"github.com/hupe1980/gauss/event"
	"github.com/hupe1980/gauss/logging"
)

// RegistryOptions configures a Registry.
type RegistryOptions struct {
	// Bus is the event bus handed to plugin lifecycle calls. A fresh bus
	// is created if nil.
	Bus *event.Bus
	// Context is the shared plugin context. A fresh context is created if
	// nil.
	Context *Context
	// Logger receives lifecycle log entries; defaults to a no-op logger.
	Logger logging.Logger
}

// Registry manages plugin registration and lifecycle. Registration order
// never affects initialization order; dependency declarations alone
// determine it (ties among independent plugins break deterministically by
// registration order).
type Registry struct {
	plugins     []Plugin
	byName      map[string]Plugin
	initialized []string
	bus         *event.Bus
	ctx         *Context
	logger      logging.Logger
}

// NewRegistry creates a plugin registry.
func NewRegistry(optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	if opts.Context == nil {
		opts.Context = NewContext()
	}
	return &Registry{
		byName: map[string]Plugin{},
		bus:    opts.Bus,
		ctx:    opts.Context,
		logger: logging.OrNoOp(opts.Logger),
	}
}

// Bus returns the registry's event bus.
func (r *Registry) Bus() *event.Bus { return r.bus }

// Context returns the shared plugin context.
func (r *Registry) Context() *Context { return r.ctx }

// Register adds a plugin without initializing it. It fails if another
// plugin with the same name is already registered.
func (r *Registry) Register(p Plugin) error {
	name := p.Name()
	if _, exists := r.byName[name]; exists {
		return core.NewConfigError("plugin registry", "plugin %q already registered", name)
	}
	r.byName[name] = p
	r.plugins = append(r.plugins, p)
	return nil
}

// List returns the registered plugin names in registration order.
func (r *Registry) List() []string {
	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name()
	}
	return names
}

// InitOrder returns the names of initialized plugins in the order their
// Init calls ran. Empty before InitAll.
func (r *Registry) InitOrder() []string {
	order := make([]string, len(r.initialized))
	copy(order, r.initialized)
	return order
}

// InitAll initializes every registered plugin exactly once, in dependency
// order. The topological order is computed (and cyclic declarations
// rejected) before any plugin's Init is called; on a cycle no plugin is
// initialized. The first Init failure aborts, leaving earlier plugins
// initialized.
func (r *Registry) InitAll() error {
	sorted, err := r.topologicalOrder()
	if err != nil {
		return err
	}

	for _, p := range sorted {
		name := p.Name()
		if r.isInitialized(name) {
			continue
		}
		if err := p.Init(r.ctx, r.bus); err != nil {
			r.logger.Error("plugin initialization failed", "plugin", name, "error", err)
			return core.NewPluginError(name, err)
		}
		r.logger.Debug("plugin initialized", "plugin", name, "version", p.Version())
		r.initialized = append(r.initialized, name)
	}
	return nil
}

// ShutdownAll shuts down initialized plugins in reverse initialization
// order, so a plugin's dependencies are still alive while it tears down.
// Each plugin is shut down at most once; the first failure aborts, leaving
// the not-yet-shut-down plugins initialized.
func (r *Registry) ShutdownAll() error {
	for i := len(r.initialized) - 1; i >= 0; i-- {
		name := r.initialized[i]
		p := r.byName[name]
		if err := p.Shutdown(r.ctx, r.bus); err != nil {
			r.logger.Error("plugin shutdown failed", "plugin", name, "error", err)
			r.initialized = r.initialized[:i+1]
			return core.NewPluginError(name, err)
		}
		r.logger.Debug("plugin shut down", "plugin", name)
		r.initialized = r.initialized[:i]
	}
	return nil
}

// Emit publishes an event to the registry's bus.
func (r *Registry) Emit(ev event.Event) {
	r.bus.Publish(ev)
}

func (r *Registry) isInitialized(name string) bool {
	for _, n := range r.initialized {
		if n == name {
			return true
		}
	}
	return false
}

// topologicalOrder sorts the registered plugins so every plugin appears
// after all plugins it depends on. Dependencies naming unregistered plugins
// are skipped. A cyclic declaration yields a structural error before any
// lifecycle call.
func (r *Registry) topologicalOrder() ([]Plugin, error) {
	sorted := make([]Plugin, 0, len(r.plugins))
	visited := map[string]bool{}
	inProgress := map[string]bool{}

	var visit func(name string) error
	visit = func(name string) error {
		if visited[name] {
			return nil
		}
		if inProgress[name] {
			return core.NewCycleError("plugin registry", "circular plugin dependency involving %q", name)
		}

		p, ok := r.byName[name]
		if !ok {
			// Unknown dependency names are tolerated; the plugin that
			// declared them still initializes.
			return nil
		}

		inProgress[name] = true
		for _, dep := range p.Dependencies() {
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(inProgress, name)
		visited[name] = true
		sorted = append(sorted, p)
		return nil
	}

	for _, p := range r.plugins {
		if err := visit(p.Name()); err != nil {
			return nil, err
		}
	}
	return sorted, nil
}
