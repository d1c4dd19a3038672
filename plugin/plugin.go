package plugin

import "github.com/hupe1980/gauss/event"

// Plugin extends Gauss with custom behavior via the event bus and the
// shared context. A plugin's identity is its Name, which must be unique
// among registered plugins.
type Plugin interface {
	// Name returns the unique plugin name.
	Name() string

	// Version returns the plugin version (semver).
	Version() string

	// Dependencies returns the names of plugins that must be initialized
	// before this one. Names not registered in the same registry are
	// ignored.
	Dependencies() []string

	// Init initializes the plugin. Register event handlers and seed shared
	// state here. Called exactly once per InitAll, in dependency order.
	Init(ctx *Context, bus *event.Bus) error

	// Shutdown releases the plugin's resources. Called exactly once per
	// ShutdownAll, in reverse initialization order.
	Shutdown(ctx *Context, bus *event.Bus) error
}

// Base provides default implementations for the optional Plugin methods.
// Embed it to write plugins that only need Init.
type Base struct{}

// Dependencies returns no dependencies.
func (Base) Dependencies() []string { return nil }

// Shutdown is a no-op.
func (Base) Shutdown(*Context, *event.Bus) error { return nil }

// Context is the shared state store threaded through every plugin's Init
// and Shutdown call in the computed order. The registry guarantees strictly
// sequential access, so plugins read and write State without locking;
// later-initialized plugins observe the cumulative effect of earlier ones.
type Context struct {
	// Config holds shared configuration values, set before InitAll.
	Config map[string]any
	// State holds cross-plugin handoff values.
	State map[string]any
}

// NewContext creates an empty plugin context.
func NewContext() *Context {
	return &Context{Config: map[string]any{}, State: map[string]any{}}
}

// WithConfig sets a configuration value and returns the context for
// chaining during setup.
func (c *Context) WithConfig(key string, value any) *Context {
	c.Config[key] = value
	return c
}
