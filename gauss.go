// Package gauss is an embeddable engine for composing independently-defined
// units of work: cooperating agents, DAG-structured multi-step workflows and
// registered extension plugins. Most applications interact with it by:
//
//  1. Wrapping models into agents (agent.New over a model adapter)
//  2. Composing agents via team.New (sequential / parallel strategies) or
//     workflow.New (dependency-ordered steps)
//  3. Optionally wiring plugins and lifecycle events through
//     plugin.NewRegistry and its event bus
//
// The orchestration layer depends only on the core.Runner capability, so
// any value that can turn messages into an output composes the same way the
// built-in agents do. All defaults are safe for local development and
// testing; production deployments typically supply a structured logger.
package gauss

import (
	"github.com/hupe1980/gauss/logging"
	"github.com/hupe1980/gauss/plugin"
)

// Version is the library version.
const Version = "0.1.0"

// NewDefaultRegistry creates a plugin registry with the built-in telemetry
// and memory plugins pre-registered. The caller still drives InitAll /
// ShutdownAll.
func NewDefaultRegistry(logger logging.Logger) *plugin.Registry {
	r := plugin.NewRegistry(func(o *plugin.RegistryOptions) {
		o.Logger = logger
	})
	// Registering fresh built-ins cannot collide.
	_ = r.Register(plugin.NewTelemetryPlugin(logger))
	_ = r.Register(plugin.NewMemoryPlugin())
	return r
}
