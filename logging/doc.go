// Package logging provides a tiny abstraction over slog so downstream code
// can depend on a minimal interface (Logger) while allowing users to plug in
// any structured logger. It also offers a richer GaussLogger with contextual
// helpers (component, session) and domain specific logging helpers for
// teams, workflows, plugins and model calls.
package logging
