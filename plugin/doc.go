// Package plugin provides the Gauss extension mechanism: a Plugin lifecycle
// interface, a shared mutable Context for cross-plugin handoff, and a
// Registry that initializes plugins in dependency order. The registry
// computes a topological order from each plugin's declared dependencies,
// rejects cyclic declarations before calling any plugin's Init, and shuts
// plugins down in reverse initialization order so a plugin's dependencies
// remain available while it tears down.
package plugin
