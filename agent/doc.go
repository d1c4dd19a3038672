// Package agent provides the single-shot Gauss agent: a named unit of work
// that turns one conversation into one model generation. It implements
// core.Runner, so agents compose directly into teams and workflows. An
// agent can optionally announce its lifecycle (start, finish, error) on an
// event bus.
package agent
