// Package model defines the provider-neutral request/response types and the
// Model interface implemented by the vendor adapters in the subpackages.
// The orchestration layer never imports this package directly; it reaches
// models only through the core.Runner capability of an agent.
package model
