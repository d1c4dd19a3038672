// Package event provides the Gauss lifecycle event type and a synchronous
// publish/subscribe bus. The bus is independent of the plugin layer; plugins
// are merely its most common subscribers. Handlers registered under an
// event's dispatch name receive exact matches, handlers registered under the
// wildcard "*" receive every event, and Publish returns only after all
// matching handlers have run.
package event
