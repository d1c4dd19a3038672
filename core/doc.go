// Package core provides the foundational domain types shared by every Gauss
// component. It defines:
//
//   - Messages (role-tagged conversation entries exchanged with units of work)
//   - Output / Usage (the result and token accounting of a single execution)
//   - Runner (the capability interface every unit of work satisfies)
//   - Error (the typed failure taxonomy used across the library)
//
// The package intentionally knows nothing about teams, workflows, plugins or
// model providers; those layers depend on core, never the reverse. Keeping
// the orchestration layer coupled only to the Runner interface means any
// value that can turn messages into an Output can be coordinated.
package core
