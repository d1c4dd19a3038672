// Package team coordinates a fixed, ordered set of units of work under a
// composition strategy. A sequential team chains each agent's output text
// into the next agent's input; a parallel team dispatches every agent
// concurrently against the same seed input and collects results in
// registration order. Both strategies are fail-fast: the first error aborts
// the run and no partial output is returned.
package team
