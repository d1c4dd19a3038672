// Package workflow composes named steps into a directed acyclic graph and
// executes them with dependency-aware scheduling. Each step wraps a unit of
// work plus an input builder that derives the step's input from the outputs
// of already-completed steps. Steps whose dependencies are all satisfied run
// concurrently; a dependency cycle is reported as an explicit structural
// error naming the stuck steps, never as a silent partial result.
package workflow
