package core

import "context"

// Output is the result of a single unit-of-work execution.
//
// Text carries the final response text; Messages holds the full exchange the
// execution produced (input plus generated entries) for callers that need
// the conversation rather than just its tail. Data is optional structured
// metadata attached by the runner (parsed JSON output, routing hints).
type Output struct {
	Text     string         `json:"text"`
	Messages []Message      `json:"messages,omitempty"`
	Usage    Usage          `json:"usage"`
	Data     map[string]any `json:"data,omitempty"`
}

// Runner is the capability every unit of work exposes to the orchestration
// layer. Teams and workflows coordinate Runners exclusively through this
// interface and never inspect the implementation behind it.
//
// Implementations must be safe for concurrent Run calls on the same value:
// a parallel team dispatches one Runner reference from multiple goroutines
// without any additional synchronization.
type Runner interface {
	// Name returns the runner's identifier, used in error context and events.
	Name() string

	// Run executes the unit of work against the given conversation input.
	// It returns a fully-populated Output or a typed error; it must respect
	// ctx cancellation while waiting on external calls.
	Run(ctx context.Context, messages []Message) (*Output, error)
}

// RunnerFunc adapts a plain function to the Runner interface, mirroring
// http.HandlerFunc. Useful for tests and for lightweight function steps.
type RunnerFunc struct {
	FuncName string
	Fn       func(ctx context.Context, messages []Message) (*Output, error)
}

// Name implements Runner.
func (r RunnerFunc) Name() string { return r.FuncName }

// Run implements Runner.
func (r RunnerFunc) Run(ctx context.Context, messages []Message) (*Output, error) {
	return r.Fn(ctx, messages)
}
