package team

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/gauss/core"
	"github.com/hupe1980/gauss/logging"
)

// Strategy selects how a team composes its agents.
type Strategy string

const (
	// StrategySequential runs agents in registration order, feeding each
	// agent's output text forward as the next agent's input.
	StrategySequential Strategy = "sequential"
	// StrategyParallel runs every agent concurrently against the same seed
	// input and merges the outputs.
	StrategyParallel Strategy = "parallel"
)

// ParallelDelimiter separates individual agent outputs in the merged
// FinalText of a parallel run.
const ParallelDelimiter = "\n\n---\n\n"

// Output aggregates the results of one team run. Results holds one entry
// per agent in registration order regardless of completion order.
type Output struct {
	Results   []*core.Output `json:"results"`
	FinalText string         `json:"final_text"`
}

// Team composes an ordered list of units of work under a Strategy. Teams
// are immutable once built and safe for concurrent Run calls.
type Team struct {
	name     string
	agents   []core.Runner
	strategy Strategy
	logger   logging.Logger
}

// Builder assembles a Team.
type Builder struct {
	name     string
	agents   []core.Runner
	strategy Strategy
	logger   logging.Logger
}

// New starts building a team with the given name. The default strategy is
// sequential.
func New(name string) *Builder {
	return &Builder{name: name, strategy: StrategySequential}
}

// Agent appends a unit of work. Registration order is execution order for
// sequential teams and result order for parallel teams.
func (b *Builder) Agent(r core.Runner) *Builder {
	b.agents = append(b.agents, r)
	return b
}

// Strategy sets the composition strategy.
func (b *Builder) Strategy(s Strategy) *Builder {
	b.strategy = s
	return b
}

// Logger sets an optional logger; defaults to a no-op logger.
func (b *Builder) Logger(l logging.Logger) *Builder {
	b.logger = l
	return b
}

// Build finalizes the team. The builder must not be reused afterwards.
func (b *Builder) Build() *Team {
	return &Team{
		name:     b.name,
		agents:   b.agents,
		strategy: b.strategy,
		logger:   logging.OrNoOp(b.logger),
	}
}

// Name returns the team's name.
func (t *Team) Name() string { return t.name }

// Strategy returns the team's composition strategy.
func (t *Team) Strategy() Strategy { return t.strategy }

// Size returns the number of registered agents.
func (t *Team) Size() int { return len(t.agents) }

// Run executes the team against the seed input. It fails before any
// dispatch if the team is empty, and otherwise delegates to the configured
// strategy. The first agent error aborts the run; completed sibling outputs
// are discarded.
func (t *Team) Run(ctx context.Context, seed []core.Message) (*Output, error) {
	if len(t.agents) == 0 {
		return nil, core.NewConfigError(t.name, "team %q has no agents", t.name)
	}

	start := time.Now()
	var (
		out *Output
		err error
	)
	switch t.strategy {
	case StrategyParallel:
		out, err = t.runParallel(ctx, seed)
	default:
		out, err = t.runSequential(ctx, seed)
	}
	t.logger.Debug("team run finished",
		"team", t.name,
		"strategy", string(t.strategy),
		"duration", time.Since(start),
		"success", err == nil,
	)
	return out, err
}

// runSequential executes agents strictly in registration order. Only the
// previous agent's output text flows forward; earlier context is not
// retained by the coordinator.
func (t *Team) runSequential(ctx context.Context, seed []core.Message) (*Output, error) {
	results := make([]*core.Output, 0, len(t.agents))
	current := seed

	for _, agent := range t.agents {
		out, err := agent.Run(ctx, current)
		if err != nil {
			return nil, core.NewAgentError(agent.Name(), err)
		}
		results = append(results, out)
		current = []core.Message{core.UserMessage(out.Text)}
	}

	return &Output{
		Results:   results,
		FinalText: results[len(results)-1].Text,
	}, nil
}

// runParallel dispatches every agent concurrently with the identical seed
// input. Results are collected at registration index; after all dispatched
// agents settle, the first error in registration order is returned. A
// failing agent does not cancel siblings already in flight.
func (t *Team) runParallel(ctx context.Context, seed []core.Message) (*Output, error) {
	results := make([]*core.Output, len(t.agents))
	errs := make([]error, len(t.agents))

	var wg sync.WaitGroup
	for i, agent := range t.agents {
		wg.Add(1)
		go func(idx int, a core.Runner) {
			defer wg.Done()
			out, err := a.Run(ctx, seed)
			if err != nil {
				errs[idx] = core.NewAgentError(a.Name(), err)
				return
			}
			results[idx] = out
		}(i, agent)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}

	return &Output{
		Results:   results,
		FinalText: strings.Join(texts, ParallelDelimiter),
	}, nil
}
