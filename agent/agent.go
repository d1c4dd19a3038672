package agent

import (
	"context"
	"time"

	"github.com/hupe1980/gauss/core"
	"github.com/hupe1980/gauss/event"
	"github.com/hupe1980/gauss/logging"
	"github.com/hupe1980/gauss/model"
)

// Options configures an Agent.
type Options struct {
	// Instructions is the system prompt sent with every generation.
	Instructions string
	// Bus, if set, receives agent_start / agent_finish / error events.
	Bus *event.Bus
	// SessionID correlates emitted events; defaults to a fresh id.
	SessionID string
	// Logger receives execution log entries; defaults to a no-op logger.
	Logger logging.Logger
}

// Agent is a single-shot unit of work: one Run call produces one model
// generation. Agents hold no mutable state between runs and are safe to
// dispatch concurrently, which parallel teams rely on.
type Agent struct {
	name  string
	model model.Model
	opts  Options
}

// New creates an agent driving the given model.
func New(name string, m model.Model, optFns ...func(o *Options)) *Agent {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.SessionID == "" {
		opts.SessionID = core.NewID()
	}
	opts.Logger = logging.OrNoOp(opts.Logger)

	return &Agent{name: name, model: m, opts: opts}
}

// Name implements core.Runner.
func (a *Agent) Name() string { return a.name }

// Run implements core.Runner. It sends the conversation to the model and
// returns the generation as an Output whose Messages extend the input with
// the assistant reply.
func (a *Agent) Run(ctx context.Context, messages []core.Message) (*core.Output, error) {
	start := time.Now()
	a.emit(event.NewAgentStart(a.name, a.opts.SessionID))

	resp, err := a.model.Generate(ctx, model.Request{
		Instructions: a.opts.Instructions,
		Messages:     messages,
	})
	if err != nil {
		a.emit(event.NewError(a.name, err.Error()))
		a.opts.Logger.Error("agent run failed", "agent", a.name, "error", err)
		return nil, err
	}

	a.opts.Logger.Debug("agent run completed",
		"agent", a.name,
		"model", a.model.Info().Name,
		"tokens", resp.Usage.TotalTokens(),
		"duration", time.Since(start),
	)
	a.emit(event.NewAgentFinish(a.name, a.opts.SessionID, resp.Text))

	out := make([]core.Message, 0, len(messages)+1)
	out = append(out, messages...)
	out = append(out, core.AssistantMessage(resp.Text))

	return &core.Output{
		Text:     resp.Text,
		Messages: out,
		Usage:    resp.Usage,
	}, nil
}

func (a *Agent) emit(ev event.Event) {
	if a.opts.Bus != nil {
		a.opts.Bus.Publish(ev)
	}
}
