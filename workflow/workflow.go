package workflow

import (
	"context"
	"strings"

	"github.com/hupe1980/gauss/core"
	"github.com/hupe1980/gauss/logging"
)

// SeedID is the reserved step id under which the run's seed input appears
// in every input builder's outputs snapshot. Entry steps read the seed from
// this synthetic entry; user steps may not register the id.
const SeedID = "$seed"

// StepOutput is the result of one completed step, keyed by step id in the
// run's result mapping. Never mutated after the step completes.
type StepOutput struct {
	StepID   string         `json:"step_id"`
	Text     string         `json:"text"`
	Messages []core.Message `json:"messages,omitempty"`
	Usage    core.Usage     `json:"usage"`
	Data     map[string]any `json:"data,omitempty"`
}

// InputFunc derives a step's input from the read-only snapshot of all
// previously completed step outputs (including the synthetic SeedID entry).
type InputFunc func(outputs map[string]StepOutput) []core.Message

// StepFunc is a plain-function step body. It receives the completed-outputs
// snapshot and produces the step's output directly, without a Runner.
type StepFunc func(ctx context.Context, outputs map[string]StepOutput) (StepOutput, error)

// SeedInput is the default input builder: it returns the run's seed
// messages unchanged. Suitable for entry steps.
func SeedInput(outputs map[string]StepOutput) []core.Message {
	return outputs[SeedID].Messages
}

// TextOf returns the output text of the named step in the snapshot, or the
// empty string if the step has not completed. Convenience for input builders.
func TextOf(outputs map[string]StepOutput, stepID string) string {
	return outputs[stepID].Text
}

type step struct {
	id      string
	runner  core.Runner
	inputFn InputFunc
	fn      StepFunc
	deps    []string
}

// Workflow is an immutable, re-runnable DAG of steps. Each Run call is
// independent and does not mutate the Workflow.
type Workflow struct {
	steps  map[string]*step
	order  []string // registration order, for deterministic scheduling
	logger logging.Logger
}

// Builder assembles a Workflow. Steps are registered by unique id; edges
// added with Dependency must reference registered ids by Build time.
type Builder struct {
	steps  map[string]*step
	order  []string
	edges  [][2]string // (stepID, dependsOn)
	logger logging.Logger
	err    error
}

// New starts building a workflow.
func New() *Builder {
	return &Builder{steps: map[string]*step{}}
}

func (b *Builder) addStep(s *step) {
	if b.err != nil {
		return
	}
	if s.id == "" {
		b.err = core.NewConfigError("workflow", "step id must not be empty")
		return
	}
	if s.id == SeedID {
		b.err = core.NewConfigError("workflow", "step id %q is reserved for the seed input", SeedID)
		return
	}
	if _, exists := b.steps[s.id]; exists {
		b.err = core.NewConfigError("workflow", "duplicate step id %q", s.id)
		return
	}
	b.steps[s.id] = s
	b.order = append(b.order, s.id)
}

// Step registers a unit-of-work step. A nil inputFn defaults to SeedInput.
func (b *Builder) Step(id string, r core.Runner, inputFn InputFunc) *Builder {
	if inputFn == nil {
		inputFn = SeedInput
	}
	b.addStep(&step{id: id, runner: r, inputFn: inputFn})
	return b
}

// FunctionStep registers a plain-function step.
func (b *Builder) FunctionStep(id string, fn StepFunc) *Builder {
	b.addStep(&step{id: id, fn: fn})
	return b
}

// Dependency declares that step depends on dependsOn. Both ids must be
// registered by the time Build is called.
func (b *Builder) Dependency(stepID, dependsOn string) *Builder {
	b.edges = append(b.edges, [2]string{stepID, dependsOn})
	return b
}

// Logger sets an optional logger; defaults to a no-op logger.
func (b *Builder) Logger(l logging.Logger) *Builder {
	b.logger = l
	return b
}

// Build validates the graph's references and finalizes the workflow. Cycle
// detection happens at run time; reference errors are caught here.
func (b *Builder) Build() (*Workflow, error) {
	if b.err != nil {
		return nil, b.err
	}

	for _, e := range b.edges {
		stepID, dependsOn := e[0], e[1]
		if _, ok := b.steps[stepID]; !ok {
			return nil, core.NewConfigError("workflow", "dependency declared for unknown step %q", stepID)
		}
		if _, ok := b.steps[dependsOn]; !ok {
			return nil, core.NewConfigError("workflow", "step %q depends on unknown step %q", stepID, dependsOn)
		}
		s := b.steps[stepID]
		if !contains(s.deps, dependsOn) {
			s.deps = append(s.deps, dependsOn)
		}
	}

	return &Workflow{
		steps:  b.steps,
		order:  b.order,
		logger: logging.OrNoOp(b.logger),
	}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Size returns the number of registered steps.
func (w *Workflow) Size() int { return len(w.steps) }

// Dependencies returns a copy of the declared dependencies of the given
// step id, or nil if the step does not exist.
func (w *Workflow) Dependencies(stepID string) []string {
	s, ok := w.steps[stepID]
	if !ok || len(s.deps) == 0 {
		return nil
	}
	deps := make([]string, len(s.deps))
	copy(deps, s.deps)
	return deps
}

// seedOutput wraps the run's seed messages as the synthetic SeedID entry.
// Text carries the last seed message's text so simple builders can use
// TextOf(outputs, SeedID).
func seedOutput(seed []core.Message) StepOutput {
	out := StepOutput{StepID: SeedID, Messages: seed}
	if len(seed) > 0 {
		out.Text = seed[len(seed)-1].Text
	}
	return out
}

// joinTexts concatenates step output texts with newlines; used by
// ConcatInput.
func joinTexts(outputs map[string]StepOutput, ids []string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if o, ok := outputs[id]; ok {
			parts = append(parts, o.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// ConcatInput returns an input builder that concatenates the output texts
// of the named steps, in the given order, into a single user message.
func ConcatInput(stepIDs ...string) InputFunc {
	return func(outputs map[string]StepOutput) []core.Message {
		return []core.Message{core.UserMessage(joinTexts(outputs, stepIDs))}
	}
}
