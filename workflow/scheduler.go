package workflow

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/gauss/core"
)

// Run executes the workflow against the seed input and returns the mapping
// from step id to output, one entry per step.
//
// Scheduling: the set of ready steps (all dependencies completed) is
// dispatched concurrently; as each batch completes, readiness is recomputed
// for the remaining steps. Two steps with no dependency relationship may run
// concurrently; a step never starts before all of its dependencies have
// completed successfully. The first step failure observed aborts the run;
// steps whose dependencies were never satisfied are simply never started.
// If no step is ready while some remain pending, the remaining steps form a
// dependency cycle and a structural error naming them is returned.
func (w *Workflow) Run(ctx context.Context, seed []core.Message) (map[string]StepOutput, error) {
	start := time.Now()

	completed := map[string]StepOutput{SeedID: seedOutput(seed)}
	pending := make(map[string]struct{}, len(w.steps))
	for id := range w.steps {
		pending[id] = struct{}{}
	}

	for len(pending) > 0 {
		ready := w.readySteps(pending, completed)
		if len(ready) == 0 {
			stuck := make([]string, 0, len(pending))
			for id := range pending {
				stuck = append(stuck, id)
			}
			sort.Strings(stuck)
			return nil, core.NewCycleError("workflow",
				"circular dependency among steps: %s", strings.Join(stuck, ", "))
		}

		if err := w.runBatch(ctx, ready, completed); err != nil {
			w.logger.Debug("workflow run failed",
				"completed", len(completed)-1,
				"duration", time.Since(start),
				"error", err,
			)
			return nil, err
		}
		for _, id := range ready {
			delete(pending, id)
		}
	}

	delete(completed, SeedID)
	w.logger.Debug("workflow run completed",
		"steps", len(completed),
		"duration", time.Since(start),
	)
	return completed, nil
}

// readySteps returns, in registration order, every pending step whose
// dependencies have all completed.
func (w *Workflow) readySteps(pending map[string]struct{}, completed map[string]StepOutput) []string {
	var ready []string
	for _, id := range w.order {
		if _, isPending := pending[id]; !isPending {
			continue
		}
		s := w.steps[id]
		satisfied := true
		for _, dep := range s.deps {
			if _, ok := completed[dep]; !ok {
				satisfied = false
				break
			}
		}
		if satisfied {
			ready = append(ready, id)
		}
	}
	return ready
}

// runBatch executes one batch of ready steps concurrently and merges their
// outputs into completed. Every input builder in the batch observes the
// same read-only snapshot, which by construction contains exactly the steps
// completed before the batch started.
func (w *Workflow) runBatch(ctx context.Context, ready []string, completed map[string]StepOutput) error {
	snapshot := make(map[string]StepOutput, len(completed))
	for k, v := range completed {
		snapshot[k] = v
	}

	results := make([]StepOutput, len(ready))

	var g errgroup.Group
	for i, id := range ready {
		g.Go(func() error {
			out, err := w.runStep(ctx, w.steps[id], snapshot)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range results {
		completed[out.StepID] = out
	}
	return nil
}

func (w *Workflow) runStep(ctx context.Context, s *step, snapshot map[string]StepOutput) (StepOutput, error) {
	if s.fn != nil {
		out, err := s.fn(ctx, snapshot)
		if err != nil {
			return StepOutput{}, core.NewAgentError(s.id, err)
		}
		out.StepID = s.id
		return out, nil
	}

	messages := s.inputFn(snapshot)
	out, err := s.runner.Run(ctx, messages)
	if err != nil {
		return StepOutput{}, core.NewAgentError(s.id, err)
	}
	return StepOutput{
		StepID:   s.id,
		Text:     out.Text,
		Messages: out.Messages,
		Usage:    out.Usage,
		Data:     out.Data,
	}, nil
}
