package workflow

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hupe1980/gauss/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepRunner is a lightweight unit of work used for scheduler tests.
type stepRunner struct {
	name     string
	text     string
	err      error
	delay    time.Duration
	dispatch atomic.Int32

	mu        sync.Mutex
	lastInput []core.Message
}

func newStepRunner(name, text string) *stepRunner {
	return &stepRunner{name: name, text: text}
}

func (r *stepRunner) Name() string { return r.name }

func (r *stepRunner) Run(ctx context.Context, messages []core.Message) (*core.Output, error) {
	r.dispatch.Add(1)
	r.mu.Lock()
	r.lastInput = append([]core.Message(nil), messages...)
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return &core.Output{Text: r.text}, nil
}

func (r *stepRunner) input() []core.Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastInput
}

func TestBuildDuplicateStepID(t *testing.T) {
	_, err := New().
		Step("a", newStepRunner("a", "x"), nil).
		Step("a", newStepRunner("a", "y"), nil).
		Build()

	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.ErrKindConfig))
	assert.Contains(t, err.Error(), "duplicate step id")
}

func TestBuildReservedSeedID(t *testing.T) {
	_, err := New().Step(SeedID, newStepRunner("s", "x"), nil).Build()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reserved")
}

func TestBuildEmptyStepID(t *testing.T) {
	_, err := New().Step("", newStepRunner("s", "x"), nil).Build()

	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.ErrKindConfig))
}

func TestBuildUnknownDependencyReference(t *testing.T) {
	_, err := New().
		Step("a", newStepRunner("a", "x"), nil).
		Dependency("a", "ghost").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown step "ghost"`)

	_, err = New().
		Step("a", newStepRunner("a", "x"), nil).
		Dependency("ghost", "a").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown step "ghost"`)
}

func TestRunDiamond(t *testing.T) {
	a := newStepRunner("a", "out-a")
	b := newStepRunner("b", "out-b")
	c := newStepRunner("c", "out-c")

	var observed map[string]StepOutput
	wf, err := New().
		Step("a", a, nil).
		Step("b", b, nil).
		Step("c", c, func(outputs map[string]StepOutput) []core.Message {
			observed = outputs
			return ConcatInput("a", "b")(outputs)
		}).
		Dependency("c", "a").
		Dependency("c", "b").
		Build()
	require.NoError(t, err)

	results, err := wf.Run(context.Background(), []core.Message{core.UserMessage("seed")})
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, "out-a", results["a"].Text)
	assert.Equal(t, "out-b", results["b"].Text)
	assert.Equal(t, "out-c", results["c"].Text)

	// c's input builder saw both dependency outputs.
	assert.Equal(t, "out-a", TextOf(observed, "a"))
	assert.Equal(t, "out-b", TextOf(observed, "b"))
	assert.Equal(t, []core.Message{core.UserMessage("out-a\nout-b")}, c.input())
}

func TestRunSeedVisibleToEntrySteps(t *testing.T) {
	seed := []core.Message{core.SystemMessage("sys"), core.UserMessage("the seed")}
	a := newStepRunner("a", "out-a")

	var snapshot map[string]StepOutput
	wf, err := New().
		Step("a", a, func(outputs map[string]StepOutput) []core.Message {
			snapshot = outputs
			return SeedInput(outputs)
		}).
		Build()
	require.NoError(t, err)

	results, err := wf.Run(context.Background(), seed)
	require.NoError(t, err)

	// The snapshot for an entry step holds only the synthetic seed entry.
	require.Len(t, snapshot, 1)
	assert.Equal(t, seed, snapshot[SeedID].Messages)
	assert.Equal(t, "the seed", snapshot[SeedID].Text)
	assert.Equal(t, seed, a.input())

	// The seed entry never leaks into the result mapping.
	require.Len(t, results, 1)
	_, hasSeed := results[SeedID]
	assert.False(t, hasSeed)
}

func TestRunDefaultInputIsSeed(t *testing.T) {
	seed := []core.Message{core.UserMessage("hello")}
	a := newStepRunner("a", "out-a")

	wf, err := New().Step("a", a, nil).Build()
	require.NoError(t, err)

	_, err = wf.Run(context.Background(), seed)
	require.NoError(t, err)
	assert.Equal(t, seed, a.input())
}

func TestRunCycleReturnsStructuralError(t *testing.T) {
	a := newStepRunner("a", "x")
	b := newStepRunner("b", "y")

	wf, err := New().
		Step("a", a, nil).
		Step("b", b, nil).
		Dependency("a", "b").
		Dependency("b", "a").
		Build()
	require.NoError(t, err)

	results, err := wf.Run(context.Background(), []core.Message{core.UserMessage("seed")})
	require.Nil(t, results, "a cycle must never yield a partial or empty success")
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.ErrKindCycle))
	assert.Contains(t, err.Error(), "a, b")

	assert.Equal(t, int32(0), a.dispatch.Load(), "no step of the cycle may execute")
	assert.Equal(t, int32(0), b.dispatch.Load())
}

func TestRunCycleAfterProgress(t *testing.T) {
	entry := newStepRunner("entry", "done")
	c := newStepRunner("c", "x")
	d := newStepRunner("d", "y")

	wf, err := New().
		Step("entry", entry, nil).
		Step("c", c, nil).
		Step("d", d, nil).
		Dependency("c", "entry").
		Dependency("c", "d").
		Dependency("d", "c").
		Build()
	require.NoError(t, err)

	results, err := wf.Run(context.Background(), nil)
	require.Nil(t, results)
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.ErrKindCycle))
	assert.Contains(t, err.Error(), "c, d")
	assert.NotContains(t, err.Error(), "entry")

	assert.Equal(t, int32(1), entry.dispatch.Load())
}

func TestRunStepFailureSkipsDependents(t *testing.T) {
	a := newStepRunner("a", "")
	a.err = errors.New("model unavailable")
	b := newStepRunner("b", "never")

	wf, err := New().
		Step("a", a, nil).
		Step("b", b, nil).
		Dependency("b", "a").
		Build()
	require.NoError(t, err)

	results, err := wf.Run(context.Background(), nil)
	require.Nil(t, results)
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.ErrKindAgent))
	assert.Contains(t, err.Error(), `"a"`)

	assert.Equal(t, int32(0), b.dispatch.Load(), "dependent of a failed step is never started")
}

func TestRunIndependentStepsRunConcurrently(t *testing.T) {
	// Two independent slow steps; if they were serialized the run would
	// take at least twice the delay.
	a := newStepRunner("a", "x")
	a.delay = 50 * time.Millisecond
	b := newStepRunner("b", "y")
	b.delay = 50 * time.Millisecond

	wf, err := New().Step("a", a, nil).Step("b", b, nil).Build()
	require.NoError(t, err)

	start := time.Now()
	_, err = wf.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 90*time.Millisecond)
}

func TestRunDependencyCompletesBeforeDependentStarts(t *testing.T) {
	var aDone atomic.Bool

	wf, err := New().
		FunctionStep("a", func(ctx context.Context, _ map[string]StepOutput) (StepOutput, error) {
			time.Sleep(20 * time.Millisecond)
			aDone.Store(true)
			return StepOutput{Text: "x"}, nil
		}).
		FunctionStep("b", func(ctx context.Context, outputs map[string]StepOutput) (StepOutput, error) {
			if !aDone.Load() {
				return StepOutput{}, errors.New("b started before its dependency completed")
			}
			return StepOutput{Text: TextOf(outputs, "a") + "+y"}, nil
		}).
		Dependency("b", "a").
		Build()
	require.NoError(t, err)

	results, err := wf.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "x+y", results["b"].Text)
}

func TestRunFunctionStep(t *testing.T) {
	wf, err := New().
		FunctionStep("calc", func(_ context.Context, _ map[string]StepOutput) (StepOutput, error) {
			return StepOutput{Text: "42", Data: map[string]any{"value": 42}}, nil
		}).
		Build()
	require.NoError(t, err)

	results, err := wf.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "calc", results["calc"].StepID)
	assert.Equal(t, "42", results["calc"].Text)
	assert.Equal(t, 42, results["calc"].Data["value"])
}

func TestRunFunctionStepError(t *testing.T) {
	wf, err := New().
		FunctionStep("bad", func(_ context.Context, _ map[string]StepOutput) (StepOutput, error) {
			return StepOutput{}, errors.New("boom")
		}).
		Build()
	require.NoError(t, err)

	_, err = wf.Run(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, core.IsKind(err, core.ErrKindAgent))
	assert.Contains(t, err.Error(), `"bad"`)
}

func TestRunIsRepeatable(t *testing.T) {
	a := newStepRunner("a", "same")
	wf, err := New().Step("a", a, nil).Build()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		results, err := wf.Run(context.Background(), []core.Message{core.UserMessage("seed")})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "same", results["a"].Text)
	}
	assert.Equal(t, int32(3), a.dispatch.Load())
}

func TestDependencies(t *testing.T) {
	wf, err := New().
		Step("a", newStepRunner("a", "x"), nil).
		Step("b", newStepRunner("b", "y"), nil).
		Dependency("b", "a").
		Dependency("b", "a"). // duplicate edges collapse
		Build()
	require.NoError(t, err)

	assert.Equal(t, 2, wf.Size())
	assert.Equal(t, []string{"a"}, wf.Dependencies("b"))
	assert.Nil(t, wf.Dependencies("a"))
	assert.Nil(t, wf.Dependencies("ghost"))
}
