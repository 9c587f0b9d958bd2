package pipeline

import (
	"context"
	"time"

	"github.com/jjmacky/fluent-lm/logger"
	"github.com/jjmacky/fluent-lm/util"
)

// RunState describes the lifecycle of one pipeline run.
type RunState string

const (
	StateIdle      RunState = "idle"
	StateRunning   RunState = "running"
	StateCompleted RunState = "completed"
	StateFailed    RunState = "failed"
)

// Result captures one finished run. The pipeline itself holds no run
// state; each Result is independent.
type Result struct {
	// RunID identifies the run in log output.
	RunID string
	// State is StateCompleted or StateFailed.
	State RunState
	// Output is the value under the last step's output key, or a []any
	// of per-record values for dataset-bound runs. Nil on failure.
	Output any
	// Records is the number of dataset records processed.
	Records int
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is the error that failed the run, unmodified.
	Err error
}

// Pipeline is an immutable sequence of steps produced by a Builder.
// Execute may be called any number of times; every run (and, when a
// dataset is bound, every record) gets its own fresh store, so runs
// never observe each other's state.
type Pipeline struct {
	steps   []Step
	binding *DatasetStep
	log     *logger.Logger
}

// Execute runs the pipeline with an empty initial store.
func (p *Pipeline) Execute(ctx context.Context) (any, error) {
	return p.ExecuteWith(ctx, nil)
}

// ExecuteWith runs the pipeline, seeding each run's store from initial.
//
// Without a dataset binding the result is the value left under the last
// step's output key. With a binding the pipeline runs once per record
// and returns a []any of per-record results in dataset order. A failure
// in any step aborts the whole run: no partial result slice is
// returned, and the step's error propagates unmodified.
func (p *Pipeline) ExecuteWith(ctx context.Context, initial map[string]any) (any, error) {
	res := p.Run(ctx, initial)
	return res.Output, res.Err
}

// Run is ExecuteWith returning the full run record: state, run ID,
// record count, and duration alongside the output or error.
func (p *Pipeline) Run(ctx context.Context, initial map[string]any) *Result {
	res := &Result{RunID: util.NewRunID(), State: StateRunning}
	log := p.log.WithFields(map[string]interface{}{logger.FieldRunID: res.RunID})
	start := time.Now()
	log.Debug("pipeline run started", logger.Fields("steps", p.Steps(), "state", string(res.State)))

	if p.binding == nil {
		res.Output, res.Err = p.runOnce(ctx, log, initial)
	} else {
		res.Output, res.Records, res.Err = p.runDataset(ctx, log, initial)
	}
	res.Duration = time.Since(start)

	if res.Err != nil {
		res.State = StateFailed
		res.Output = nil
		log.WithError(res.Err).Error("pipeline run failed", logger.Fields("state", string(res.State)))
		return res
	}
	res.State = StateCompleted
	log.Debug("pipeline run completed", logger.Fields(
		"state", string(res.State),
		logger.FieldDuration, res.Duration.Milliseconds(),
	))
	return res
}

// Steps returns the number of steps, counting a dataset binding.
func (p *Pipeline) Steps() int {
	n := len(p.steps)
	if p.binding != nil {
		n++
	}
	return n
}

func (p *Pipeline) runOnce(ctx context.Context, log *logger.Logger, initial map[string]any) (any, error) {
	store := NewContext(initial)
	if err := p.runSteps(ctx, log, store); err != nil {
		return nil, err
	}
	return store.Get(p.resultKey())
}

func (p *Pipeline) runDataset(ctx context.Context, log *logger.Logger, initial map[string]any) (any, int, error) {
	ds := p.binding.ds
	results := make([]any, 0, ds.Len())
	for i := 0; i < ds.Len(); i++ {
		recLog := log.WithFields(map[string]interface{}{logger.FieldRecord: i})
		store := NewContext(initial)
		if err := p.binding.seed(store, ds.Record(i)); err != nil {
			return nil, i, err
		}
		if err := p.runSteps(ctx, recLog, store); err != nil {
			return nil, i, err
		}
		result, err := store.Get(p.resultKey())
		if err != nil {
			return nil, i, err
		}
		results = append(results, result)
	}
	return results, ds.Len(), nil
}

func (p *Pipeline) runSteps(ctx context.Context, log *logger.Logger, store *Context) error {
	for i, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		stepLog := log.WithFields(map[string]interface{}{
			logger.FieldStep:      string(step.Kind()),
			logger.FieldStepIndex: i,
		})
		stepLog.Debug("step started")
		if err := step.Execute(ctx, store); err != nil {
			return err
		}
		stepLog.Debug("step completed", logger.Fields(logger.FieldKey, step.OutputKey()))
	}
	return nil
}

// resultKey is the output key of the last step, falling back to the
// dataset binding for a dataset-only pipeline.
func (p *Pipeline) resultKey() string {
	if len(p.steps) > 0 {
		return p.steps[len(p.steps)-1].OutputKey()
	}
	return p.binding.OutputKey()
}
