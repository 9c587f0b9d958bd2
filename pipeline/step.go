package pipeline

import (
	"context"

	"github.com/jjmacky/fluent-lm/util"
)

// Kind identifies the behavior of a pipeline step.
type Kind string

const (
	KindPrompt    Kind = "prompt"
	KindCallModel Kind = "call_model"
	KindApply     Kind = "apply"
	KindDataset   Kind = "dataset"
)

// Transform is a user-supplied function applied by an ApplyStep to the
// value at its input key. Errors returned by a Transform abort the run
// and propagate to the caller unmodified.
type Transform func(value any) (any, error)

// Step is a single unit of work in a pipeline. Execute reads from and
// writes to the run's store; any returned error aborts the run.
type Step interface {
	Kind() Kind
	InputKey() string
	OutputKey() string
	Execute(ctx context.Context, store *Context) error
}

// baseStep carries the input and output key configuration shared by
// all step kinds. Empty keys fall back to KeyText.
type baseStep struct {
	inputKey  string
	outputKey string
}

func (s baseStep) InputKey() string {
	return util.Coalesce(s.inputKey, KeyText)
}

func (s baseStep) OutputKey() string {
	return util.Coalesce(s.outputKey, KeyText)
}
