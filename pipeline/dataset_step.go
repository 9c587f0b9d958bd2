package pipeline

import (
	"context"

	"github.com/jjmacky/fluent-lm/dataset"
	apperrors "github.com/jjmacky/fluent-lm/errors"
	"github.com/jjmacky/fluent-lm/util"
)

// TargetMode controls how a DatasetStep resolves its target field.
type TargetMode string

const (
	// TargetDirect copies the record field named by target into the
	// store under that same name.
	TargetDirect TargetMode = "direct"
	// TargetIndirect reads the record field named by target, treats its
	// value as the name of another record field, and stores that
	// field's value under the target name.
	TargetIndirect TargetMode = "indirect"
)

// DatasetStep binds a pipeline to a dataset. It is only meaningful as
// the first step: the pipeline runs the remaining steps once per
// record, seeding each run's store from that record.
type DatasetStep struct {
	baseStep
	ds         dataset.Dataset
	target     string
	targetMode TargetMode
}

func (s *DatasetStep) Kind() Kind {
	return KindDataset
}

// Execute guards against a dataset step appearing mid-sequence. The
// pipeline drives record iteration itself via seed.
func (s *DatasetStep) Execute(context.Context, *Context) error {
	return apperrors.BuilderValidation("dataset step must be the first step of a pipeline")
}

// seed populates a fresh per-record store: the mapped input field lands
// under the input key (and the output key, so it becomes the current
// text for downstream steps), and the optional target field is resolved
// per the target mode.
func (s *DatasetStep) seed(store *Context, rec dataset.Record) error {
	v, err := rec.Field(s.InputKey())
	if err != nil {
		return err
	}
	store.Add(s.InputKey(), v)
	if s.OutputKey() != s.InputKey() {
		store.Add(s.OutputKey(), v)
	}

	if s.target == "" {
		return nil
	}
	switch s.targetMode {
	case TargetIndirect:
		label, err := rec.Field(s.target)
		if err != nil {
			return err
		}
		tv, err := rec.Field(util.Stringify(label))
		if err != nil {
			return err
		}
		store.Add(s.target, tv)
	default:
		tv, err := rec.Field(s.target)
		if err != nil {
			return err
		}
		store.Add(s.target, tv)
	}
	return nil
}
