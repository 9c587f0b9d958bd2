package pipeline

import (
	"github.com/jjmacky/fluent-lm/dataset"
	apperrors "github.com/jjmacky/fluent-lm/errors"
	"github.com/jjmacky/fluent-lm/llm"
	"github.com/jjmacky/fluent-lm/logger"
	"github.com/jjmacky/fluent-lm/template"
)

// stepSettings collects the per-step configuration shared by the step
// options. Each builder method reads only the fields relevant to its
// step kind.
type stepSettings struct {
	vars           template.Vars
	provider       string
	model          string
	promptTemplate string
	inputKey       string
	outputKey      string
	target         string
	targetMode     TargetMode
}

// StepOption configures a single step added through the Builder.
type StepOption func(*stepSettings)

// WithVars binds explicit template variables to a prompt step. Bound
// vars shadow store values of the same name at render time.
func WithVars(vars map[string]any) StepOption {
	return func(s *stepSettings) { s.vars = template.Vars(vars) }
}

// WithProvider pins a model call to the named provider or alias.
func WithProvider(name string) StepOption {
	return func(s *stepSettings) { s.provider = name }
}

// WithModel pins a model call to the named model or alias.
func WithModel(name string) StepOption {
	return func(s *stepSettings) { s.model = name }
}

// WithPromptTemplate makes a model call render its prompt from the
// given template against the current store instead of reading the
// input key.
func WithPromptTemplate(tmpl string) StepOption {
	return func(s *stepSettings) { s.promptTemplate = tmpl }
}

// WithInputKey overrides the store key a step reads from.
func WithInputKey(key string) StepOption {
	return func(s *stepSettings) { s.inputKey = key }
}

// WithOutputKey overrides the store key a step writes to.
func WithOutputKey(key string) StepOption {
	return func(s *stepSettings) { s.outputKey = key }
}

// WithTarget names a record field a dataset binding should copy into
// each per-record store.
func WithTarget(field string) StepOption {
	return func(s *stepSettings) { s.target = field }
}

// WithTargetMode sets how the dataset target field is resolved.
func WithTargetMode(mode TargetMode) StepOption {
	return func(s *stepSettings) { s.targetMode = mode }
}

// Builder assembles a Pipeline step by step. Methods record the first
// configuration error and turn the rest of the chain into no-ops, so a
// chain can be written fluently and checked once at Build.
type Builder struct {
	steps   []Step
	binding *DatasetStep
	caller  llm.Caller
	catalog *llm.Catalog
	log     *logger.Logger
	err     error
}

// NewBuilder returns a Builder whose model calls go through caller and
// resolve names through catalog.
func NewBuilder(caller llm.Caller, catalog *llm.Catalog) *Builder {
	return &Builder{
		caller:  caller,
		catalog: catalog,
		log:     logger.WithComponent("pipeline"),
	}
}

// WithLogger replaces the logger used by built pipelines.
func (b *Builder) WithLogger(log *logger.Logger) *Builder {
	if log != nil {
		b.log = log
	}
	return b
}

// WithPrompt appends a prompt step rendering tmpl. Template syntax is
// checked immediately; unknown variables are only detectable at run
// time, once the store is populated.
func (b *Builder) WithPrompt(tmpl string, opts ...StepOption) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := template.Placeholders(tmpl); err != nil {
		b.err = err
		return b
	}
	s := applyOptions(opts)
	b.steps = append(b.steps, &PromptStep{
		baseStep: baseStep{inputKey: s.inputKey, outputKey: s.outputKey},
		template: tmpl,
		vars:     s.vars,
	})
	return b
}

// CallModel appends a model-call step. With no options the step sends
// the current text to the default provider's default model.
func (b *Builder) CallModel(opts ...StepOption) *Builder {
	if b.err != nil {
		return b
	}
	s := applyOptions(opts)
	if s.promptTemplate != "" {
		if _, err := template.Placeholders(s.promptTemplate); err != nil {
			b.err = err
			return b
		}
	}
	b.steps = append(b.steps, &CallModelStep{
		baseStep:       baseStep{inputKey: s.inputKey, outputKey: s.outputKey},
		provider:       s.provider,
		model:          s.model,
		promptTemplate: s.promptTemplate,
		caller:         b.caller,
		catalog:        b.catalog,
	})
	return b
}

// Apply appends a transform step running fn over the input key's value.
func (b *Builder) Apply(fn Transform, opts ...StepOption) *Builder {
	if b.err != nil {
		return b
	}
	if fn == nil {
		b.err = apperrors.BuilderValidation("apply requires a non-nil transform")
		return b
	}
	s := applyOptions(opts)
	b.steps = append(b.steps, &ApplyStep{
		baseStep: baseStep{inputKey: s.inputKey, outputKey: s.outputKey},
		fn:       fn,
	})
	return b
}

// UsingDataset binds the pipeline to ds, running the subsequent steps
// once per record. inputKey names the record field seeding each run's
// store. It must be the first call on the builder and may appear only
// once.
func (b *Builder) UsingDataset(ds dataset.Dataset, inputKey string, opts ...StepOption) *Builder {
	if b.err != nil {
		return b
	}
	if ds == nil {
		b.err = apperrors.BuilderValidation("using_dataset requires a dataset")
		return b
	}
	if b.binding != nil {
		b.err = apperrors.BuilderValidation("using_dataset may only appear once")
		return b
	}
	if len(b.steps) > 0 {
		b.err = apperrors.BuilderValidation("using_dataset must be the first step")
		return b
	}
	s := applyOptions(opts)
	switch s.targetMode {
	case "", TargetDirect, TargetIndirect:
	default:
		b.err = apperrors.BuilderValidation("unknown target mode: " + string(s.targetMode))
		return b
	}
	if s.targetMode == TargetIndirect && s.target == "" {
		b.err = apperrors.BuilderValidation("indirect target mode requires a target field")
		return b
	}
	b.binding = &DatasetStep{
		baseStep:   baseStep{inputKey: inputKey, outputKey: s.outputKey},
		ds:         ds,
		target:     s.target,
		targetMode: s.targetMode,
	}
	return b
}

// Err returns the first configuration error recorded so far.
func (b *Builder) Err() error {
	return b.err
}

// Build validates the accumulated configuration and returns an
// immutable Pipeline. Build is idempotent: calling it again returns an
// equivalent pipeline, and later builder calls do not affect pipelines
// already built.
func (b *Builder) Build() (*Pipeline, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.steps) == 0 && b.binding == nil {
		return nil, apperrors.BuilderValidation("pipeline has no steps")
	}
	steps := make([]Step, len(b.steps))
	copy(steps, b.steps)
	return &Pipeline{
		steps:   steps,
		binding: b.binding,
		log:     b.log,
	}, nil
}

func applyOptions(opts []StepOption) stepSettings {
	var s stepSettings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
