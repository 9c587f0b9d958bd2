package pipeline

import (
	"context"

	"github.com/jjmacky/fluent-lm/template"
)

// PromptStep renders a prompt template and stores the result. Explicit
// vars bound at build time shadow store values of the same name.
type PromptStep struct {
	baseStep
	template string
	vars     template.Vars
}

func (s *PromptStep) Kind() Kind {
	return KindPrompt
}

func (s *PromptStep) Execute(_ context.Context, store *Context) error {
	scope := template.Merge(s.vars, template.Vars(store.Values()))
	rendered, err := template.Render(s.template, scope)
	if err != nil {
		return err
	}
	store.Add(s.OutputKey(), rendered)
	return nil
}
