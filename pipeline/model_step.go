package pipeline

import (
	"context"

	"github.com/jjmacky/fluent-lm/llm"
	"github.com/jjmacky/fluent-lm/template"
	"github.com/jjmacky/fluent-lm/util"
)

// CallModelStep invokes a language model. The prompt is either the
// value at the step's input key or, when a prompt template was bound,
// the template rendered against the current store. Provider and model
// names resolve through the catalog before the prompt is built, so a
// bad identifier fails without consuming the input.
type CallModelStep struct {
	baseStep
	provider       string
	model          string
	promptTemplate string
	caller         llm.Caller
	catalog        *llm.Catalog
}

func (s *CallModelStep) Kind() Kind {
	return KindCallModel
}

func (s *CallModelStep) Execute(ctx context.Context, store *Context) error {
	providerName, err := s.catalog.ResolveProvider(s.provider)
	if err != nil {
		return err
	}
	model, err := s.catalog.ResolveModel(providerName, s.model)
	if err != nil {
		return err
	}

	var prompt string
	if s.promptTemplate != "" {
		prompt, err = template.Render(s.promptTemplate, template.Vars(store.Values()))
		if err != nil {
			return err
		}
	} else {
		v, err := store.Get(s.InputKey())
		if err != nil {
			return err
		}
		prompt = util.Stringify(v)
	}

	resp, err := s.caller.Invoke(ctx, llm.Request{
		Provider: providerName,
		Model:    model,
		Prompt:   prompt,
	})
	if err != nil {
		return err
	}
	store.Add(s.OutputKey(), resp.Content)
	return nil
}
