package pipeline

import "context"

// ApplyStep runs a user transform over the value at its input key and
// stores the result. The transform receives the value as-is, so it can
// inspect the concrete type rather than a stringified form.
type ApplyStep struct {
	baseStep
	fn Transform
}

func (s *ApplyStep) Kind() Kind {
	return KindApply
}

func (s *ApplyStep) Execute(_ context.Context, store *Context) error {
	v, err := store.Get(s.InputKey())
	if err != nil {
		return err
	}
	out, err := s.fn(v)
	if err != nil {
		return err
	}
	store.Add(s.OutputKey(), out)
	return nil
}
