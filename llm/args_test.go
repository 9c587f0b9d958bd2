package llm

import (
	"testing"

	"github.com/jjmacky/fluent-lm/errors"
)

func TestResolve_OrderIndependence(t *testing.T) {
	cat := testCatalog()
	prompt := "What is the capital of France?"

	orderings := [][]string{
		{"openai", "mini", prompt},
		{prompt, "mini", "openai"},
		{"mini", prompt, "openai"},
		{prompt, "openai", "mini"},
	}
	want := Resolved{Provider: "openai", Model: "gpt-4o-mini", Prompt: prompt}
	for _, args := range orderings {
		got, err := Resolve(cat, args, Named{}, false)
		if err != nil {
			t.Fatalf("args %v: %v", args, err)
		}
		if got != want {
			t.Errorf("args %v: got %+v, want %+v", args, got, want)
		}
	}
}

func TestResolve_NamedEqualsPositional(t *testing.T) {
	cat := testCatalog()
	prompt := "hello there"

	fromPositional, err := Resolve(cat, []string{"openai", "mini", prompt}, Named{}, false)
	if err != nil {
		t.Fatal(err)
	}
	fromNamed, err := Resolve(cat, nil, Named{Provider: "openai", Model: "mini", Prompt: prompt}, false)
	if err != nil {
		t.Fatal(err)
	}
	if fromPositional != fromNamed {
		t.Errorf("positional %+v != named %+v", fromPositional, fromNamed)
	}
}

func TestResolve_AliasEquivalence(t *testing.T) {
	cat := testCatalog()
	prompt := "summarize this"

	viaCanonical, err := Resolve(cat, []string{"openai", "gpt-4o-mini", prompt}, Named{}, false)
	if err != nil {
		t.Fatal(err)
	}
	viaAlias, err := Resolve(cat, []string{"openai", "mini", prompt}, Named{}, false)
	if err != nil {
		t.Fatal(err)
	}
	viaAliasOnly, err := Resolve(cat, []string{"mini", prompt}, Named{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if viaCanonical != viaAlias || viaAlias != viaAliasOnly {
		t.Errorf("expected equal resolutions: %+v / %+v / %+v", viaCanonical, viaAlias, viaAliasOnly)
	}
}

func TestResolve_ModelImpliesProvider(t *testing.T) {
	cat := testCatalog()
	got, err := Resolve(cat, []string{"haiku", "write a poem"}, Named{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Provider != "anthropic" {
		t.Errorf("expected provider implied by model, got %s", got.Provider)
	}
	if got.Model != "claude-3-5-haiku-latest" {
		t.Errorf("got %s", got.Model)
	}
}

func TestResolve_DefaultFallback(t *testing.T) {
	cat := testCatalog()
	got, err := Resolve(cat, nil, Named{Prompt: "just a prompt"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Provider != "openai" {
		t.Errorf("expected default provider, got %s", got.Provider)
	}
	if got.Model != "gpt-4o-mini" {
		t.Errorf("expected default model of default provider, got %s", got.Model)
	}
}

func TestResolve_ProviderOnly_UsesItsDefaultModel(t *testing.T) {
	cat := testCatalog()
	got, err := Resolve(cat, []string{"anthropic", "hi"}, Named{}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Model != "claude-3-5-haiku-latest" {
		t.Errorf("expected anthropic's default model, got %s", got.Model)
	}
}

func TestResolve_NamedOverridesPositional(t *testing.T) {
	cat := testCatalog()
	got, err := Resolve(cat, []string{"some prompt"}, Named{Provider: "anthropic", Model: "haiku"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Provider != "anthropic" || got.Model != "claude-3-5-haiku-latest" {
		t.Errorf("got %+v", got)
	}
}

func TestResolve_AliasTokenNeverPrompt(t *testing.T) {
	cat := testCatalog()
	// "mini" matches an alias, so it is consumed as the model and no prompt remains.
	_, err := Resolve(cat, []string{"mini"}, Named{}, false)
	if !errors.IsCode(err, errors.ErrCodeMissingPrompt) {
		t.Fatalf("expected MISSING_PROMPT, got %v", err)
	}

	// The keyword forces prompt interpretation of the ambiguous token.
	got, err := Resolve(cat, nil, Named{Prompt: "mini"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Prompt != "mini" {
		t.Errorf("expected forced prompt, got %q", got.Prompt)
	}
}

func TestResolve_DefaultPromptOnlyWhenAllowed(t *testing.T) {
	cat := testCatalog()

	if _, err := Resolve(cat, nil, Named{}, false); !errors.IsCode(err, errors.ErrCodeMissingPrompt) {
		t.Fatalf("expected MISSING_PROMPT, got %v", err)
	}

	got, err := Resolve(cat, nil, Named{}, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Prompt != cat.DefaultPrompt() {
		t.Errorf("expected default prompt, got %q", got.Prompt)
	}
}

func TestResolve_TwoFreeTextTokens(t *testing.T) {
	cat := testCatalog()
	_, err := Resolve(cat, []string{"first free text", "second free text"}, Named{}, false)
	if !errors.IsCode(err, errors.ErrCodeUnknownIdentifier) {
		t.Fatalf("expected UNKNOWN_IDENTIFIER, got %v", err)
	}
}

func TestResolve_DuplicateProviderTokens(t *testing.T) {
	cat := testCatalog()
	_, err := Resolve(cat, []string{"openai", "anthropic", "p"}, Named{}, false)
	if !errors.IsCode(err, errors.ErrCodeUnknownIdentifier) {
		t.Fatalf("expected UNKNOWN_IDENTIFIER, got %v", err)
	}
}

func TestResolve_ModelFromWrongProvider(t *testing.T) {
	cat := testCatalog()
	_, err := Resolve(cat, []string{"openai", "haiku", "p"}, Named{}, false)
	if !errors.IsCode(err, errors.ErrCodeUnknownModel) {
		t.Fatalf("expected UNKNOWN_MODEL, got %v", err)
	}
}

func TestResolve_IsPure(t *testing.T) {
	cat := testCatalog()
	args := []string{"openai", "mini", "same prompt"}
	first, err := Resolve(cat, args, Named{}, false)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := Resolve(cat, args, Named{}, false)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("resolution not deterministic: %+v vs %+v", first, again)
		}
	}
}
