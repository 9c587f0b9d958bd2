package llm

import (
	"testing"

	"github.com/jjmacky/fluent-lm/config"
	"github.com/jjmacky/fluent-lm/errors"
)

func testCatalog() *Catalog {
	return NewCatalog(config.Default())
}

func TestCatalog_ResolveProvider(t *testing.T) {
	cat := testCatalog()

	got, err := cat.ResolveProvider("OpenAI")
	if err != nil {
		t.Fatal(err)
	}
	if got != "openai" {
		t.Errorf("expected openai, got %s", got)
	}

	got, err = cat.ResolveProvider("")
	if err != nil {
		t.Fatal(err)
	}
	if got != "openai" {
		t.Errorf("expected default provider, got %s", got)
	}

	if _, err := cat.ResolveProvider("mistral"); !errors.IsCode(err, errors.ErrCodeUnknownProvider) {
		t.Fatalf("expected UNKNOWN_PROVIDER, got %v", err)
	}
}

func TestCatalog_ResolveModel_Alias(t *testing.T) {
	cat := testCatalog()
	got, err := cat.ResolveModel("openai", "mini")
	if err != nil {
		t.Fatal(err)
	}
	if got != "gpt-4o-mini" {
		t.Errorf("expected gpt-4o-mini, got %s", got)
	}
}

func TestCatalog_ResolveModel_CanonicalName(t *testing.T) {
	cat := testCatalog()
	got, err := cat.ResolveModel("openai", "GPT-4o-Mini")
	if err != nil {
		t.Fatal(err)
	}
	if got != "gpt-4o-mini" {
		t.Errorf("expected canonical casing, got %s", got)
	}
}

func TestCatalog_ResolveModel_Default(t *testing.T) {
	cat := testCatalog()
	got, err := cat.ResolveModel("anthropic", "")
	if err != nil {
		t.Fatal(err)
	}
	if got != "claude-3-5-haiku-latest" {
		t.Errorf("expected provider default model, got %s", got)
	}
}

func TestCatalog_ResolveModel_Unknown(t *testing.T) {
	cat := testCatalog()
	if _, err := cat.ResolveModel("openai", "claude-3-opus-latest"); !errors.IsCode(err, errors.ErrCodeUnknownModel) {
		t.Fatalf("expected UNKNOWN_MODEL for other provider's model, got %v", err)
	}
}

func TestCatalog_ModelToken(t *testing.T) {
	cat := testCatalog()
	prov, model, ok := cat.ModelToken("haiku")
	if !ok {
		t.Fatal("expected haiku to classify as model token")
	}
	if prov != "anthropic" || model != "claude-3-5-haiku-latest" {
		t.Errorf("got %s/%s", prov, model)
	}

	if _, _, ok := cat.ModelToken("what is the capital of France?"); ok {
		t.Error("expected free text not to classify as model")
	}
}

func TestCatalog_IsProviderToken(t *testing.T) {
	cat := testCatalog()
	if !cat.IsProviderToken("ollama") {
		t.Error("expected ollama to be a provider token")
	}
	if cat.IsProviderToken("llama") {
		t.Error("expected llama (a model alias) not to be a provider token")
	}
}

func TestCatalog_SeesStickyUpdates(t *testing.T) {
	cfg := config.Default()
	cat := NewCatalog(cfg)

	if _, _, ok := cat.ModelToken("tiny"); ok {
		t.Fatal("alias should not exist yet")
	}
	if err := cfg.SetAlias("openai", "tiny", "gpt-4o-mini"); err != nil {
		t.Fatal(err)
	}
	prov, model, ok := cat.ModelToken("tiny")
	if !ok || prov != "openai" || model != "gpt-4o-mini" {
		t.Errorf("expected catalog to see the new alias, got %s/%s ok=%v", prov, model, ok)
	}
}

func TestCatalog_Defaults(t *testing.T) {
	cat := testCatalog()
	if cat.DefaultProvider() != "openai" {
		t.Errorf("got %s", cat.DefaultProvider())
	}
	if cat.DefaultPrompt() != config.DefaultPrompt {
		t.Errorf("got %q", cat.DefaultPrompt())
	}
	model, err := cat.DefaultModel("ollama")
	if err != nil {
		t.Fatal(err)
	}
	if model != "llama3" {
		t.Errorf("got %s", model)
	}
}
