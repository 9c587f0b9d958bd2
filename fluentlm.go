// Package fluentlm is a convenience layer over LLM provider APIs: a
// one-call CallModel with order-independent arguments, alias-driven
// provider and model resolution, and a fluent pipeline builder for
// chaining prompts, model calls, and transforms over datasets.
package fluentlm

import (
	"context"
	"time"

	"github.com/jjmacky/fluent-lm/config"
	apperrors "github.com/jjmacky/fluent-lm/errors"
	"github.com/jjmacky/fluent-lm/llm"
	"github.com/jjmacky/fluent-lm/logger"
	"github.com/jjmacky/fluent-lm/pipeline"
	"github.com/jjmacky/fluent-lm/provider"
	"github.com/jjmacky/fluent-lm/util"

	// Register the built-in provider dialects.
	_ "github.com/jjmacky/fluent-lm/llm/anthropic"
	_ "github.com/jjmacky/fluent-lm/llm/ollama"
	_ "github.com/jjmacky/fluent-lm/llm/openai"
)

// CallOption names an argument of CallModel explicitly, bypassing
// positional classification.
type CallOption func(*llm.Named)

// WithProvider names the provider for a call.
func WithProvider(name string) CallOption {
	return func(n *llm.Named) { n.Provider = name }
}

// WithModel names the model or alias for a call.
func WithModel(name string) CallOption {
	return func(n *llm.Named) { n.Model = name }
}

// WithPrompt marks text as the prompt. Use it when the prompt would
// otherwise classify as a provider or model token.
func WithPrompt(text string) CallOption {
	return func(n *llm.Named) { n.Prompt = text }
}

// Client is the top-level entry point. It resolves call arguments
// against its configuration, creates provider adapters lazily, and
// hands out pipeline builders wired to itself.
//
// Client implements [llm.Caller], so a pipeline's model calls dispatch
// through the same per-provider adapters as direct CallModel calls.
type Client struct {
	cfg      *config.Config
	catalog  *llm.Catalog
	registry *provider.Registry[llm.Caller]
	log      *logger.Logger
}

// New creates a Client over cfg. A nil cfg loads configuration from
// the usual files and environment, falling back to built-in defaults.
func New(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	c := &Client{
		cfg:      cfg,
		catalog:  llm.NewCatalog(cfg),
		registry: provider.NewRegistry[llm.Caller](),
		log:      logger.WithComponent("client"),
	}
	for _, name := range cfg.ProviderNames() {
		p, _ := cfg.Provider(name)
		block := *p
		c.registry.RegisterFactory(p.Name, func(map[string]any) (llm.Caller, error) {
			adapter, err := llm.New(llm.Config{
				Name:    block.Name,
				Dialect: util.Coalesce(block.Dialect, block.Name),
				BaseURL: block.BaseURL,
				APIKey:  block.APIKey(),
				Model:   block.DefaultModel,
				Timeout: time.Duration(block.TimeoutSeconds) * time.Second,
			})
			if err != nil {
				return nil, err
			}
			return llm.WithRetries(adapter, block.MaxAttempts), nil
		})
	}
	return c, nil
}

// Config returns the live configuration. Changes made through it, such
// as SetAlias or SetDefaultProvider, are visible to subsequent calls.
func (c *Client) Config() *config.Config {
	return c.cfg
}

// SaveConfig persists the current configuration to path.
func (c *Client) SaveConfig(path string) error {
	return c.cfg.Save(path)
}

// Builder returns a pipeline builder whose model calls dispatch
// through this client.
func (c *Client) Builder() *pipeline.Builder {
	return pipeline.NewBuilder(c, c.catalog)
}

// CallModel sends a single prompt to a model and returns the response
// text. Arguments may arrive in any order: each string argument is
// classified as a provider, a model or alias, or the prompt, and
// CallOption values name a slot explicitly. Omitted slots fall back to
// the configured defaults, including the default sample prompt.
//
//	c.CallModel(ctx, "hello")
//	c.CallModel(ctx, "mini", "hello")
//	c.CallModel(ctx, "hello", "gpt-4o-mini", "openai")
//	c.CallModel(ctx, fluentlm.WithPrompt("openai"))
func (c *Client) CallModel(ctx context.Context, args ...any) (string, error) {
	var positional []string
	var named llm.Named
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			positional = append(positional, v)
		case CallOption:
			v(&named)
		default:
			return "", apperrors.UnknownIdentifier(util.Stringify(arg))
		}
	}
	resolved, err := llm.Resolve(c.catalog, positional, named, true)
	if err != nil {
		return "", err
	}
	resp, err := c.Invoke(ctx, llm.Request{
		Provider: resolved.Provider,
		Model:    resolved.Model,
		Prompt:   resolved.Prompt,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Name implements [provider.Provider].
func (c *Client) Name() string {
	return "fluent-lm"
}

// IsAvailable reports whether the request's default provider is reachable.
func (c *Client) IsAvailable(ctx context.Context) bool {
	adapter, err := c.adapterFor("")
	if err != nil {
		return false
	}
	return adapter.IsAvailable(ctx)
}

// Invoke implements [llm.Caller] by dispatching to the per-provider
// adapter named in the request. Provider and model must already be
// resolved; an empty provider falls back to the default.
func (c *Client) Invoke(ctx context.Context, req llm.Request) (*llm.Response, error) {
	adapter, err := c.adapterFor(req.Provider)
	if err != nil {
		return nil, err
	}
	return adapter.Invoke(ctx, req)
}

func (c *Client) adapterFor(name string) (llm.Caller, error) {
	canonical, err := c.catalog.ResolveProvider(name)
	if err != nil {
		return nil, err
	}
	return c.registry.GetOrCreate(canonical, nil)
}
