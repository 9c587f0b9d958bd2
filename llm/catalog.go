package llm

import (
	"strings"

	"github.com/jjmacky/fluent-lm/config"
	"github.com/jjmacky/fluent-lm/errors"
)

// Catalog is the alias/config collaborator: it resolves provider names and
// model names or aliases against the configured alias tables, and exposes the
// configured defaults. All matching is case-insensitive.
//
// A Catalog reads the config live, so sticky configuration updates made
// between executions are visible without rebuilding it.
type Catalog struct {
	cfg *config.Config
}

// NewCatalog creates a catalog over the given configuration.
func NewCatalog(cfg *config.Config) *Catalog {
	return &Catalog{cfg: cfg}
}

// DefaultProvider returns the process-wide default provider name.
func (c *Catalog) DefaultProvider() string {
	return c.cfg.DefaultProvider
}

// DefaultPrompt returns the configured default sample prompt.
func (c *Catalog) DefaultPrompt() string {
	return c.cfg.DefaultPrompt
}

// ResolveProvider canonicalizes a provider name. An empty name resolves to
// the default provider.
func (c *Catalog) ResolveProvider(name string) (string, error) {
	if name == "" {
		name = c.cfg.DefaultProvider
	}
	p, ok := c.cfg.Provider(name)
	if !ok {
		return "", errors.UnknownProvider(name)
	}
	return p.Name, nil
}

// DefaultModel returns the default model for the named provider.
func (c *Catalog) DefaultModel(provider string) (string, error) {
	p, ok := c.cfg.Provider(provider)
	if !ok {
		return "", errors.UnknownProvider(provider)
	}
	return p.DefaultModel, nil
}

// ResolveModel canonicalizes a model name or alias under the given provider.
// An empty name resolves to the provider's default model. A name is accepted
// when it is an alias key, an alias target, or the provider's default model.
func (c *Catalog) ResolveModel(provider, nameOrAlias string) (string, error) {
	p, ok := c.cfg.Provider(provider)
	if !ok {
		return "", errors.UnknownProvider(provider)
	}
	if nameOrAlias == "" {
		return p.DefaultModel, nil
	}
	if model, ok := modelInProvider(p, nameOrAlias); ok {
		return model, nil
	}
	return "", errors.UnknownModel(p.Name, nameOrAlias)
}

// IsProviderToken reports whether token names a configured provider.
func (c *Catalog) IsProviderToken(token string) bool {
	_, ok := c.cfg.Provider(token)
	return ok
}

// ModelToken classifies token as a model name or alias. It returns the owning
// provider and the canonical model name. When several providers know the
// token, the first in configuration order wins.
func (c *Catalog) ModelToken(token string) (provider, model string, ok bool) {
	for _, name := range c.cfg.ProviderNames() {
		p, _ := c.cfg.Provider(name)
		if m, ok := modelInProvider(p, token); ok {
			return p.Name, m, true
		}
	}
	return "", "", false
}

// modelInProvider matches token against the provider's alias keys, alias
// targets, and default model, case-insensitively.
func modelInProvider(p *config.Provider, token string) (string, bool) {
	lower := strings.ToLower(token)
	if model, ok := p.Aliases[lower]; ok {
		return model, true
	}
	if strings.EqualFold(token, p.DefaultModel) {
		return p.DefaultModel, true
	}
	for _, model := range p.Aliases {
		if strings.EqualFold(token, model) {
			return model, true
		}
	}
	return "", false
}
