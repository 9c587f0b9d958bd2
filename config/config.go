// Package config loads and manages fluent-lm configuration: the provider
// catalog (names, API key env vars, default models, alias tables), the
// process-wide default provider, and logging settings.
//
// Configuration is loaded once at startup from a YAML file plus environment
// variables and may be mutated between pipeline executions via the explicit
// setters; Save persists the current state back to disk.
package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jjmacky/fluent-lm/errors"
	"github.com/jjmacky/fluent-lm/logger"
	"github.com/jjmacky/fluent-lm/util"
)

// DefaultPrompt is used by the top-level convenience entry point when the
// caller supplies no prompt at all. Pipeline steps never fall back to it.
const DefaultPrompt = "Hello, my friend"

// Provider describes one configured LLM provider.
type Provider struct {
	// Name is the canonical provider name (e.g., "openai").
	Name string `yaml:"name" mapstructure:"name" json:"name" validate:"required"`
	// Dialect selects the wire mapping; defaults to Name.
	Dialect string `yaml:"dialect,omitempty" mapstructure:"dialect" json:"dialect,omitempty"`
	// BaseURL overrides the dialect's default API base URL.
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url" json:"base_url,omitempty"`
	// APIKeyEnvVar names the environment variable holding the API key.
	APIKeyEnvVar string `yaml:"api_key_env_var,omitempty" mapstructure:"api_key_env_var" json:"api_key_env_var,omitempty"`
	// DefaultModel is used when a call names the provider but no model.
	DefaultModel string `yaml:"default_model" mapstructure:"default_model" json:"default_model" validate:"required"`
	// TimeoutSeconds bounds each HTTP call. 0 means the adapter default.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty" mapstructure:"timeout_seconds" json:"timeout_seconds,omitempty"`
	// MaxAttempts enables retry of transient call failures when above 1.
	MaxAttempts int `yaml:"max_attempts,omitempty" mapstructure:"max_attempts" json:"max_attempts,omitempty"`
	// Aliases maps short model nicknames to canonical model names.
	Aliases map[string]string `yaml:"aliases,omitempty" mapstructure:"aliases" json:"aliases,omitempty"`
}

// APIKey reads the provider's API key from its configured environment variable.
func (p *Provider) APIKey() string {
	if p.APIKeyEnvVar == "" {
		return ""
	}
	return os.Getenv(p.APIKeyEnvVar)
}

// Config is the root fluent-lm configuration.
type Config struct {
	DefaultProvider string        `yaml:"default_provider" mapstructure:"default_provider" json:"default_provider" validate:"required"`
	DefaultPrompt   string        `yaml:"default_prompt,omitempty" mapstructure:"default_prompt" json:"default_prompt,omitempty"`
	Providers       []Provider    `yaml:"providers" mapstructure:"providers" json:"providers" validate:"required,min=1,dive"`
	Logging         logger.Config `yaml:"logging,omitempty" mapstructure:"logging" json:"logging,omitempty"`

	mu sync.RWMutex
}

// Default returns the built-in configuration covering the stock providers.
func Default() *Config {
	cfg := &Config{
		DefaultProvider: "openai",
		DefaultPrompt:   DefaultPrompt,
		Providers: []Provider{
			{
				Name:         "openai",
				APIKeyEnvVar: "OPENAI_API_KEY",
				DefaultModel: "gpt-4o-mini",
				Aliases: map[string]string{
					"mini":  "gpt-4o-mini",
					"4o":    "gpt-4o",
					"gpt4o": "gpt-4o",
				},
			},
			{
				Name:         "anthropic",
				APIKeyEnvVar: "ANTHROPIC_API_KEY",
				DefaultModel: "claude-3-5-haiku-latest",
				Aliases: map[string]string{
					"haiku":  "claude-3-5-haiku-latest",
					"sonnet": "claude-3-7-sonnet-latest",
					"opus":   "claude-3-opus-latest",
				},
			},
			{
				Name:         "ollama",
				BaseURL:      "http://localhost:11434",
				DefaultModel: "llama3",
				Aliases: map[string]string{
					"llama": "llama3",
				},
			},
		},
	}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields with sensible values.
func (c *Config) ApplyDefaults() {
	c.DefaultPrompt = util.Coalesce(c.DefaultPrompt, DefaultPrompt)
	for i := range c.Providers {
		p := &c.Providers[i]
		p.Dialect = util.Coalesce(p.Dialect, p.Name)
		if p.Aliases == nil {
			p.Aliases = make(map[string]string)
		}
	}
	c.Logging.ApplyDefaults()
}

// --- validation ---

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks structural constraints and cross-field consistency.
func (c *Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return errors.ConfigInvalid(fmt.Sprintf("invalid configuration: %v", err)).WithCause(err)
	}
	seen := make(map[string]bool, len(c.Providers))
	for i := range c.Providers {
		name := strings.ToLower(c.Providers[i].Name)
		if seen[name] {
			return errors.ConfigInvalid(fmt.Sprintf("duplicate provider %q", c.Providers[i].Name))
		}
		seen[name] = true
	}
	if !seen[strings.ToLower(c.DefaultProvider)] {
		return errors.ConfigInvalid(fmt.Sprintf("default_provider %q is not among configured providers", c.DefaultProvider))
	}
	if err := c.Logging.Validate(); err != nil {
		return errors.ConfigInvalid(err.Error()).WithCause(err)
	}
	return nil
}

// Provider returns the configuration block for the named provider.
// Matching is case-insensitive.
func (c *Config) Provider(name string) (*Provider, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.Providers {
		if strings.EqualFold(c.Providers[i].Name, name) {
			return &c.Providers[i], true
		}
	}
	return nil, false
}

// ProviderNames returns the configured provider names in declaration order.
func (c *Config) ProviderNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, len(c.Providers))
	for i := range c.Providers {
		names[i] = c.Providers[i].Name
	}
	return names
}

// --- sticky runtime mutation (between executions only) ---

// SetDefaultProvider changes the process-wide default provider.
func (c *Config) SetDefaultProvider(name string) error {
	if _, ok := c.Provider(name); !ok {
		return errors.UnknownProvider(name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.DefaultProvider = name
	return nil
}

// SetDefaultModel changes the default model for the named provider.
func (c *Config) SetDefaultModel(provider, model string) error {
	p, ok := c.Provider(provider)
	if !ok {
		return errors.UnknownProvider(provider)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	p.DefaultModel = model
	return nil
}

// SetAlias adds or replaces a model alias for the named provider.
func (c *Config) SetAlias(provider, alias, model string) error {
	p, ok := c.Provider(provider)
	if !ok {
		return errors.UnknownProvider(provider)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.Aliases == nil {
		p.Aliases = make(map[string]string)
	}
	p.Aliases[strings.ToLower(alias)] = model
	return nil
}

// DeleteAlias removes a model alias from the named provider.
func (c *Config) DeleteAlias(provider, alias string) error {
	p, ok := c.Provider(provider)
	if !ok {
		return errors.UnknownProvider(provider)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	key := strings.ToLower(alias)
	if _, ok := p.Aliases[key]; !ok {
		return errors.ConfigInvalid(fmt.Sprintf("alias %q not found for provider %q", alias, provider))
	}
	delete(p.Aliases, key)
	return nil
}

// Save writes the current configuration to path as YAML.
func (c *Config) Save(path string) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
