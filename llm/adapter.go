package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/jjmacky/fluent-lm/errors"
	"github.com/jjmacky/fluent-lm/logger"
	"github.com/jjmacky/fluent-lm/util"
	"github.com/jjmacky/fluent-lm/version"
)

// ErrNoDialect is returned when an adapter is created without a dialect.
var ErrNoDialect = errors.New("llm: dialect is required")

// Config holds configuration for creating an LLM adapter.
// It is provider-agnostic; the Dialect field selects the provider mapping.
type Config struct {
	// Name identifies this adapter instance. Defaults to "<dialect>-llm".
	Name string `yaml:"name" json:"name"`

	// Dialect selects the provider mapping (e.g., "openai", "anthropic").
	// Must match a dialect registered via RegisterDialect.
	Dialect string `yaml:"dialect" json:"dialect"`

	// BaseURL overrides the dialect's default API base URL.
	BaseURL string `yaml:"base_url" json:"base_url"`

	// APIKey authenticates with the provider. May be empty for local
	// providers such as Ollama.
	APIKey string `yaml:"api_key" json:"api_key"`

	// Model is the default model to use.
	Model string `yaml:"model" json:"model"`

	// Temperature is the default sampling temperature.
	Temperature float64 `yaml:"temperature" json:"temperature"`

	// MaxTokens is the default maximum tokens for responses. 0 means provider default.
	MaxTokens int `yaml:"max_tokens" json:"max_tokens"`

	// Timeout for HTTP requests. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// applyDefaults sets default values for unset config fields.
func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = 120 * time.Second
	}
	if c.Name == "" && c.Dialect != "" {
		c.Name = c.Dialect + "-llm"
	}
}

// Adapter is a config-driven LLM client that works with any provider via the
// Dialect pattern. It composes a net/http client with a Dialect that handles
// provider-specific request/response mapping.
//
// Adapter implements [Caller].
type Adapter struct {
	client  *http.Client
	dialect Dialect
	cfg     Config
	log     *logger.Logger
}

// New creates an LLM adapter from config using the global dialect registry.
// The config's Dialect field must match a registered dialect name.
func New(cfg Config) (*Adapter, error) {
	dialect, err := GetDialect(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	return NewWithDialect(dialect, cfg)
}

// NewWithDialect creates an LLM adapter with an explicit dialect instance.
// Use this when you don't want to rely on the global dialect registry.
func NewWithDialect(dialect Dialect, cfg Config) (*Adapter, error) {
	if dialect == nil {
		return nil, ErrNoDialect
	}
	if cfg.Dialect == "" {
		cfg.Dialect = dialect.Name()
	}
	cfg.applyDefaults()
	cfg.BaseURL = util.Coalesce(cfg.BaseURL, dialect.DefaultBaseURL())

	return &Adapter{
		client:  &http.Client{Timeout: cfg.Timeout},
		dialect: dialect,
		cfg:     cfg,
		log:     logger.WithComponent("llm." + dialect.Name()),
	}, nil
}

// Name returns the adapter name.
func (a *Adapter) Name() string { return a.cfg.Name }

// Dialect returns the dialect used by this adapter.
func (a *Adapter) Dialect() Dialect { return a.dialect }

// IsAvailable checks if the provider endpoint is reachable.
func (a *Adapter) IsAvailable(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL, nil)
	if err != nil {
		return false
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < http.StatusInternalServerError
}

// Invoke sends a completion request and returns the response.
// All transport and provider failures are wrapped as MODEL_INVOCATION errors.
func (a *Adapter) Invoke(ctx context.Context, req Request) (*Response, error) {
	a.fillDefaults(&req)
	start := time.Now()

	body, err := a.dialect.BuildRequest(req)
	if err != nil {
		return nil, apperrors.ModelInvocation(a.dialect.Name(), fmt.Errorf("build request: %w", err))
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, apperrors.ModelInvocation(a.dialect.Name(), fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+a.dialect.ChatPath(), bytes.NewReader(payload))
	if err != nil {
		return nil, apperrors.ModelInvocation(a.dialect.Name(), err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())
	for k, v := range a.dialect.AuthHeaders(a.cfg.APIKey) {
		httpReq.Header.Set(k, v)
	}

	httpResp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, apperrors.ModelInvocation(a.dialect.Name(), err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, apperrors.ModelInvocation(a.dialect.Name(), fmt.Errorf("read response: %w", err))
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, apperrors.ModelInvocation(a.dialect.Name(),
			fmt.Errorf("status %d: %s", httpResp.StatusCode, truncate(respBody, 512))).
			WithDetail("status", httpResp.StatusCode)
	}

	result, err := a.dialect.ParseResponse(respBody)
	if err != nil {
		return nil, apperrors.ModelInvocation(a.dialect.Name(), fmt.Errorf("parse response: %w", err))
	}

	a.log.Debug("model call completed", logger.Fields(
		logger.FieldModel, req.Model,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return result, nil
}

func (a *Adapter) fillDefaults(req *Request) {
	if req.Model == "" {
		req.Model = a.cfg.Model
	}
	if req.Temperature == 0 {
		req.Temperature = a.cfg.Temperature
	}
	if req.MaxTokens == 0 {
		req.MaxTokens = a.cfg.MaxTokens
	}
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
