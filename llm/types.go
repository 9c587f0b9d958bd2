package llm

import (
	"context"

	"github.com/jjmacky/fluent-lm/provider"
)

// Request is the universal input for all LLM providers.
type Request struct {
	// Provider routes the request when invoking through a multi-provider
	// caller. Single-provider adapters ignore it.
	Provider string `json:"provider,omitempty" yaml:"provider"`
	// Model overrides the adapter's default model.
	Model string `json:"model,omitempty" yaml:"model"`
	// Prompt is the user prompt text.
	Prompt string `json:"prompt" yaml:"prompt"`
	// Temperature controls randomness. 0 means provider default.
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature"`
	// MaxTokens limits the response length. 0 means provider default.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens"`
}

// Response is the universal output from all LLM providers.
type Response struct {
	// Content is the generated text.
	Content string `json:"content"`
	// Model is the model that produced the response.
	Model string `json:"model"`
	// Usage reports token consumption.
	Usage Usage `json:"usage"`
}

// Usage reports token consumption.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Caller is the external LLM-call collaborator: anything that can turn a
// resolved (provider, model, prompt) request into text.
type Caller interface {
	provider.Provider

	// Invoke sends the request and returns the model's response.
	// Failures are reported as MODEL_INVOCATION errors wrapping the cause.
	Invoke(ctx context.Context, req Request) (*Response, error)
}
