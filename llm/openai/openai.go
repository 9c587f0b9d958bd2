// Package openai implements the llm.Dialect for OpenAI's chat completions API.
// Importing this package registers the "openai" dialect.
package openai

import (
	"encoding/json"
	"fmt"

	"github.com/jjmacky/fluent-lm/llm"
)

// Name is the registered dialect name.
const Name = "openai"

const defaultBaseURL = "https://api.openai.com"

func init() {
	llm.RegisterDialect(Name, &Dialect{})
}

// Dialect maps universal requests to OpenAI's chat completions format.
type Dialect struct{}

// Name returns the dialect identifier.
func (d *Dialect) Name() string { return Name }

// DefaultBaseURL returns OpenAI's API base URL.
func (d *Dialect) DefaultBaseURL() string { return defaultBaseURL }

// ChatPath returns the chat completions endpoint path.
func (d *Dialect) ChatPath() string { return "/v1/chat/completions" }

// AuthHeaders returns the Bearer authorization header.
func (d *Dialect) AuthHeaders(apiKey string) map[string]string {
	if apiKey == "" {
		return nil
	}
	return map[string]string{"Authorization": "Bearer " + apiKey}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// BuildRequest maps a universal Request to OpenAI's request body.
func (d *Dialect) BuildRequest(req llm.Request) (any, error) {
	return chatRequest{
		Model:       req.Model,
		Messages:    []message{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}, nil
}

// ParseResponse maps OpenAI's response body to a universal Response.
func (d *Dialect) ParseResponse(body []byte) (*llm.Response, error) {
	var raw chatResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if len(raw.Choices) == 0 {
		return nil, fmt.Errorf("openai: response contained no choices")
	}
	return &llm.Response{
		Content: raw.Choices[0].Message.Content,
		Model:   raw.Model,
		Usage: llm.Usage{
			PromptTokens:     raw.Usage.PromptTokens,
			CompletionTokens: raw.Usage.CompletionTokens,
			TotalTokens:      raw.Usage.TotalTokens,
		},
	}, nil
}
