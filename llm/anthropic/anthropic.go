// Package anthropic implements the llm.Dialect for Anthropic's messages API.
// Importing this package registers the "anthropic" dialect.
package anthropic

import (
	"encoding/json"
	"fmt"

	"github.com/jjmacky/fluent-lm/llm"
)

// Name is the registered dialect name.
const Name = "anthropic"

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"

	// The messages API requires max_tokens on every request.
	defaultMaxTokens = 1024
)

func init() {
	llm.RegisterDialect(Name, &Dialect{})
}

// Dialect maps universal requests to Anthropic's messages format.
type Dialect struct{}

// Name returns the dialect identifier.
func (d *Dialect) Name() string { return Name }

// DefaultBaseURL returns Anthropic's API base URL.
func (d *Dialect) DefaultBaseURL() string { return defaultBaseURL }

// ChatPath returns the messages endpoint path.
func (d *Dialect) ChatPath() string { return "/v1/messages" }

// AuthHeaders returns the x-api-key and version headers.
func (d *Dialect) AuthHeaders(apiKey string) map[string]string {
	headers := map[string]string{"anthropic-version": apiVersion}
	if apiKey != "" {
		headers["x-api-key"] = apiKey
	}
	return headers
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Messages    []message `json:"messages"`
	Temperature float64   `json:"temperature,omitempty"`
}

type messagesResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

// BuildRequest maps a universal Request to Anthropic's request body.
func (d *Dialect) BuildRequest(req llm.Request) (any, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	return messagesRequest{
		Model:       req.Model,
		MaxTokens:   maxTokens,
		Messages:    []message{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
	}, nil
}

// ParseResponse maps Anthropic's response body to a universal Response.
func (d *Dialect) ParseResponse(body []byte) (*llm.Response, error) {
	var raw messagesResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	var text string
	for _, block := range raw.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" && len(raw.Content) == 0 {
		return nil, fmt.Errorf("anthropic: response contained no content blocks")
	}
	return &llm.Response{
		Content: text,
		Model:   raw.Model,
		Usage: llm.Usage{
			PromptTokens:     raw.Usage.InputTokens,
			CompletionTokens: raw.Usage.OutputTokens,
			TotalTokens:      raw.Usage.InputTokens + raw.Usage.OutputTokens,
		},
	}, nil
}
