// Package ollama implements the llm.Dialect for Ollama's native chat API.
// Importing this package registers the "ollama" dialect.
package ollama

import (
	"encoding/json"

	"github.com/jjmacky/fluent-lm/llm"
)

// Name is the registered dialect name.
const Name = "ollama"

const defaultBaseURL = "http://localhost:11434"

func init() {
	llm.RegisterDialect(Name, &Dialect{})
}

// Dialect maps universal requests to Ollama's chat format.
type Dialect struct{}

// Name returns the dialect identifier.
func (d *Dialect) Name() string { return Name }

// DefaultBaseURL returns the local Ollama endpoint.
func (d *Dialect) DefaultBaseURL() string { return defaultBaseURL }

// ChatPath returns the chat endpoint path.
func (d *Dialect) ChatPath() string { return "/api/chat" }

// AuthHeaders returns nil. Ollama has no authentication.
func (d *Dialect) AuthHeaders(string) map[string]string { return nil }

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string         `json:"model"`
	Messages []message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Options  map[string]any `json:"options,omitempty"`
}

type chatResponse struct {
	Model           string  `json:"model"`
	Message         message `json:"message"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}

// BuildRequest maps a universal Request to Ollama's request body.
func (d *Dialect) BuildRequest(req llm.Request) (any, error) {
	var opts map[string]any
	if req.Temperature != 0 || req.MaxTokens != 0 {
		opts = make(map[string]any)
		if req.Temperature != 0 {
			opts["temperature"] = req.Temperature
		}
		if req.MaxTokens != 0 {
			opts["num_predict"] = req.MaxTokens
		}
	}
	return chatRequest{
		Model:    req.Model,
		Messages: []message{{Role: "user", Content: req.Prompt}},
		Stream:   false,
		Options:  opts,
	}, nil
}

// ParseResponse maps Ollama's response body to a universal Response.
func (d *Dialect) ParseResponse(body []byte) (*llm.Response, error) {
	var raw chatResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return &llm.Response{
		Content: raw.Message.Content,
		Model:   raw.Model,
		Usage: llm.Usage{
			PromptTokens:     raw.PromptEvalCount,
			CompletionTokens: raw.EvalCount,
			TotalTokens:      raw.PromptEvalCount + raw.EvalCount,
		},
	}, nil
}
