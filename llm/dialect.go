package llm

import (
	"fmt"
	"sync"
)

// Dialect maps universal LLM types to/from a specific provider's HTTP format.
//
// Each provider (OpenAI, Anthropic, Ollama, ...) has its own Dialect
// implementation living in a driver subpackage that registers itself via
// [RegisterDialect] in init(). Importing the driver package is enough:
//
//	import _ "github.com/jjmacky/fluent-lm/llm/openai"
type Dialect interface {
	// Name returns the dialect identifier (e.g., "openai").
	Name() string

	// DefaultBaseURL returns the provider's default API base URL.
	DefaultBaseURL() string

	// ChatPath returns the API endpoint path for chat completion.
	ChatPath() string

	// AuthHeaders returns the HTTP headers carrying credentials.
	// Implementations may return nil when apiKey is empty.
	AuthHeaders(apiKey string) map[string]string

	// BuildRequest maps a universal Request to the provider's JSON request body.
	BuildRequest(req Request) (any, error)

	// ParseResponse maps the provider's JSON response body to a universal Response.
	ParseResponse(body []byte) (*Response, error)
}

// --- Dialect Registry ---

var (
	dialectsMu sync.RWMutex
	dialects   = map[string]Dialect{}
)

// RegisterDialect adds a dialect to the global registry.
// Typically called from init() in dialect driver packages.
func RegisterDialect(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	dialects[name] = d
}

// GetDialect retrieves a dialect by name from the global registry.
func GetDialect(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("llm: unknown dialect %q (forgot to import driver?)", name)
	}
	return d, nil
}

// Dialects returns the names of all registered dialects.
func Dialects() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	return names
}
