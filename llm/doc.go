// Package llm resolves loose call arguments into concrete LLM invocations
// and performs the HTTP calls themselves.
//
// The package provides:
//   - Universal types: [Request], [Response], [Usage]
//   - [Caller] interface: the invoke(provider, model, prompt) collaborator
//   - [Dialect] interface: maps universal types to/from provider HTTP format
//   - Dialect registry: [RegisterDialect] / [GetDialect] for config-driven selection
//   - [Adapter]: composes net/http + a Dialect into a complete provider client
//   - [Catalog]: provider/model alias resolution backed by config
//   - [Resolve]: order-independent classification of positional arguments
//
// Import a dialect driver package for side-effect registration, then create
// an adapter:
//
//	import (
//	    "github.com/jjmacky/fluent-lm/llm"
//	    _ "github.com/jjmacky/fluent-lm/llm/openai" // registers "openai"
//	)
//
//	adapter, err := llm.New(llm.Config{
//	    Dialect: "openai",
//	    APIKey:  os.Getenv("OPENAI_API_KEY"),
//	    Model:   "gpt-4o-mini",
//	})
//
//	resp, err := adapter.Invoke(ctx, llm.Request{Prompt: "Hello!"})
package llm
