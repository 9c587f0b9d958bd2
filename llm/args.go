package llm

import (
	"github.com/jjmacky/fluent-lm/errors"
	"github.com/jjmacky/fluent-lm/util"
)

// Named carries keyword arguments for a call. Named values always override
// positional inference for the same logical slot. Empty strings mean unset.
type Named struct {
	Provider string
	Model    string
	Prompt   string
}

// Resolved is a fully-determined call target.
type Resolved struct {
	Provider string
	Model    string
	Prompt   string
}

// Resolve classifies loosely-ordered positional values into a concrete
// (provider, model, prompt) triple.
//
// Each positional token is matched case-insensitively against the catalog's
// provider names, then its model names and aliases; a token matching neither
// is taken as the prompt. Tokens that match a known provider or model are
// never treated as prompt text; use the Prompt keyword to force that
// interpretation. A token whose slot is already filled, or a second free-text
// token, is an UnknownIdentifier error.
//
// Missing slots fall back: provider to the model token's owning provider or
// the configured default, model to the provider's default model, and prompt
// to the configured default prompt when allowDefaultPrompt is set (the
// top-level convenience entry point only).
//
// Resolve is a pure function of its inputs and the catalog state.
func Resolve(cat *Catalog, positional []string, named Named, allowDefaultPrompt bool) (Resolved, error) {
	providerTok := named.Provider
	modelTok := named.Model
	prompt := named.Prompt

	// Provider implied by a model token, used only when no provider was given.
	var impliedProvider string

	for _, tok := range positional {
		switch {
		case cat.IsProviderToken(tok):
			if providerTok != "" {
				return Resolved{}, errors.UnknownIdentifier(tok).WithDetail("reason", "provider already determined")
			}
			providerTok = tok
		case isModelToken(cat, tok):
			if modelTok != "" {
				return Resolved{}, errors.UnknownIdentifier(tok).WithDetail("reason", "model already determined")
			}
			modelTok = tok
		default:
			if prompt != "" {
				return Resolved{}, errors.UnknownIdentifier(tok)
			}
			prompt = tok
		}
	}

	if providerTok == "" && modelTok != "" {
		if owner, _, ok := cat.ModelToken(modelTok); ok {
			impliedProvider = owner
		}
	}

	providerName, err := cat.ResolveProvider(util.Coalesce(providerTok, impliedProvider))
	if err != nil {
		return Resolved{}, err
	}
	model, err := cat.ResolveModel(providerName, modelTok)
	if err != nil {
		return Resolved{}, err
	}
	if prompt == "" {
		if !allowDefaultPrompt {
			return Resolved{}, errors.MissingPrompt()
		}
		prompt = cat.DefaultPrompt()
	}

	return Resolved{Provider: providerName, Model: model, Prompt: prompt}, nil
}

func isModelToken(cat *Catalog, tok string) bool {
	_, _, ok := cat.ModelToken(tok)
	return ok
}
