// Package template renders prompt templates against named variables.
//
// The grammar is deliberately small: {identifier} substitutes the stringified
// value of identifier, {{ and }} produce literal braces, and anything else
// involving a brace is malformed. Substitution is single-pass: substituted
// values are never re-scanned for placeholders.
package template

import (
	"strings"

	"github.com/jjmacky/fluent-lm/errors"
	"github.com/jjmacky/fluent-lm/util"
)

// Vars is the variable scope a template is rendered against.
type Vars map[string]any

// Merge combines explicit step variables with implicit context values.
// Explicit variables shadow same-named implicit entries.
func Merge(explicit, implicit Vars) Vars {
	merged := make(Vars, len(explicit)+len(implicit))
	for k, v := range implicit {
		merged[k] = v
	}
	for k, v := range explicit {
		merged[k] = v
	}
	return merged
}

// Render substitutes every {identifier} placeholder in tmpl with the
// stringified value of identifier from vars. It fails with MissingVariable
// when a placeholder has no value in scope and MalformedTemplate on
// unbalanced or invalid brace syntax.
func Render(tmpl string, vars Vars) (string, error) {
	var sb strings.Builder
	sb.Grow(len(tmpl))

	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				sb.WriteByte('{')
				i += 2
				continue
			}
			name, next, err := scanPlaceholder(tmpl, i)
			if err != nil {
				return "", err
			}
			val, ok := vars[name]
			if !ok {
				return "", errors.MissingVariable(name)
			}
			sb.WriteString(util.Stringify(val))
			i = next
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				sb.WriteByte('}')
				i += 2
				continue
			}
			return "", errors.MalformedTemplate("unmatched '}' outside placeholder")
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String(), nil
}

// Placeholders returns the distinct placeholder identifiers in tmpl, in order
// of first appearance. It shares Render's syntax checks so callers can
// validate templates eagerly.
func Placeholders(tmpl string) ([]string, error) {
	var names []string
	seen := make(map[string]bool)

	for i := 0; i < len(tmpl); {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				i += 2
				continue
			}
			name, next, err := scanPlaceholder(tmpl, i)
			if err != nil {
				return nil, err
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
			i = next
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				i += 2
				continue
			}
			return nil, errors.MalformedTemplate("unmatched '}' outside placeholder")
		default:
			i++
		}
	}
	return names, nil
}

// scanPlaceholder parses a {identifier} placeholder starting at the opening
// brace and returns the identifier plus the index after the closing brace.
func scanPlaceholder(tmpl string, open int) (string, int, error) {
	end := strings.IndexByte(tmpl[open+1:], '}')
	if end < 0 {
		return "", 0, errors.MalformedTemplate("unclosed '{'")
	}
	name := tmpl[open+1 : open+1+end]
	if !isIdentifier(name) {
		return "", 0, errors.MalformedTemplate("invalid placeholder {" + name + "}")
	}
	return name, open + end + 2, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c == '_':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
