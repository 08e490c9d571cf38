// Package args assembles process argument vectors. Tokens can be marked
// masked so secret material never reaches logs or error messages.
package args

import (
	"fmt"
	"strings"

	"github.com/ansrun/ansrun/internal/envvars"

	"mvdan.cc/sh/v3/shell"
)

// Mask is the placeholder rendered in place of masked token values.
const Mask = "********"

type token struct {
	value  string
	masked bool
}

// Builder accumulates argument tokens in insertion order.
// The zero value is not usable; call New.
type Builder struct {
	tokens []token
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Add appends one or more plain tokens.
func (b *Builder) Add(values ...string) *Builder {
	for _, value := range values {
		b.tokens = append(b.tokens, token{value: value})
	}
	return b
}

// AddMasked appends a token whose value must never appear in logs.
func (b *Builder) AddMasked(value string) *Builder {
	b.tokens = append(b.tokens, token{value: value, masked: true})
	return b
}

// AddTokenized expands environment references in raw against the snapshot,
// then splits the result with shell quoting and whitespace rules, appending
// each resulting token. Expansion happens before tokenizing, so references
// inside quotes are substituted too, and references to unset variables
// survive as literal tokens instead of vanishing. A blank raw string appends
// nothing.
func (b *Builder) AddTokenized(raw string, env envvars.Vars) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields, err := shell.Fields(env.Expand(raw), func(name string) string {
		if value, ok := env[name]; ok {
			return value
		}
		return "$" + name
	})
	if err != nil {
		return fmt.Errorf("tokenizing parameters: %w", err)
	}
	b.Add(fields...)
	return nil
}

// Len returns the number of accumulated tokens.
func (b *Builder) Len() int {
	return len(b.tokens)
}

// List returns the argument vector with real token values, for handing to
// the process launcher. The returned slice is a copy.
func (b *Builder) List() []string {
	out := make([]string, len(b.tokens))
	for i, t := range b.tokens {
		out[i] = t.value
	}
	return out
}

// MaskedList returns the argument vector with masked tokens replaced by the
// placeholder. This is the only form that may be logged.
func (b *Builder) MaskedList() []string {
	out := make([]string, len(b.tokens))
	for i, t := range b.tokens {
		if t.masked {
			out[i] = Mask
		} else {
			out[i] = t.value
		}
	}
	return out
}

// String renders the masked form of the vector. Safe for logs.
func (b *Builder) String() string {
	return strings.Join(b.MaskedList(), " ")
}
