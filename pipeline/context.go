package pipeline

import (
	"sort"

	apperrors "github.com/jjmacky/fluent-lm/errors"
	"github.com/jjmacky/fluent-lm/util"
)

// KeyText is the canonical store key holding the "current text" flowing
// through a pipeline. Steps read from and write to this key unless an
// explicit input or output key overrides it.
const KeyText = "text"

// Context is the per-run key/value store shared by the steps of a
// pipeline execution. It is not safe for concurrent use; each run owns
// its own instance.
type Context struct {
	values map[string]any
}

// NewContext returns a store seeded with a copy of seed. A nil seed
// yields an empty store.
func NewContext(seed map[string]any) *Context {
	values := make(map[string]any, len(seed))
	for k, v := range seed {
		values[k] = v
	}
	return &Context{values: values}
}

// Add stores value under key, overwriting any previous value.
func (c *Context) Add(key string, value any) {
	c.values[key] = value
}

// Get returns the value stored under key.
func (c *Context) Get(key string) (any, error) {
	v, ok := c.values[key]
	if !ok {
		return nil, apperrors.MissingContextKey(key)
	}
	return v, nil
}

// GetString returns the value under key rendered as a string.
func (c *Context) GetString(key string) (string, error) {
	v, err := c.Get(key)
	if err != nil {
		return "", err
	}
	return util.Stringify(v), nil
}

// Update replaces the value under an existing key. Unlike Add, updating
// an absent key is an error.
func (c *Context) Update(key string, value any) error {
	if _, ok := c.values[key]; !ok {
		return apperrors.MissingContextKey(key)
	}
	c.values[key] = value
	return nil
}

// Lookup returns the value under key and whether it is present.
func (c *Context) Lookup(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

// Remove deletes key from the store. Removing an absent key is a no-op.
func (c *Context) Remove(key string) {
	delete(c.values, key)
}

// Clear removes every entry from the store.
func (c *Context) Clear() {
	c.values = make(map[string]any)
}

// Keys returns the stored keys in sorted order.
func (c *Context) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored entries.
func (c *Context) Len() int {
	return len(c.values)
}

// Clone returns an independent copy of the store.
func (c *Context) Clone() *Context {
	return NewContext(c.values)
}

// Values returns a copy of the stored entries.
func (c *Context) Values() map[string]any {
	out := make(map[string]any, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}
