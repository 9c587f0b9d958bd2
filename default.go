package fluentlm

import (
	"context"
	"sync"

	"github.com/jjmacky/fluent-lm/config"
	"github.com/jjmacky/fluent-lm/pipeline"
)

var (
	defaultMu     sync.Mutex
	defaultClient *Client
)

// Init replaces the package-level default client with one built over
// cfg. A nil cfg reloads configuration from files and environment.
func Init(cfg *config.Config) error {
	c, err := New(cfg)
	if err != nil {
		return err
	}
	defaultMu.Lock()
	defaultClient = c
	defaultMu.Unlock()
	return nil
}

// Default returns the package-level client, creating it on first use.
func Default() (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient == nil {
		c, err := New(nil)
		if err != nil {
			return nil, err
		}
		defaultClient = c
	}
	return defaultClient, nil
}

// CallModel calls through the package-level default client.
func CallModel(ctx context.Context, args ...any) (string, error) {
	c, err := Default()
	if err != nil {
		return "", err
	}
	return c.CallModel(ctx, args...)
}

// Builder returns a pipeline builder from the package-level default client.
func Builder() (*pipeline.Builder, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Builder(), nil
}
