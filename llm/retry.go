package llm

import (
	"context"
	"time"

	"github.com/jjmacky/fluent-lm/logger"
	"github.com/jjmacky/fluent-lm/resilience"
)

// RetryingCaller decorates a Caller with retry on transient failures.
// Resolution and template errors fail immediately; only MODEL_INVOCATION
// errors are attempted again.
type RetryingCaller struct {
	inner Caller
	cfg   resilience.RetryConfig
	log   *logger.Logger
}

// WithRetries wraps caller so Invoke retries transient failures up to
// maxAttempts times with exponential backoff. maxAttempts below 2
// returns the caller unchanged.
func WithRetries(caller Caller, maxAttempts int) Caller {
	if maxAttempts < 2 {
		return caller
	}
	cfg := resilience.DefaultRetryConfig()
	cfg.MaxAttempts = maxAttempts
	return &RetryingCaller{
		inner: caller,
		cfg:   cfg,
		log:   logger.WithComponent("llm.retry"),
	}
}

// Name returns the wrapped caller's name.
func (r *RetryingCaller) Name() string { return r.inner.Name() }

// IsAvailable reports the wrapped caller's availability.
func (r *RetryingCaller) IsAvailable(ctx context.Context) bool {
	return r.inner.IsAvailable(ctx)
}

// Invoke sends the request, retrying transient failures.
func (r *RetryingCaller) Invoke(ctx context.Context, req Request) (*Response, error) {
	cfg := r.cfg
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		r.log.WithError(err).Warn("model call failed, retrying", logger.Fields(
			logger.FieldProvider, r.inner.Name(),
			"attempt", attempt,
			"backoff_ms", backoff.Milliseconds(),
		))
	}
	return resilience.Retry(ctx, cfg, func() (*Response, error) {
		return r.inner.Invoke(ctx, req)
	})
}
