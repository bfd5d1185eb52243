package driver

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryConfig bounds the Retry helper. Zero values fall back to the
// defaults below.
type RetryConfig struct {
	// MaxRetries is the number of attempts after the first one.
	MaxRetries uint64

	// InitialInterval is the first backoff delay.
	InitialInterval time.Duration

	// MaxInterval caps the exponential backoff delay.
	MaxInterval time.Duration
}

const (
	defaultMaxRetries      = 3
	defaultInitialInterval = 50 * time.Millisecond
	defaultMaxInterval     = 2 * time.Second
)

// Retry runs fn, retrying with exponential backoff as long as the returned
// error is retry-eligible per IsRetryable (serialization failures,
// deadlocks, "database is busy", rate limiting). Any other error stops the
// retries immediately and is returned as-is.
//
// Retry is intended for whole transactions: a serialization failure rolls
// the transaction back, and the safe recovery is to run the entire body
// again.
//
//	err := driver.Retry(ctx, func(ctx context.Context) error {
//	    return db.Transaction(ctx, transfer, driver.WithIsolation(driver.IsolationSerializable))
//	}, driver.RetryConfig{})
func Retry(ctx context.Context, fn func(ctx context.Context) error, cfg RetryConfig) error {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = defaultMaxInterval
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.InitialInterval
	policy.MaxInterval = cfg.MaxInterval

	return backoff.Retry(func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(policy, cfg.MaxRetries), ctx))
}
