// Package retry repeats exchange calls that failed with a transient error.
//
// The kalshi client itself never retries. Wrapping a call with Do or Value
// re-enters it from scratch on every attempt, so each attempt is signed
// with a fresh timestamp.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/kalshi-go/kalshi"
	"go.uber.org/zap"
)

const (
	DefaultMaxAttempts = 5
	DefaultMinDelay    = 500 * time.Millisecond
	DefaultMaxDelay    = 5 * time.Second
)

// Policy controls how often and how long to retry. Zero fields take the
// package defaults.
type Policy struct {
	MaxAttempts int
	MinDelay    time.Duration
	MaxDelay    time.Duration
	// Retryable decides whether an error is worth another attempt.
	// Defaults to kalshi.IsRetryable.
	Retryable func(error) bool
	Logger    *zap.Logger
}

func (p Policy) withDefaults() Policy {
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.MinDelay <= 0 {
		p.MinDelay = DefaultMinDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = DefaultMaxDelay
	}
	if p.MaxDelay < p.MinDelay {
		p.MaxDelay = p.MinDelay
	}
	if p.Retryable == nil {
		p.Retryable = kalshi.IsRetryable
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	return p
}

// Do calls fn until it succeeds, fails with a non-retryable error, the
// attempts run out, or ctx is done. Delays double from MinDelay up to
// MaxDelay; a longer Retry-After from the exchange takes precedence.
func Do(ctx context.Context, p Policy, operation string, fn func(context.Context) error) error {
	p = p.withDefaults()
	delay := p.MinDelay

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		err := fn(ctx)
		latency := time.Since(start)
		if err == nil {
			if attempt > 1 {
				p.Logger.Info("call succeeded after retry",
					zap.String("operation", operation),
					zap.Int("attempts", attempt),
					zap.Duration("latency", latency),
				)
			}
			return nil
		}

		if !p.Retryable(err) || attempt >= p.MaxAttempts {
			p.Logger.Error("call failed",
				zap.String("operation", operation),
				zap.Int("attempts", attempt),
				zap.Duration("latency", latency),
				zap.Error(err),
			)
			if attempt > 1 {
				return fmt.Errorf("%s failed after %d attempts: %w", operation, attempt, err)
			}
			return err
		}

		wait := delay
		if ra := kalshi.RetryAfter(err); ra > wait {
			wait = ra
		}
		p.Logger.Warn("call failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.String("kind", string(kalshi.KindOf(err))),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		delay *= 2
		if delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
}

// Value is Do for calls that return a result.
func Value[T any](ctx context.Context, p Policy, operation string, fn func(context.Context) (T, error)) (T, error) {
	var result T
	err := Do(ctx, p, operation, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}
