// Package retry applies one bounded retry policy to calls into external systems.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy describes a bounded exponential backoff with jitter.
type Policy struct {
	// MaxAttempts counts the first call. Values below 1 mean a single attempt.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; later waits double up to MaxDelay.
	BaseDelay time.Duration
	MaxDelay  time.Duration
	// Jitter is the randomization factor in [0, 1]: a delay d becomes d ± d*Jitter.
	Jitter float64
	// AttemptTimeout bounds each attempt. Zero leaves attempts bounded only by ctx.
	AttemptTimeout time.Duration
}

// DefaultPolicy is three attempts with 200ms base delay.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    3,
		BaseDelay:      200 * time.Millisecond,
		MaxDelay:       2 * time.Second,
		Jitter:         0.5,
		AttemptTimeout: 5 * time.Second,
	}
}

// NotifyFunc is called after a failed attempt that will be retried.
type NotifyFunc func(err error, attempt int, wait time.Duration)

// Permanent marks err as not worth retrying. Do stops immediately and returns err unwrapped.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do calls op until it succeeds, returns a Permanent error, ctx is done or the attempt
// budget is used up. It returns the number of attempts made and the last error.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error, notify NotifyFunc) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.BaseDelay
	exp.MaxInterval = p.MaxDelay
	if exp.MaxInterval < exp.InitialInterval {
		exp.MaxInterval = exp.InitialInterval
	}
	exp.Multiplier = 2
	exp.RandomizationFactor = clamp(p.Jitter, 0, 1)
	exp.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, uint64(maxAttempts-1)), ctx)

	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		attemptCtx := ctx
		if p.AttemptTimeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, p.AttemptTimeout)
			defer cancel()
		}
		return op(attemptCtx)
	}, policy, func(err error, wait time.Duration) {
		if notify != nil {
			notify(err, attempts, wait)
		}
	})

	return attempts, err
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
