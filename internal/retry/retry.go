// Package retry wraps LLM calls in a fixed-attempt exponential backoff policy.
package retry

import (
	"context"
	"time"
)

// Policy defaults
const (
	DefaultMaxAttempts = 5
	DefaultBaseDelay   = 2 * time.Second
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// RetryFunc is notified before each wait. attempt is the 1-based attempt that just failed.
type RetryFunc func(attempt int, delay time.Duration, err error)

// Policy configures Do. The zero value uses the defaults.
//
// Every error is treated as retryable; no distinction is made between transient and
// permanent failures.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	OnRetry     RetryFunc
	Sleep       SleepFunc
}

// DefaultPolicy returns 5 attempts with a 2s base delay (waits of 2s, 4s, 8s, 16s).
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
	}
}

// WithOnRetry returns a copy of the policy with an additional retry hook.
// The existing hook, if any, runs first.
func (p Policy) WithOnRetry(fn RetryFunc) Policy {
	prev := p.OnRetry
	if prev == nil {
		p.OnRetry = fn
		return p
	}
	p.OnRetry = func(attempt int, delay time.Duration, err error) {
		prev(attempt, delay, err)
		fn(attempt, delay, err)
	}
	return p
}

// Delay returns the wait after the zero-based attempt index: BaseDelay * 2^index.
func (p Policy) Delay(index int) time.Duration {
	return p.baseDelay() << uint(index)
}

func (p Policy) maxAttempts() int {
	if p.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return p.MaxAttempts
}

func (p Policy) baseDelay() time.Duration {
	if p.BaseDelay <= 0 {
		return DefaultBaseDelay
	}
	return p.BaseDelay
}

func (p Policy) sleep() SleepFunc {
	if p.Sleep == nil {
		return Sleep
	}
	return p.Sleep
}

// Do calls fn until it succeeds or the attempt budget is spent.
// After the last failed attempt, or a failure once ctx is done, the error from fn is
// returned as is.
// A canceled ctx during a wait returns ctx.Err().
func Do[T any](ctx context.Context, p Policy, fn func(context.Context) (T, error)) (T, error) {
	attempts := p.maxAttempts()
	sleep := p.sleep()

	var zero T
	for attempt := 0; ; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		if attempt == attempts-1 || ctx.Err() != nil {
			return zero, err
		}

		delay := p.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt+1, delay, err)
		}

		if serr := sleep(ctx, delay); serr != nil {
			return zero, serr
		}
	}
}

// Sleep waits for d, returning early with ctx.Err() when ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
