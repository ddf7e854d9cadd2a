// Package backoff adapts github.com/cenkalti/backoff/v4 into the pluggable
// backoff policy the retry layer consumes: an iterator of delay durations,
// cheaply constructed fresh per call, whose exhaustion (backoff.Stop) signals
// give up. The retry layer is agnostic to which concrete policy a Factory
// produces — constant, exponential-with-jitter, or any other
// backoff.BackOff implementation.
package backoff

import (
	"time"

	cenkalti "github.com/cenkalti/backoff/v4"
)

// Policy is the interface the retry layer consumes: NextBackOff returns the
// delay before the next attempt, or Stop when the policy is exhausted.
type Policy = cenkalti.BackOff

// Stop is returned by NextBackOff when the policy has no more attempts.
const Stop = cenkalti.Stop

// Factory produces a fresh Policy for a single call. The retry layer calls
// it once per operation invocation so every call starts from an
// untouched schedule (§4.3.1: "cheaply cloneable so every operation starts
// from a fresh schedule").
type Factory func() Policy

// Constant returns a Factory producing a fixed delay, retried up to
// maxAttempts times (maxAttempts does not count the first, non-retry,
// attempt).
func Constant(delay time.Duration, maxAttempts int) Factory {
	return func() Policy {
		if maxAttempts <= 0 {
			return &cenkalti.StopBackOff{}
		}
		return cenkalti.WithMaxRetries(cenkalti.NewConstantBackOff(delay), uint64(maxAttempts))
	}
}

// Exponential returns a Factory producing a jittered exponential backoff
// (the cenkalti/backoff default curve: multiplier 1.5, randomization 0.5),
// bounded to maxAttempts retries and maxElapsed total wait time.
func Exponential(initialInterval, maxInterval, maxElapsed time.Duration, maxAttempts int) Factory {
	return func() Policy {
		if maxAttempts <= 0 {
			return &cenkalti.StopBackOff{}
		}
		eb := cenkalti.NewExponentialBackOff()
		eb.InitialInterval = initialInterval
		eb.MaxInterval = maxInterval
		eb.MaxElapsedTime = maxElapsed
		eb.Reset()
		return cenkalti.WithMaxRetries(eb, uint64(maxAttempts))
	}
}

// Unbounded returns a Factory producing the cenkalti/backoff default
// jittered exponential curve with no cap on the number of attempts — only
// MaxElapsedTime (0 means unlimited) bounds it.
func Unbounded(maxElapsed time.Duration) Factory {
	return func() Policy {
		eb := cenkalti.NewExponentialBackOff()
		eb.MaxElapsedTime = maxElapsed
		eb.Reset()
		return eb
	}
}
