package retry

import (
	"context"
	"time"

	"github.com/vvka-141/credload/pkg/credload"
)

// Executor orchestrates retry attempts with backoff and error classification.
//
// Thread Safety:
// Execute may be called from several goroutines at once; it keeps all
// per-call state on the stack. WithOnRetry never mutates the receiver, so an
// Executor shared between backends can be given a per-backend callback.
type Executor struct {
	classifier credload.ErrorClassifier
	strategy   credload.BackoffStrategy
	onRetry    func(attempt int, err error, delay time.Duration)
}

// NewExecutor creates a new retry executor with the given configuration.
// Panics if classifier or strategy is nil.
func NewExecutor(classifier credload.ErrorClassifier, strategy credload.BackoffStrategy) *Executor {
	if classifier == nil {
		panic("classifier cannot be nil")
	}
	if strategy == nil {
		panic("strategy cannot be nil")
	}
	return &Executor{
		classifier: classifier,
		strategy:   strategy,
	}
}

// NewDefaultExecutor creates an executor with the credload retry defaults:
// credload.DefaultRetryMaxAttempts retries starting at
// credload.DefaultRetryInitialDelay and capped at credload.DefaultRetryMaxDelay.
// Store backends use it unless a backoff is supplied.
func NewDefaultExecutor(classifier credload.ErrorClassifier) *Executor {
	return NewExecutor(classifier, NewExponentialBackoff(credload.DefaultRetryMaxAttempts,
		WithInitialDelay(credload.DefaultRetryInitialDelay),
		WithMaxDelay(credload.DefaultRetryMaxDelay),
	))
}

// WithOnRetry returns a copy of the Executor that calls callback before each
// retry, after the delay is known and before waiting it out.
//
// The receiver is not modified.
//
// Example:
//
//	base := retry.NewDefaultExecutor(retry.NewRedisErrorClassifier())
//	logged := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
//	    logger.Verbose("attempt %d failed (%v), retrying in %v", attempt+1, err, delay)
//	})
//	// base still retries silently
func (e *Executor) WithOnRetry(callback func(attempt int, err error, delay time.Duration)) *Executor {
	clone := *e
	clone.onRetry = callback
	return &clone
}

// Execute runs the operation with retry logic.
// Returns the result of the last attempt (success or fatal error), or the
// context error if ctx ends while waiting between attempts.
func (e *Executor) Execute(ctx context.Context, operation func(ctx context.Context) error) error {
	// first call is not a retry
	lastErr := operation(ctx)
	if lastErr == nil {
		return nil
	}
	if !e.classifier.IsTransient(lastErr) {
		return lastErr
	}

	// a negative maximum retries until success, a fatal error or ctx ends
	maxAttempts := e.strategy.MaxAttempts()
	for attempt := 0; maxAttempts < 0 || attempt < maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := e.strategy.NextDelay(attempt)
		if e.onRetry != nil {
			e.onRetry(attempt, lastErr, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		lastErr = operation(ctx)
		if lastErr == nil {
			return nil
		}
		if !e.classifier.IsTransient(lastErr) {
			return lastErr
		}
	}

	// retries exhausted
	return lastErr
}
