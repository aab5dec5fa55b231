package store

import (
	"context"
	"time"

	"github.com/vvka-141/credload/internal/logging"
	"github.com/vvka-141/credload/internal/retry"
	"github.com/vvka-141/credload/pkg/credload"
)

// Backend is a credload.Store that can also be read back and released.
type Backend interface {
	credload.Store

	// Name is the backend name used in reports, one of credload.Store*.
	Name() string

	// Snapshot returns a copy of every stored username and PIN.
	Snapshot(ctx context.Context) (credload.Credentials, error)

	// Close releases connections held by the backend.
	Close() error
}

// Option configures the network backends.
type Option func(*settings)

type settings struct {
	logger credload.Logger
	// backoff overrides the credload retry defaults when set
	backoff credload.BackoffStrategy
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger credload.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithBackoff replaces the default retry backoff.
func WithBackoff(backoff credload.BackoffStrategy) Option {
	return func(s *settings) {
		s.backoff = backoff
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		logger: logging.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) executor(name string, classifier credload.ErrorClassifier) *retry.Executor {
	logger := s.logger
	exec := retry.NewDefaultExecutor(classifier)
	if s.backoff != nil {
		exec = retry.NewExecutor(classifier, s.backoff)
	}
	return exec.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("%s: attempt %d failed (%v), retrying in %v", name, attempt+1, err, delay.Round(time.Millisecond))
	})
}
