package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/credload/pkg/credload"
)

// mockOperation tracks invocation count and simulates transient failures
type mockOperation struct {
	invocations int
	failUntil   int // Fail for invocations < failUntil
	err         error
}

func (m *mockOperation) execute(ctx context.Context) error {
	m.invocations++
	if m.invocations < m.failUntil {
		if m.err != nil {
			return m.err
		}
		return &pgconn.PgError{Code: "08006", Message: "connection failure"}
	}
	return nil
}

func fastExecutor(maxAttempts int) *Executor {
	return NewExecutor(NewPostgreSQLErrorClassifier(), NewExponentialBackoff(maxAttempts,
		WithInitialDelay(time.Millisecond),
		WithJitter(0),
	))
}

func TestExecutor_SuccessOnFirstAttempt(t *testing.T) {
	op := &mockOperation{failUntil: 1}
	require.NoError(t, fastExecutor(3).Execute(context.Background(), op.execute))
	require.Equal(t, 1, op.invocations)
}

func TestExecutor_SuccessAfterRetries(t *testing.T) {
	op := &mockOperation{failUntil: 4}
	require.NoError(t, fastExecutor(5).Execute(context.Background(), op.execute))
	require.Equal(t, 4, op.invocations)
}

func TestExecutor_FatalErrorNoRetry(t *testing.T) {
	fatal := &pgconn.PgError{Code: "23514", Message: "check constraint violated"}
	op := &mockOperation{failUntil: 99, err: fatal}

	err := fastExecutor(5).Execute(context.Background(), op.execute)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	require.Equal(t, "23514", pgErr.Code)
	require.Equal(t, 1, op.invocations)
}

func TestExecutor_ExhaustedRetries(t *testing.T) {
	op := &mockOperation{failUntil: 999}

	err := fastExecutor(3).Execute(context.Background(), op.execute)

	require.Error(t, err)
	// Initial attempt + 3 retries
	require.Equal(t, 4, op.invocations)
}

func TestExecutor_ZeroAttemptsMeansNoRetry(t *testing.T) {
	op := &mockOperation{failUntil: 999}
	require.Error(t, fastExecutor(0).Execute(context.Background(), op.execute))
	require.Equal(t, 1, op.invocations)
}

func TestExecutor_ContextCancellation(t *testing.T) {
	executor := NewExecutor(NewPostgreSQLErrorClassifier(), NewExponentialBackoff(10,
		WithInitialDelay(time.Second),
	))

	ctx, cancel := context.WithCancel(context.Background())
	op := &mockOperation{failUntil: 999}

	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := executor.Execute(ctx, op.execute)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, op.invocations)
}

func TestExecutor_WithOnRetry(t *testing.T) {
	base := fastExecutor(3)

	var attempts []int
	withCallback := base.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		attempts = append(attempts, attempt)
	})

	op := &mockOperation{failUntil: 3}
	require.NoError(t, withCallback.Execute(context.Background(), op.execute))
	require.Equal(t, []int{0, 1}, attempts)
	require.Nil(t, base.onRetry, "WithOnRetry must not modify the receiver")
}

func TestNewExecutor_PanicsOnNil(t *testing.T) {
	require.Panics(t, func() { NewExecutor(nil, NewExponentialBackoff(1)) })
	require.Panics(t, func() { NewExecutor(NewPostgreSQLErrorClassifier(), nil) })
}

func TestNewDefaultExecutor_UsesCredloadDefaults(t *testing.T) {
	e := NewDefaultExecutor(NewRedisErrorClassifier())

	require.Equal(t, credload.DefaultRetryMaxAttempts, e.strategy.MaxAttempts())
	first := e.strategy.NextDelay(0)
	require.InDelta(t, float64(credload.DefaultRetryInitialDelay), float64(first), float64(credload.DefaultRetryInitialDelay)/10)
	require.LessOrEqual(t, e.strategy.NextDelay(20), credload.DefaultRetryMaxDelay+credload.DefaultRetryMaxDelay/10)
}
