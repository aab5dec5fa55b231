package retry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialBackoff_NextDelay_NoJitter(t *testing.T) {
	b := NewExponentialBackoff(5,
		WithInitialDelay(100*time.Millisecond),
		WithMaxDelay(1*time.Second),
		WithJitter(0),
	)

	want := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		400 * time.Millisecond,
		800 * time.Millisecond,
		1 * time.Second, // capped
		1 * time.Second,
	}
	for attempt, expected := range want {
		require.Equal(t, expected, b.NextDelay(attempt), "attempt %d", attempt)
	}
	require.Equal(t, 5, b.MaxAttempts())
}

func TestExponentialBackoff_Multiplier(t *testing.T) {
	b := NewExponentialBackoff(3,
		WithInitialDelay(10*time.Millisecond),
		WithMultiplier(3),
		WithJitter(0),
	)
	require.Equal(t, 90*time.Millisecond, b.NextDelay(2))
}

func TestExponentialBackoff_JitterBounds(t *testing.T) {
	tests := []struct {
		name   string
		random float64
		want   time.Duration
	}{
		{"lowest random", 0.0, 90 * time.Millisecond},
		{"midpoint", 0.5, 100 * time.Millisecond},
		{"high random", 0.75, 105 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewExponentialBackoff(1,
				WithInitialDelay(100*time.Millisecond),
				WithJitter(0.1),
				WithJitterFunc(func() float64 { return tt.random }),
			)
			require.Equal(t, tt.want, b.NextDelay(0))
		})
	}
}
