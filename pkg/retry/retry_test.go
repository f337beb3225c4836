package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	errTransient = errors.New("transient")
	errFatal     = errors.New("fatal")
)

func testPolicy(slept *[]time.Duration) Policy {
	return Policy{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   time.Second,
		Retryable:  func(err error) bool { return errors.Is(err, errTransient) },
		Sleep: func(_ context.Context, d time.Duration) error {
			*slept = append(*slept, d)
			return nil
		},
		// Always pick the ceiling so delays are predictable.
		Jitter: func(n int64) int64 { return n - 1 },
	}
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	var slept []time.Duration
	calls := 0

	err := Do(context.Background(), testPolicy(&slept), func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, slept)
}

func TestDoStopsAfterMaxRetries(t *testing.T) {
	var slept []time.Duration
	calls := 0

	err := Do(context.Background(), testPolicy(&slept), func(context.Context) error {
		calls++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 4, calls)
	assert.Len(t, slept, 3)
}

func TestDoDoesNotRetryFatalErrors(t *testing.T) {
	var slept []time.Duration
	calls := 0

	err := Do(context.Background(), testPolicy(&slept), func(context.Context) error {
		calls++
		return errFatal
	})

	assert.ErrorIs(t, err, errFatal)
	assert.Equal(t, 1, calls)
	assert.Empty(t, slept)
}

func TestDoStopsWhenSleepIsInterrupted(t *testing.T) {
	p := DefaultPolicy(nil)
	p.Sleep = func(context.Context, time.Duration) error { return context.Canceled }
	calls := 0

	err := Do(context.Background(), p, func(context.Context) error {
		calls++
		return errTransient
	})

	assert.ErrorIs(t, err, errTransient)
	assert.Equal(t, 1, calls)
}

func TestBackoffIsCapped(t *testing.T) {
	var slept []time.Duration
	p := testPolicy(&slept)

	assert.Equal(t, time.Second, p.Backoff(10))
	assert.Equal(t, 400*time.Millisecond, p.Backoff(2))
}
