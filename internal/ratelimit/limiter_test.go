package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntervalSpacing(t *testing.T) {
	// 10 req/s with burst 1 -> at least 100ms between permits
	limiter := NewInterval("test", 10)

	ctx := context.Background()
	var timestamps []time.Time
	for i := 0; i < 4; i++ {
		require.NoError(t, limiter.Wait(ctx))
		timestamps = append(timestamps, time.Now())
	}

	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		// Allow a small scheduling tolerance below the nominal interval.
		assert.GreaterOrEqual(t, gap, 90*time.Millisecond, "permits %d and %d too close", i-1, i)
	}
}

func TestConcurrentWaitersAreSpaced(t *testing.T) {
	limiter := NewInterval("test", 20) // 50ms interval

	var mu sync.Mutex
	var timestamps []time.Time

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := limiter.Wait(context.Background()); err != nil {
				t.Errorf("Wait failed: %v", err)
				return
			}
			mu.Lock()
			timestamps = append(timestamps, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, timestamps, 5)
	// 5 permits at 50ms spacing need at least 4*50ms of wall time.
	span := timestamps[len(timestamps)-1].Sub(timestamps[0])
	// Timestamps are recorded after Wait returns, so ordering among goroutines
	// is not exact; check the total span instead of pairwise gaps.
	assert.GreaterOrEqual(t, span, 180*time.Millisecond)
}

func TestWaitCancellation(t *testing.T) {
	limiter := NewInterval("test", 1) // 1s interval

	// Consume the initial token.
	require.True(t, limiter.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- limiter.Wait(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("cancelled Wait did not return promptly")
	}

	// The gate must remain usable after a cancelled wait.
	ctx2, cancel2 := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel2()
	require.NoError(t, limiter.Wait(ctx2))
}

func TestSetRate(t *testing.T) {
	limiter := NewInterval("test", 1)
	assert.Equal(t, 1.0, limiter.Rate())

	limiter.SetRate(25)
	assert.Equal(t, 25.0, limiter.Rate())

	// At 25 req/s three sequential waits complete well under a second.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx))
	}
}

func TestName(t *testing.T) {
	limiter := NewInterval("kinopoisk", 5)
	assert.Equal(t, "kinopoisk", limiter.Name())
}
