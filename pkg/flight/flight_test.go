package flight

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCacheGetCachesSuccess(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(_ context.Context, k string) (string, error) {
		calls.Add(1)
		return "value:" + k, nil
	})

	for range 3 {
		v, err := c.Get(context.Background(), "a")
		require.NoError(t, err)
		require.Equal(t, "value:a", v)
	}
	require.EqualValues(t, 1, calls.Load())

	c.Forget("a")
	_, err := c.Get(context.Background(), "a")
	require.NoError(t, err)
	require.EqualValues(t, 2, calls.Load())
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("boom")
	c := NewCache(func(_ context.Context, _ int) (int, error) {
		calls.Add(1)
		return 0, boom
	})

	_, err := c.Get(context.Background(), 1)
	require.ErrorIs(t, err, boom)
	_, err = c.Get(context.Background(), 1)
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 2, calls.Load())
}

func TestCacheCoalescesConcurrentCalls(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	c := NewCache(func(_ context.Context, _ string) (int, error) {
		calls.Add(1)
		<-release
		return 7, nil
	})

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(context.Background(), "k")
			if err == nil {
				results[i] = v
			}
		}()
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	require.EqualValues(t, 1, calls.Load())
	for _, v := range results {
		require.Equal(t, 7, v)
	}
}

func TestCacheWaiterHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	started := make(chan struct{})
	c := NewCache(func(_ context.Context, _ string) (int, error) {
		close(started)
		<-release
		return 1, nil
	})

	go func() { _, _ = c.Get(context.Background(), "k") }()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Get(ctx, "k")
	require.ErrorIs(t, err, context.Canceled)
}

func TestCacheExpiryZeroHoldsForever(t *testing.T) {
	var calls atomic.Int32
	c := NewCache(func(_ context.Context, _ string) (string, error) {
		calls.Add(1)
		return "v", nil
	})
	c.Expiry(0)

	_, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	_, err = c.Get(context.Background(), "k")
	require.NoError(t, err)
	require.EqualValues(t, 1, calls.Load())
}
