package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPool(t *testing.T) {
	p := NewPool(3)
	var mu sync.Mutex
	count := 0
	for i := 0; i < 5; i++ {
		p.Submit(func() {
			mu.Lock()
			count++
			mu.Unlock()
		})
	}
	p.Submit(nil)
	p.Stop()
	p.Stop()
	require.Equal(t, 5, count)
}

func TestNewPoolDefaultsToOneWorker(t *testing.T) {
	p := NewPool(0)
	done := make(chan struct{})
	p.Submit(func() { close(done) })
	<-done
	p.Stop()
}

func TestEach(t *testing.T) {
	p := NewPool(4)
	t.Cleanup(p.Stop)

	t.Run("collects all results", func(t *testing.T) {
		out := make([]int, 10)
		err := Each(context.Background(), p, len(out), func(_ context.Context, i int) error {
			out[i] = i * i
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, 81, out[9])
		require.Equal(t, 0, out[0])
	})

	t.Run("bounded concurrency", func(t *testing.T) {
		var running, peak int32
		err := Each(context.Background(), p, 12, func(context.Context, int) error {
			n := atomic.AddInt32(&running, 1)
			for {
				old := atomic.LoadInt32(&peak)
				if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&running, -1)
			return nil
		})
		require.NoError(t, err)
		require.LessOrEqual(t, atomic.LoadInt32(&peak), int32(4))
	})

	t.Run("first error wins", func(t *testing.T) {
		boom := errors.New("boom")
		err := Each(context.Background(), p, 8, func(_ context.Context, i int) error {
			if i == 3 {
				return boom
			}
			return nil
		})
		require.ErrorIs(t, err, boom)
	})

	t.Run("cancelled parent", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		var calls int32
		err := Each(ctx, p, 5, func(context.Context, int) error {
			atomic.AddInt32(&calls, 1)
			return nil
		})
		require.ErrorIs(t, err, context.Canceled)
		require.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("zero tasks", func(t *testing.T) {
		require.NoError(t, Each(context.Background(), p, 0, func(context.Context, int) error { return nil }))
	})
}
