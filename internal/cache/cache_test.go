package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestFakeCache(t *testing.T) {
	ctx := context.Background()
	c := &FakeCache{}
	require.Panics(t, func() { c.Get(ctx, "k") })
	require.Panics(t, func() { c.Set(ctx, "k", 1, 0) })
	require.Panics(t, func() { c.Del(ctx, "k") })
	require.Panics(t, func() { c.Ping(ctx) })
	require.NoError(t, c.Close())

	c.GetFn = func(ctx context.Context, key string) *redis.StringCmd {
		return redis.NewStringResult("v", nil)
	}
	c.SetFn = func(ctx context.Context, key string, val any, exp time.Duration) *redis.StatusCmd {
		return redis.NewStatusResult("OK", nil)
	}
	c.DelFn = func(ctx context.Context, keys ...string) *redis.IntCmd {
		return redis.NewIntResult(int64(len(keys)), nil)
	}
	c.PingFn = func(ctx context.Context) *redis.StatusCmd { return redis.NewStatusResult("PONG", nil) }
	c.CloseFn = func() error { return errors.New("close") }

	require.Equal(t, "v", c.Get(ctx, "k").Val())
	require.Equal(t, "OK", c.Set(ctx, "k", 1, 0).Val())
	require.Equal(t, int64(2), c.Del(ctx, "a", "b").Val())
	require.Equal(t, "PONG", c.Ping(ctx).Val())
	require.EqualError(t, c.Close(), "close")
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryFake()

	var out []int
	require.ErrorIs(t, GetJSON(ctx, c, "missing", &out), ErrMiss)

	require.NoError(t, SetJSON(ctx, c, "k", []int{1, 2, 3}, time.Minute))
	require.NoError(t, GetJSON(ctx, c, "k", &out))
	require.Equal(t, []int{1, 2, 3}, out)

	require.Equal(t, int64(1), c.Del(ctx, "k").Val())
	require.ErrorIs(t, GetJSON(ctx, c, "k", &out), ErrMiss)

	broken := &FakeCache{GetFn: func(ctx context.Context, key string) *redis.StringCmd {
		return redis.NewStringResult("", errors.New("conn refused"))
	}}
	err := GetJSON(ctx, broken, "k", &out)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrMiss)
}
