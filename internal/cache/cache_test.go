package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	c := NewMemory(2, time.Minute)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), 0))
	got, err := c.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestMemoryEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewMemory(2, time.Minute)
	ctx := context.Background()
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)
	_ = c.Set(ctx, "c", []byte("3"), 0)

	_, err := c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Equal(t, 2, c.Len())
}

func TestMemoryExpires(t *testing.T) {
	c := NewMemory(4, 20*time.Millisecond)
	ctx := context.Background()
	_ = c.Set(ctx, "a", []byte("1"), 0)

	require.Eventually(t, func() bool {
		_, err := c.Get(ctx, "a")
		return err != nil
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryCloseEmpties(t *testing.T) {
	c := NewMemory(0, time.Minute)
	_ = c.Set(context.Background(), "a", []byte("1"), 0)
	require.NoError(t, c.Close())
	assert.Equal(t, 0, c.Len())
}

func TestRedisPrefixKey(t *testing.T) {
	tests := []struct {
		prefix, key, want string
	}{
		{"affiliates:", "146:2024", "affiliates:146:2024"},
		{"", "146:2024", "146:2024"},
	}
	for _, tt := range tests {
		c := &Redis{prefix: tt.prefix}
		assert.Equal(t, tt.want, c.prefixKey(tt.key))
	}
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := NewRedis(context.Background(), RedisConfig{URL: "not-a-url://"})
	assert.Error(t, err)
}

func TestNewRedisFailsWhenUnreachable(t *testing.T) {
	_, err := NewRedis(context.Background(), RedisConfig{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	assert.Error(t, err)
}
