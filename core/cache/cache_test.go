package cache

import (
	"club-api/core/constants"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return NewFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()})), mr
}

func TestOTP(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	otp, err := c.GetOTP(ctx, "coach:42")
	require.NoError(t, err)
	assert.Empty(t, otp)

	require.NoError(t, c.SetOTP(ctx, "coach:42", "123456"))
	otp, err = c.GetOTP(ctx, "coach:42")
	require.NoError(t, err)
	assert.Equal(t, "123456", otp)

	mr.FastForward(constants.OTPExpiration + time.Second)
	otp, err = c.GetOTP(ctx, "coach:42")
	require.NoError(t, err)
	assert.Empty(t, otp)
}

func TestTokenBlacklist(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.AddToTokenBlacklist(ctx, "tok", time.Minute))
	ok, err := c.IsTokenBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = c.IsTokenBlacklisted(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.AddToTokenBlacklist(ctx, "expired", 0))
	ok, _ = c.IsTokenBlacklisted(ctx, "expired")
	assert.False(t, ok)
}

func TestLoginAttempts(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for i := 1; i < constants.MaxLoginAttempts; i++ {
		n, err := c.IncrementLoginAttempt(ctx, "coach:a@b.c")
		require.NoError(t, err)
		assert.EqualValues(t, i, n)
	}
	blocked, err := c.IsLoginBlocked(ctx, "coach:a@b.c")
	require.NoError(t, err)
	assert.False(t, blocked)

	_, err = c.IncrementLoginAttempt(ctx, "coach:a@b.c")
	require.NoError(t, err)
	blocked, err = c.IsLoginBlocked(ctx, "coach:a@b.c")
	require.NoError(t, err)
	assert.True(t, blocked)

	mr.FastForward(constants.BlockDuration + time.Second)
	blocked, err = c.IsLoginBlocked(ctx, "coach:a@b.c")
	require.NoError(t, err)
	assert.False(t, blocked)

	_, _ = c.IncrementLoginAttempt(ctx, "coach:x")
	require.NoError(t, c.Del(ctx, LoginKey("coach:x")))
	assert.False(t, mr.Exists(LoginKey("coach:x")))
}
