package quota_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/exam-tracker/internal/quota"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedis_IncrementAndCurrent(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	c := quota.NewRedis(client, time.UTC)
	day := quota.Day(time.Now().UTC())

	n, err := c.Current(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = c.Increment(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = c.Increment(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = c.Current(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := mr.Get(quota.Key(day))
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestRedis_SetsExpiryAfterEndOfDay(t *testing.T) {
	ctx := context.Background()
	mr, client := setupRedis(t)
	c := quota.NewRedis(client, time.UTC)
	day := quota.Day(time.Now().UTC())

	_, err := c.Increment(ctx, day)
	require.NoError(t, err)

	ttl := mr.TTL(quota.Key(day))
	assert.Greater(t, ttl, time.Hour, "key outlives the grace hour")
	assert.LessOrEqual(t, ttl, 25*time.Hour)
}

func TestRedis_ResetsOnNewDay(t *testing.T) {
	ctx := context.Background()
	_, client := setupRedis(t)
	c := quota.NewRedis(client, time.UTC)
	today := time.Now().UTC()

	_, err := c.Increment(ctx, quota.Day(today))
	require.NoError(t, err)
	_, err = c.Increment(ctx, quota.Day(today))
	require.NoError(t, err)

	tomorrow := quota.Day(today.AddDate(0, 0, 1))
	n, err := c.Increment(ctx, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedis_InvalidDay(t *testing.T) {
	_, client := setupRedis(t)
	c := quota.NewRedis(client, time.UTC)

	_, err := c.Increment(context.Background(), "not-a-day")

	assert.Error(t, err)
}

func TestRedis_ServerDown(t *testing.T) {
	mr, client := setupRedis(t)
	c := quota.NewRedis(client, time.UTC)
	mr.Close()

	_, err := c.Increment(context.Background(), quota.Day(time.Now().UTC()))

	assert.Error(t, err)
}
