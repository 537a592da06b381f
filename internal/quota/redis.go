package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix namespaces the per-day counter keys.
const KeyPrefix = "map_counter:"

// expiryGrace keeps a day's key around briefly after local midnight.
const expiryGrace = time.Hour

// Redis is a Counter shared by every instance pointed at the same server.
// Each day is its own key, expiring an hour after that day ends.
type Redis struct {
	client redis.Cmdable
	loc    *time.Location
}

// NewRedis returns a Counter backed by client. loc decides when a day ends.
func NewRedis(client redis.Cmdable, loc *time.Location) *Redis {
	if loc == nil {
		loc = time.Local
	}
	return &Redis{client: client, loc: loc}
}

// Key returns the Redis key holding day's count.
func Key(day string) string {
	return KeyPrefix + day
}

func (r *Redis) Increment(ctx context.Context, day string) (int, error) {
	expireAt, err := r.expiry(day)
	if err != nil {
		return 0, fmt.Errorf("quota.Redis.Increment: %w", err)
	}

	var incr *redis.IntCmd
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, Key(day))
		pipe.ExpireAt(ctx, Key(day), expireAt)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("quota.Redis.Increment: %w", err)
	}
	return int(incr.Val()), nil
}

func (r *Redis) Current(ctx context.Context, day string) (int, error) {
	n, err := r.client.Get(ctx, Key(day)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("quota.Redis.Current: %w", err)
	}
	return n, nil
}

// expiry is local midnight at the end of day plus expiryGrace.
func (r *Redis) expiry(day string) (time.Time, error) {
	start, err := time.ParseInLocation(DayLayout, day, r.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day %q: %w", day, err)
	}
	return start.AddDate(0, 0, 1).Add(expiryGrace), nil
}
