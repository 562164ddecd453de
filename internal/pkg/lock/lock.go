// Package lock serializes refund computation per payment intent. Two
// concurrent cancellations sharing one intent would otherwise both read a
// stale refunded total and together overshoot the captured amount.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	rd "github.com/redis/go-redis/v9"
)

// Deleting the lock only when the token matches avoids releasing a lock that
// has already expired and been re-acquired by another holder.
const releaseIfMatch = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
  return redis.call('DEL', KEYS[1])
end
return 0
`

const (
	defaultTTL   = 30 * time.Second
	retryBackoff = 50 * time.Millisecond
)

// Locker acquires short-lived redis locks keyed by payment intent id.
type Locker struct {
	rdb *rd.Client
	ttl time.Duration
}

// New constructs a Locker; a non-positive ttl falls back to the default.
func New(rdb *rd.Client, ttl time.Duration) *Locker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Locker{rdb: rdb, ttl: ttl}
}

func intentKey(intentID string) string {
	return fmt.Sprintf("mealdesk:refund:lock:%s", intentID)
}

// Acquire blocks until the per-intent lock is held or ctx expires, then
// returns a release function. Release failures are ignored: the TTL bounds
// how long a stale lock can linger.
func (l *Locker) Acquire(ctx context.Context, intentID string) (func(), error) {
	key := intentKey(intentID)
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire refund lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = l.rdb.Eval(releaseCtx, releaseIfMatch, []string{key}, token).Err()
	}
	return release, nil
}
