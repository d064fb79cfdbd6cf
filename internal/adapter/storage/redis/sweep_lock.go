package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only if this holder still owns it.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// SweepLock implements ports.SweepLock as a Redis lease (SET NX PX).
type SweepLock struct {
	client *goredis.Client
	prefix string
}

// NewSweepLock creates a new Redis-backed sweep lease.
func NewSweepLock(client *goredis.Client) *SweepLock {
	return &SweepLock{
		client: client,
		prefix: "lock:",
	}
}

// Acquire takes the named lease for ttl. ok is false when another replica
// holds it. The returned release is safe to call after the lease expired.
func (l *SweepLock) Acquire(ctx context.Context, name string, ttl time.Duration) (func(), bool, error) {
	key := l.prefix + name
	token := uuid.NewString()

	result, err := l.client.SetArgs(ctx, key, token, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis acquire lease %s: %w", name, err)
	}
	if result != "OK" {
		return nil, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		releaseScript.Run(ctx, l.client, []string{key}, token) //nolint:errcheck
	}
	return release, true, nil
}
