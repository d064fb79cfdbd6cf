package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// EventDeduper implements ports.EventDeduper using Redis SET NX.
type EventDeduper struct {
	client *goredis.Client
	prefix string
}

// NewEventDeduper creates a new Redis-backed event deduper.
func NewEventDeduper(client *goredis.Client) *EventDeduper {
	return &EventDeduper{
		client: client,
		prefix: "event:",
	}
}

// FirstDelivery atomically marks eventID as seen for source.
// Returns true the first time, false for every redelivery within ttl.
func (d *EventDeduper) FirstDelivery(ctx context.Context, source string, eventID string, ttl time.Duration) (bool, error) {
	key := d.prefix + source + ":" + eventID
	result, err := d.client.SetArgs(ctx, key, time.Now().Unix(), goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis event dedup: %w", err)
	}
	return result == "OK", nil
}

// Forget releases eventID so a failed delivery can be retried.
func (d *EventDeduper) Forget(ctx context.Context, source string, eventID string) error {
	if err := d.client.Del(ctx, d.prefix+source+":"+eventID).Err(); err != nil {
		return fmt.Errorf("redis event forget: %w", err)
	}
	return nil
}
