package ports

//go:generate mockgen -source=collaborators.go -destination=mocks/mock_collaborators.go -package=mocks

import (
	"context"
	"time"

	"agent-economy/internal/core/domain"
)

// Notifier delivers direct messages to agents (external collaborator).
type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

// FeedPublisher posts public notices on the social feed (external collaborator).
type FeedPublisher interface {
	PublishNotice(ctx context.Context, agentID string, message string) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// EventDeduper suppresses duplicate delivery of upstream events.
type EventDeduper interface {
	// FirstDelivery atomically records eventID and returns true if it had not
	// been seen within ttl.
	FirstDelivery(ctx context.Context, source string, eventID string, ttl time.Duration) (bool, error)
}

// EventLogPurger is implemented by durable dedupers whose entries do not
// expire on their own.
type EventLogPurger interface {
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// SweepLock is a cross-replica lease around one scheduler sweep.
type SweepLock interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), ok bool, err error)
}
