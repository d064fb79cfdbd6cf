package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DeferredQueue runs tasks after a jittered delay on tracked timers. Stop
// cancels everything still waiting and waits for running tasks to return.
type DeferredQueue struct {
	jitter time.Duration
	log    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	timers  map[uint64]*time.Timer
	nextID  uint64
	stopped bool
	running sync.WaitGroup

	// randN returns a value in [0, n); replaceable in tests.
	randN func(n int64) int64
}

// NewDeferredQueue creates a queue adding up to jitter to every delay.
func NewDeferredQueue(jitter time.Duration, log zerolog.Logger) *DeferredQueue {
	ctx, cancel := context.WithCancel(context.Background())
	return &DeferredQueue{
		jitter: jitter,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		timers: make(map[uint64]*time.Timer),
		randN:  rand.Int64N,
	}
}

// Schedule runs task after delay plus a random jitter. It returns false if
// the queue is stopped.
func (q *DeferredQueue) Schedule(name string, delay time.Duration, task func(ctx context.Context)) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.stopped {
		return false
	}

	if q.jitter > 0 {
		delay += time.Duration(q.randN(int64(q.jitter)))
	}

	id := q.nextID
	q.nextID++
	q.timers[id] = time.AfterFunc(delay, func() {
		q.mu.Lock()
		if _, pending := q.timers[id]; !pending || q.stopped {
			q.mu.Unlock()
			return
		}
		delete(q.timers, id)
		q.running.Add(1)
		q.mu.Unlock()

		defer q.running.Done()
		defer func() {
			if r := recover(); r != nil {
				q.log.Error().Interface("panic", r).Str("task", name).Msg("deferred task panicked")
			}
		}()
		task(q.ctx)
	})

	q.log.Debug().Str("task", name).Dur("delay", delay).Msg("task scheduled")
	return true
}

// Pending returns the number of tasks still waiting for their timer.
func (q *DeferredQueue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.timers)
}

// Stop cancels pending tasks, signals running ones through their context
// and waits for them. It is safe to call more than once.
func (q *DeferredQueue) Stop() {
	q.mu.Lock()
	if q.stopped {
		q.mu.Unlock()
		q.running.Wait()
		return
	}
	q.stopped = true
	cancelled := len(q.timers)
	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()

	q.cancel()
	q.running.Wait()
	q.log.Info().Int("cancelled", cancelled).Msg("deferred queue stopped")
}
