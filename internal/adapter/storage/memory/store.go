// Package memory is the non-persistent storage variant, selected with
// database.driver=memory. Transactions take per-row locks, held until commit
// or rollback, and keep an undo log, so a failed operation leaves no partial
// effect while unrelated agents proceed in parallel.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type state struct {
	mu    sync.RWMutex
	locks rowLocks
	now   func() time.Time

	accounts   map[string]*domain.Account
	txs        []domain.Transaction
	nextTxID   int64
	bounties   map[uuid.UUID]*domain.Bounty
	compliance map[string]*domain.ComplianceRecord
	schedule   map[string]time.Time
}

// Store bundles the in-memory repositories over one shared state.
type Store struct {
	Accounts       *AccountRepo
	Transactions   *TransactionRepo
	Bounties       *BountyRepo
	Compliance     *ComplianceRepo
	SchedulerState *SchedulerStateRepo
	Transactor     *Transactor
}

// NewStore creates an empty store. now supplies updated_at timestamps; nil
// means time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	s := &state{
		locks:      rowLocks{rows: make(map[string]chan struct{})},
		now:        now,
		accounts:   make(map[string]*domain.Account),
		bounties:   make(map[uuid.UUID]*domain.Bounty),
		compliance: make(map[string]*domain.ComplianceRecord),
		schedule:   make(map[string]time.Time),
	}
	return &Store{
		Accounts:       &AccountRepo{s: s},
		Transactions:   &TransactionRepo{s: s},
		Bounties:       &BountyRepo{s: s},
		Compliance:     &ComplianceRepo{s: s},
		SchedulerState: &SchedulerStateRepo{s: s},
		Transactor:     &Transactor{s: s},
	}
}

// Ping implements ports.HealthChecker.
func (st *Store) Ping(context.Context) error { return nil }

// Name implements ports.HealthChecker.
func (st *Store) Name() string { return "memory" }

// rowLocks hands out one lock per row key. A transaction holds the rows it
// touched until it ends, like SELECT ... FOR UPDATE.
type rowLocks struct {
	mu   sync.Mutex
	rows map[string]chan struct{}
}

func (l *rowLocks) get(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.rows[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.rows[key] = ch
	}
	return ch
}

func accountKey(agentID string) string { return "account:" + agentID }

// Transactor implements ports.DBTransactor.
type Transactor struct {
	s *state
}

// Begin returns a transaction whose Rollback undoes every mutation made
// through it. Row locks are taken lazily by the repositories.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &memTx{s: t.s, held: make(map[string]struct{})}, nil
}

// memTx satisfies pgx.Tx; only Commit and Rollback carry meaning.
type memTx struct {
	s    *state
	held map[string]struct{}
	undo []func()
	done bool
}

// lock acquires the keys not already held, in ascending order, so two
// transactions locking the same pair never deadlock.
func (t *memTx) lock(ctx context.Context, keys ...string) error {
	var want []string
	for _, k := range keys {
		if _, ok := t.held[k]; !ok {
			want = append(want, k)
		}
	}
	sort.Strings(want)
	for i, k := range want {
		if i > 0 && want[i-1] == k {
			continue
		}
		select {
		case t.s.locks.get(k) <- struct{}{}:
			t.held[k] = struct{}{}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (t *memTx) release() {
	for k := range t.held {
		<-t.s.locks.get(k)
	}
	t.held = nil
}

// record registers an undo step. Callers hold s.mu.
func (t *memTx) record(fn func()) {
	t.undo = append(t.undo, fn)
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undo = nil
	t.release()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.s.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.s.mu.Unlock()
	t.undo = nil
	t.release()
	return nil
}

func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (t *memTx) Conn() *pgx.Conn                                               { return nil }

// lockRows takes row locks for a memory transaction; other transactions
// (and a nil tx) lock nothing.
func lockRows(ctx context.Context, tx pgx.Tx, keys ...string) error {
	if mt, ok := tx.(*memTx); ok && !mt.done {
		return mt.lock(ctx, keys...)
	}
	return nil
}

// undoer returns the transaction's undo recorder, or a no-op when the
// caller passed something other than a memory transaction.
func undoer(tx pgx.Tx) func(func()) {
	if mt, ok := tx.(*memTx); ok && !mt.done {
		return mt.record
	}
	return func(func()) {}
}
