package memory

import (
	"context"

	"agent-economy/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct {
	s *state
}

// Append assigns the next id. A rolled back append leaves a gap in the ids,
// as a database sequence would.
func (r *TransactionRepo) Append(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextTxID++
	t.ID = r.s.nextTxID
	r.s.txs = append(r.s.txs, *t)
	id := t.ID
	undoer(tx)(func() { r.s.removeTx(id) })
	return nil
}

func (r *TransactionRepo) ListByAgent(ctx context.Context, agentID string, limit int) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []domain.Transaction
	for i := len(r.s.txs) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		if r.s.txs[i].Involves(agentID) {
			out = append(out, r.s.txs[i])
		}
	}
	return out, nil
}

// ListAll snapshots the log in append order. It is not part of the repository port.
func (r *TransactionRepo) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]domain.Transaction, len(r.s.txs))
	copy(out, r.s.txs)
	return out, nil
}

// removeTx drops one rolled back entry; later appends from other
// transactions stay in place. Callers hold s.mu.
func (s *state) removeTx(id int64) {
	for i := len(s.txs) - 1; i >= 0; i-- {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return
		}
	}
}
