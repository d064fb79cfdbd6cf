package postgres

import (
	"context"
	"fmt"

	"agent-economy/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const transactionColumns = `id, from_account, to_account, amount, kind, description, reference, created_at`

// TransactionRepo implements ports.TransactionRepository. Rows are never
// updated or deleted.
type TransactionRepo struct {
	pool Pool
}

// NewTransactionRepo creates a new TransactionRepo.
func NewTransactionRepo(pool Pool) *TransactionRepo {
	return &TransactionRepo{pool: pool}
}

// Append inserts t within a database transaction and fills in its ID.
func (r *TransactionRepo) Append(ctx context.Context, tx pgx.Tx, t *domain.Transaction) error {
	query := `INSERT INTO transactions (from_account, to_account, amount, kind, description, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	err := tx.QueryRow(ctx, query,
		t.FromAccount, t.ToAccount, int64(t.Amount), string(t.Kind),
		t.Description, t.Reference, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("append transaction: %w", err)
	}
	return nil
}

// ListByAgent returns the newest transactions where agentID is either party.
func (r *TransactionRepo) ListByAgent(ctx context.Context, agentID string, limit int) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE to_account = $1 OR from_account = $1
		ORDER BY id DESC LIMIT $2`

	return r.list(ctx, query, agentID, limit)
}

func (r *TransactionRepo) list(ctx context.Context, query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		if err := rows.Scan(
			&t.ID, &t.FromAccount, &t.ToAccount, &t.Amount,
			&t.Kind, &t.Description, &t.Reference, &t.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
