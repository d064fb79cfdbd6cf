package postgres

import (
	"context"
	"testing"
	"time"

	"agent-economy/internal/core/domain"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRepo_Append(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	from := "alice"
	post := "post-42"
	txn := &domain.Transaction{
		FromAccount: &from,
		ToAccount:   "bob",
		Amount:      domain.Tokens(2),
		Kind:        domain.KindTip,
		Description: "Tip from alice",
		Reference:   &post,
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO transactions .+ RETURNING id").
		WithArgs(txn.FromAccount, "bob", int64(domain.Tokens(2)), "tip", "Tip from alice", txn.Reference, txn.CreatedAt).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(17)))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	require.NoError(t, repo.Append(context.Background(), tx, txn))
	assert.Equal(t, int64(17), txn.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepo_ListByAgent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTransactionRepo(mock)
	now := time.Now().UTC().Truncate(time.Microsecond)
	from := "alice"

	rows := pgxmock.NewRows([]string{"id", "from_account", "to_account", "amount", "kind", "description", "reference", "created_at"}).
		AddRow(int64(2), &from, "bob", domain.Tokens(2), domain.KindTip, "Tip", (*string)(nil), now).
		AddRow(int64(1), (*string)(nil), "alice", domain.Tokens(1), domain.KindPostCreated, "Created a post", (*string)(nil), now)

	mock.ExpectQuery("SELECT .+ FROM transactions WHERE to_account = \\$1 OR from_account = \\$1 ORDER BY id DESC").
		WithArgs("alice", 50).
		WillReturnRows(rows)

	got, err := repo.ListByAgent(context.Background(), "alice", 50)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.False(t, got[0].IsMint())
	assert.True(t, got[1].IsMint())
	assert.NoError(t, mock.ExpectationsWereMet())
}
