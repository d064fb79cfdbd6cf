package service

import (
	"context"
	"fmt"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/core/ports"
	"agent-economy/internal/metrics"
	"agent-economy/pkg/apperror"

	"github.com/rs/zerolog"
)

// TipServiceImpl implements ports.TipService.
type TipServiceImpl struct {
	accounts   ports.AccountRepository
	txLog      ports.TransactionRepository
	transactor ports.DBTransactor
	notifier   ports.Notifier
	clock      ports.Clock
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewTipService creates a new TipServiceImpl.
func NewTipService(
	accounts ports.AccountRepository,
	txLog ports.TransactionRepository,
	transactor ports.DBTransactor,
	notifier ports.Notifier,
	clock ports.Clock,
	m *metrics.Metrics,
	log zerolog.Logger,
) *TipServiceImpl {
	return &TipServiceImpl{
		accounts:   accounts,
		txLog:      txLog,
		transactor: transactor,
		notifier:   notifier,
		clock:      clock,
		metrics:    m,
		log:        log,
	}
}

// Tip transfers amount from sender to receiver. Both accounts are locked in
// ascending id order and both sides commit together.
func (s *TipServiceImpl) Tip(ctx context.Context, req ports.TipRequest) (*domain.Transaction, error) {
	txn, err := s.tip(ctx, req)
	if err != nil {
		return nil, reject(s.metrics, "tip", err)
	}
	return txn, nil
}

func (s *TipServiceImpl) tip(ctx context.Context, req ports.TipRequest) (*domain.Transaction, error) {
	if req.FromAgentID == req.ToAgentID {
		return nil, apperror.ErrSelfOperationNotAllowed()
	}
	if !req.Amount.IsPositive() {
		return nil, apperror.ErrInvalidAmount()
	}

	sender, err := s.accounts.GetByAgentID(ctx, req.FromAgentID)
	if err != nil {
		return nil, ledgerError("get sender", err)
	}
	if sender == nil {
		return nil, apperror.ErrInsufficientFunds()
	}
	if _, err := s.accounts.GetOrCreate(ctx, req.ToAgentID); err != nil {
		return nil, ledgerError("get or create receiver", err)
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	locked, err := s.accounts.LockForUpdate(ctx, dbTx, req.FromAgentID, req.ToAgentID)
	if err != nil {
		return nil, ledgerError("lock accounts", err)
	}
	if locked[req.FromAgentID].Balance < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	if err := s.accounts.ApplyDelta(ctx, dbTx, req.FromAgentID, domain.FieldBalance, -req.Amount); err != nil {
		return nil, ledgerError("debit sender", err)
	}
	if err := s.accounts.ApplyDelta(ctx, dbTx, req.ToAgentID, domain.FieldBalance, req.Amount); err != nil {
		return nil, ledgerError("credit receiver", err)
	}

	from := req.FromAgentID
	txn := &domain.Transaction{
		FromAccount: &from,
		ToAccount:   req.ToAgentID,
		Amount:      req.Amount,
		Kind:        domain.KindTip,
		Description: fmt.Sprintf("Tip from %s", req.FromAgentID),
		Reference:   req.PostID,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.txLog.Append(ctx, dbTx, txn); err != nil {
		return nil, ledgerError("append transaction", err)
	}

	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.metrics.ObserveTransaction(string(domain.KindTip), int64(req.Amount))
	s.log.Info().
		Str("from", req.FromAgentID).
		Str("to", req.ToAgentID).
		Int64("amount", int64(req.Amount)).
		Int64("tx_id", txn.ID).
		Msg("tip sent")

	s.notify(ctx, domain.Notification{
		AgentID:   req.ToAgentID,
		Kind:      domain.NotifyTipReceived,
		Message:   fmt.Sprintf("%s tipped you %s tokens", req.FromAgentID, req.Amount),
		CreatedAt: txn.CreatedAt,
	})

	return txn, nil
}

// notify is best-effort; the tip is already committed.
func (s *TipServiceImpl) notify(ctx context.Context, n domain.Notification) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.Warn().Err(err).Str("agent_id", n.AgentID).Str("kind", string(n.Kind)).Msg("notification failed")
	}
}
