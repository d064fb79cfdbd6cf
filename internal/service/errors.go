package service

import (
	"errors"
	"fmt"

	"agent-economy/internal/core/domain"
	"agent-economy/internal/metrics"
	"agent-economy/pkg/apperror"
)

// ledgerError maps repository errors to coded application errors.
// AppErrors pass through unchanged.
func ledgerError(op string, err error) error {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrInsufficientFunds):
		return apperror.ErrInsufficientFunds()
	case errors.Is(err, domain.ErrAccountNotFound):
		return apperror.ErrNotFound("account")
	case errors.Is(err, domain.ErrAgentNotRegistered):
		return apperror.ErrNotFound("agent")
	case errors.Is(err, domain.ErrAmountOverflow), errors.Is(err, domain.ErrInvalidAmount):
		return apperror.ErrInvalidAmount()
	default:
		return apperror.ErrDatabaseError(fmt.Errorf("%s: %w", op, err))
	}
}

// reject records a business-rule rejection and returns err unchanged.
func reject(m *metrics.Metrics, op string, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		m.ObserveRejection(op, appErr.Code)
	}
	return err
}
