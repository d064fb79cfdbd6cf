package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("PAY_001", "Insufficient funds", http.StatusPaymentRequired),
			expected: "[PAY_001] Insufficient funds",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "DB error", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] DB error: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := Wrap("SYS_001", "wrapped", http.StatusInternalServerError, inner)

	assert.True(t, errors.Is(appErr, inner))
}

func TestAppError_IsNilUnwrap(t *testing.T) {
	appErr := New("PAY_001", "test", http.StatusBadRequest)
	assert.Nil(t, appErr.Unwrap())
}

func TestCodedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"InvalidSignature", ErrInvalidSignature(), "SEC_002", 401},
		{"TimestampExpired", ErrTimestampExpired(), "SEC_003", 403},
		{"DuplicateEvent", ErrDuplicateEvent(), "SEC_004", 409},
		{"InsufficientFunds", ErrInsufficientFunds(), "PAY_001", 402},
		{"InvalidAmount", ErrInvalidAmount(), "PAY_002", 400},
		{"NotFound", ErrNotFound("Bounty"), "PAY_004", 404},
		{"SelfOperation", ErrSelfOperationNotAllowed(), "PAY_008", 400},
		{"AlreadyClaimed", ErrAlreadyClaimed(), "BNT_001", 409},
		{"BountyExpired", ErrBountyExpired(), "BNT_002", 410},
		{"BountyNotActive", ErrBountyNotActive(), "BNT_003", 409},
		{"Forbidden", ErrForbidden(), "BNT_004", 403},
		{"AlreadyClaimedToday", ErrAlreadyClaimedToday(), "RWD_001", 409},
		{"InvalidToken", ErrInvalidToken(), "AUTH_003", 401},
		{"RateLimit", ErrRateLimitExceeded(), "RATE_001", 429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
		})
	}
}

func TestSystemErrors(t *testing.T) {
	inner := fmt.Errorf("pg: connection closed")
	dbErr := ErrDatabaseError(inner)
	assert.Equal(t, "SYS_001", dbErr.Code)
	assert.Equal(t, 500, dbErr.HTTPStatus)
	assert.True(t, errors.Is(dbErr, inner))

	unavailable := ErrServiceUnavailable(inner)
	assert.Equal(t, "SYS_002", unavailable.Code)
	assert.Equal(t, 503, unavailable.HTTPStatus)
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("tip: %w", ErrInsufficientFunds())

	assert.True(t, HasCode(wrapped, "PAY_001"))
	assert.False(t, HasCode(wrapped, "PAY_002"))
	assert.False(t, HasCode(errors.New("plain"), "PAY_001"))
}

func TestNotFoundEntity(t *testing.T) {
	err := ErrNotFound("Account")
	assert.Contains(t, err.Message, "Account")
	assert.Equal(t, "PAY_004", err.Code)
}
