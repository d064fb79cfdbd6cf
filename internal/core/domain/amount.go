package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinorUnitsPerToken is the number of indivisible minor units in one token.
const MinorUnitsPerToken = 1_000_000

const fractionDigits = 6

var (
	ErrAmountOverflow = errors.New("amount overflow")
	ErrInvalidAmount  = errors.New("invalid amount")
)

// Amount is a token quantity in minor units. Never use floating point for it.
type Amount int64

// Tokens converts a whole-token count to minor units.
func Tokens(n int64) Amount {
	return Amount(n * MinorUnitsPerToken)
}

// IsPositive reports whether a > 0.
func (a Amount) IsPositive() bool {
	return a > 0
}

// Add returns a+b, failing instead of wrapping around.
func (a Amount) Add(b Amount) (Amount, error) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// MulBps returns floor(a * bps / 10000) without intermediate overflow for
// realistic balances.
func (a Amount) MulBps(bps int64) (Amount, error) {
	if a < 0 || bps < 0 {
		return 0, ErrInvalidAmount
	}
	whole := int64(a) / 10_000
	rem := int64(a) % 10_000
	if bps != 0 && whole > math.MaxInt64/bps {
		return 0, ErrAmountOverflow
	}
	return Amount(whole*bps + rem*bps/10_000), nil
}

// String renders the amount as a decimal token string ("12.5", "0.000001").
func (a Amount) String() string {
	neg := a < 0
	u := uint64(a)
	if neg {
		u = uint64(-(a + 1)) + 1
	}
	whole := u / MinorUnitsPerToken
	frac := u % MinorUnitsPerToken

	s := strconv.FormatUint(whole, 10)
	if frac != 0 {
		f := fmt.Sprintf("%06d", frac)
		s += "." + strings.TrimRight(f, "0")
	}
	if neg {
		s = "-" + s
	}
	return s
}

// ParseAmount parses a decimal token string into minor units. At most six
// fractional digits are accepted; negative values are rejected.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	wholePart, fracPart, hasDot := strings.Cut(s, ".")
	if !allDigits(wholePart) || (hasDot && !allDigits(fracPart)) || len(fracPart) > fractionDigits {
		return 0, ErrInvalidAmount
	}

	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, ErrAmountOverflow
		}
		return 0, ErrInvalidAmount
	}
	if whole > math.MaxInt64/MinorUnitsPerToken {
		return 0, ErrAmountOverflow
	}

	var frac int64
	if fracPart != "" {
		padded := fracPart + strings.Repeat("0", fractionDigits-len(fracPart))
		frac, err = strconv.ParseInt(padded, 10, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
	}

	return Amount(whole * MinorUnitsPerToken).Add(Amount(frac))
}

// allDigits reports whether s is a non-empty run of ASCII digits.
func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
