// Package core holds the domain types of the expense ledger: calendar
// dates, money amounts in cents, categories and expenses, plus the
// sentinel errors every layer above reports against.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a positive amount stored as integer cents to avoid
// floating-point drift in sums.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return nil
}

// String formats the amount as a plain decimal with two fraction digits,
// the shape the CSV wire format and the KPI strings expect.
func (m Money) String() string {
	cents := m.Cents
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// ParseMoney converts a decimal string to cents with half-up rounding on
// the third decimal place. Both dot (12.34) and comma (12,34) separators
// are accepted. Negative and zero amounts are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty amount", ErrValidation)
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, fmt.Errorf("%w: amount out of range", ErrValidation)
	}
	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	cents := iv*100 + fracCents
	if cents <= 0 {
		return Money{}, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	return Money{Cents: cents}, nil
}
