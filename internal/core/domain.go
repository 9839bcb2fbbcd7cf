package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Error kinds surfaced to the presentation layer. Callers match with
// errors.Is and are responsible for user-visible messaging.
var (
	ErrValidation      = errors.New("validation failed")
	ErrDuplicate       = errors.New("already exists")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInUse           = errors.New("category in use")
	ErrNotFound        = errors.New("not found")
)

const dateLayout = "2006-01-02"

type (
	// Date is a calendar day, normalized to UTC midnight.
	Date struct {
		time.Time
	}

	Category struct {
		ID   int64
		Name string
	}

	Expense struct {
		ID       int64
		Date     Date
		Amount   Money
		Category string
		Note     string // empty means absent, persisted as NULL
	}
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q", ErrValidation, s)
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthStart returns the first day of the containing month.
func (d Date) MonthStart() Date {
	y, m, _ := d.Date()
	return NewDate(y, int(m), 1)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return fmt.Errorf("%w: date cannot be zero", ErrValidation)
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name cannot be empty", ErrValidation)
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("%w: category cannot be empty", ErrValidation)
	}
	return nil
}
