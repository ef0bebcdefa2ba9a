package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for input, storage and output.
const DateLayout = "2006-01-02"

const (
	KindIncome  Kind = "INCOME"
	KindExpense Kind = "EXPENSE"
)

type (
	// Kind tells income and expense records apart once they are merged.
	Kind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	Income struct {
		ID          int64 // Assigned by the store, 0 until persisted
		Amount      Money
		Source      string
		Description string
		Date        Date
	}

	Expense struct {
		ID          int64 // Assigned by the store, 0 until persisted
		Amount      Money
		Category    string
		Description string
		Date        Date
	}
)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidMonth  = errors.New("invalid month")

	ErrAmountTooLarge = errors.New("amount must not exceed " + MaxAmount.String())
)

// MaxAmount is the largest amount a single record may carry. It keeps the
// totals of any realistic number of records within int64 cents.
var MaxAmount = Money{Cents: 99_999_999_999_999}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar day in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a yyyy-MM-dd string. Anything else, trailing text
// included, is rejected.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w %q: use yyyy-MM-dd", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// ParseStoredDate parses a date column value. Drivers may return DATE columns
// with a time component ("2026-01-05T00:00:00Z", "2026-01-05 00:00:00"),
// which is dropped.
func ParseStoredDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		switch s[len(DateLayout)] {
		case 'T', ' ':
			if _, err := time.Parse(time.RFC3339, s); err == nil {
				s = s[:len(DateLayout)]
			} else if _, err := time.Parse(time.DateTime, s); err == nil {
				s = s[:len(DateLayout)]
			}
		}
	}
	return ParseDate(s)
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// IsEmpty reports whether the date was never set.
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Compare returns -1, 0 or +1 comparing calendar days.
func (d Date) Compare(o Date) int {
	return d.Time.Compare(o.Time)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	if m.Cents > MaxAmount.Cents {
		return ErrAmountTooLarge
	}
	return nil
}

// Label is the ledger description of an income: "source - description".
func (i Income) Label() string {
	return i.Source + " - " + i.Description
}

// Label is the ledger description of an expense: "category - description".
func (e Expense) Label() string {
	return e.Category + " - " + e.Description
}
