// Package core provides money parsing and handling utilities.
//
// Amounts are held as integer cents so sums stay exact. Parsing and
// formatting go through shopspring/decimal.
package core

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var maxCents = decimal.NewFromInt(1<<63 - 1)

// ParseAmount converts a decimal string to Money with half-up rounding to cents.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. The sign
// is preserved: rejecting non-positive amounts is the Validator's job, so "-5"
// parses fine and "abc" does not.
//
// Examples:
//
//	ParseAmount("12.34")  -> 1234 cents
//	ParseAmount("12,34")  -> 1234 cents
//	ParseAmount("12.345") -> 1235 cents (rounds half up)
//	ParseAmount("12.344") -> 1234 cents
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty amount", ErrInvalidInput)
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: amount %q is not a number", ErrInvalidInput, s)
	}

	cents := d.Round(2).Shift(2)
	if cents.Abs().GreaterThan(maxCents) {
		return Money{}, fmt.Errorf("%w: amount %q is too large", ErrInvalidInput, s)
	}
	return Money{Cents: cents.IntPart()}, nil
}

// Decimal returns the amount in monetary units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String renders the amount with two decimal places, e.g. "-200.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Signed renders the amount with an explicit sign, e.g. "+1000.00".
func (m Money) Signed() string {
	if m.Cents > 0 {
		return "+" + m.String()
	}
	return m.String()
}

// Float returns the amount as a float64 for spreadsheet cells.
// Use cents for calculations.
func (m Money) Float() float64 {
	return m.Decimal().InexactFloat64()
}

func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}
