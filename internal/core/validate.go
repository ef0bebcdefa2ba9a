package core

import (
	"fmt"
	"time"
)

// Validator checks records before they reach the store.
type Validator struct {
	// Now supplies "today" for records without a date.
	Now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{Now: time.Now}
}

// Income rejects a non-positive amount and defaults a missing date to today.
// The record is modified in place.
func (v *Validator) Income(in *Income) error {
	if in == nil {
		return fmt.Errorf("income %w", ErrInvalidAmount)
	}
	if err := in.Amount.Validate(); err != nil {
		return fmt.Errorf("income %w", err)
	}
	if in.Date.IsEmpty() {
		in.Date = v.today()
	}
	return nil
}

// Expense rejects a non-positive amount and defaults a missing date to today.
// The record is modified in place.
func (v *Validator) Expense(e *Expense) error {
	if e == nil {
		return fmt.Errorf("expense %w", ErrInvalidAmount)
	}
	if err := e.Amount.Validate(); err != nil {
		return fmt.Errorf("expense %w", err)
	}
	if e.Date.IsEmpty() {
		e.Date = v.today()
	}
	return nil
}

func (v *Validator) today() Date {
	now := time.Now
	if v != nil && v.Now != nil {
		now = v.Now
	}
	return DateOf(now())
}
