package core

import "fmt"

// Period is an inclusive range of calendar days.
type Period struct {
	From  Date
	To    Date
	Title string
}

// MonthPeriod returns the period covering a calendar month.
func MonthPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: %w %d, must be between 1 and 12", ErrInvalidInput, ErrInvalidMonth, month)
	}
	if year < 1 || year > 9999 {
		return Period{}, fmt.Errorf("%w: year %d out of range", ErrInvalidInput, year)
	}
	from := NewDate(year, month, 1)
	return Period{
		From:  from,
		To:    Date{Time: from.AddDate(0, 1, -1)},
		Title: fmt.Sprintf("Monthly report for %d-%02d", year, month),
	}, nil
}

// RangePeriod returns the inclusive period between from and to, swapping
// them when given in reverse order.
func RangePeriod(from, to Date) Period {
	if from.Compare(to) > 0 {
		from, to = to, from
	}
	return Period{
		From:  from,
		To:    to,
		Title: fmt.Sprintf("Custom date report %s to %s", from, to),
	}
}

// Contains reports whether d falls within the period, bounds included.
func (p Period) Contains(d Date) bool {
	return d.Compare(p.From) >= 0 && d.Compare(p.To) <= 0
}

// Slug is a filesystem-friendly name for the period, e.g. "2026-01-01_2026-01-31".
func (p Period) Slug() string {
	return p.From.String() + "_" + p.To.String()
}
