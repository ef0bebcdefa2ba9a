package menu

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"finance/internal/core"
)

// inputError is shown to the user verbatim; the action is aborted.
type inputError string

func (e inputError) Error() string { return string(e) }

const (
	errBadAmount inputError = "Invalid amount. Please enter a numeric value."
	errBadDate   inputError = "Invalid date format. Use yyyy-MM-dd."
	errBadNumber inputError = "Invalid number input."
)

// lineReader delivers trimmed input lines and gives up on context
// cancellation even while the underlying reader blocks.
type lineReader struct {
	lines <-chan string
	stop  chan struct{}
}

func newLineReader(r io.Reader) *lineReader {
	lines := make(chan string)
	stop := make(chan struct{})
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-stop:
				return
			}
		}
	}()
	return &lineReader{lines: lines, stop: stop}
}

// next returns io.EOF once input is exhausted, or ctx.Err() when cancelled.
func (r *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimSpace(line), nil
	}
}

func (r *lineReader) close() {
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}

// parseAmount reads a user-entered amount. Sign checks belong to the Validator.
func parseAmount(s string) (core.Money, error) {
	m, err := core.ParseAmount(s)
	if err != nil {
		return core.Money{}, errBadAmount
	}
	return m, nil
}

// parseOptionalDate returns the empty Date for blank input so the Validator
// can apply today's date.
func parseOptionalDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, nil
	}
	return parseDate(s)
}

func parseDate(s string) (core.Date, error) {
	d, err := core.ParseDate(s)
	if err != nil {
		return core.Date{}, errBadDate
	}
	return d, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errBadNumber
	}
	return id, nil
}

// parseIntOr parses s, falling back to def when s is blank.
func parseIntOr(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errBadNumber
	}
	return n, nil
}

// monthParams resolves a year/month pair, blank values meaning the month of now.
func monthParams(yearStr, monthStr string, now time.Time) (year, month int, err error) {
	if year, err = parseIntOr(yearStr, now.Year()); err != nil {
		return 0, 0, err
	}
	if month, err = parseIntOr(monthStr, int(now.Month())); err != nil {
		return 0, 0, err
	}
	return year, month, nil
}
