// Package export writes statements to destinations outside the record store:
// local .xlsx workbooks and Google Sheets.
package export

import (
	"context"
	"errors"
	"fmt"

	"finance/internal/core"

	"golang.org/x/sync/errgroup"
)

// ErrNotConfigured is returned when no export destination is set up.
var ErrNotConfigured = errors.New("export not configured")

// Exporter writes one statement to a destination.
type Exporter interface {
	Export(ctx context.Context, st core.Statement) error
	// Name identifies the destination in logs and messages.
	Name() string
}

// Multi exports to every destination concurrently and returns the first error.
type Multi []Exporter

// NewMulti drops nil exporters. It returns nil when nothing is left, so callers
// can check for "not configured" with a nil test.
func NewMulti(exporters ...Exporter) Multi {
	var m Multi
	for _, e := range exporters {
		if e != nil {
			m = append(m, e)
		}
	}
	return m
}

func (m Multi) Export(ctx context.Context, st core.Statement) error {
	if len(m) == 0 {
		return ErrNotConfigured
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, e := range m {
		e := e
		g.Go(func() error {
			if err := e.Export(ctx, st); err != nil {
				return fmt.Errorf("%s: %w", e.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (m Multi) Name() string {
	if len(m) == 1 {
		return m[0].Name()
	}
	return fmt.Sprintf("%d destinations", len(m))
}
