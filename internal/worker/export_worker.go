package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"finance/internal/amqp"
	"finance/internal/core"
	"finance/internal/export"
	applog "finance/internal/log"
)

// StatementSource builds monthly statements from the record store.
type StatementSource interface {
	Monthly(ctx context.Context, year, month int) (core.Statement, error)
}

// ExportWorker keeps exported monthly statements current: every record event
// re-exports the month the record belongs to.
type ExportWorker struct {
	reports  StatementSource
	exporter export.Exporter
	timeout  time.Duration
	now      func() time.Time

	mu sync.Mutex
	// lastExport holds when each period slug was last exported.
	lastExport map[string]time.Time
}

func NewExportWorker(reports StatementSource, exporter export.Exporter, timeout time.Duration) *ExportWorker {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExportWorker{
		reports:    reports,
		exporter:   exporter,
		timeout:    timeout,
		now:        time.Now,
		lastExport: make(map[string]time.Time),
	}
}

// HandleRecordEvent processes one message from the record events queue.
// Returning an error requeues the message.
func (w *ExportWorker) HandleRecordEvent(ctx context.Context, msg *amqp.RecordEventMessage) error {
	ev, err := msg.Event()
	if err != nil {
		// Redelivery cannot repair a bad date.
		slog.ErrorContext(ctx, "Dropping record event with invalid payload",
			"message_id", msg.MessageID, applog.FieldError, err)
		return nil
	}

	// Refresh the month the record is in now and the one it left. Events
	// without any date fall back to the month they occurred in.
	days := ev.Dates()
	if len(days) == 0 {
		days = []core.Date{core.DateOf(msg.OccurredAt)}
	}

	slog.InfoContext(ctx, "Processing record event",
		"message_id", msg.MessageID,
		applog.FieldKind, ev.Kind,
		applog.FieldAction, ev.Action,
		applog.FieldRecordID, ev.RecordID,
		applog.FieldDate, ev.Date.String(),
		"previous_date", ev.PreviousDate.String())

	var errs []error
	seen := make(map[[2]int]bool, len(days))
	for _, day := range days {
		month := [2]int{day.Year(), day.Month()}
		if seen[month] {
			continue
		}
		seen[month] = true
		if err := w.exportMonth(ctx, day.Year(), day.Month(), msg.OccurredAt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ExportCurrentMonth exports the statement of the current month. Used at
// startup and on the periodic refresh.
func (w *ExportWorker) ExportCurrentMonth(ctx context.Context) error {
	today := core.DateOf(w.now())
	return w.exportMonth(ctx, today.Year(), today.Month(), time.Time{})
}

// exportMonth skips the export when the period was already exported after
// the triggering change happened.
func (w *ExportWorker) exportMonth(ctx context.Context, year, month int, changedAt time.Time) error {
	p, err := core.MonthPeriod(year, month)
	if err != nil {
		return err
	}

	if !changedAt.IsZero() {
		w.mu.Lock()
		last, ok := w.lastExport[p.Slug()]
		w.mu.Unlock()
		if ok && last.After(changedAt) {
			slog.DebugContext(ctx, "Period already exported after this change, skipping",
				applog.FieldPeriod, p.Slug(), "last_export", last)
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	started := w.now()
	st, err := w.reports.Monthly(ctx, year, month)
	if err != nil {
		return fmt.Errorf("build statement %s: %w", p.Slug(), err)
	}
	if err := w.exporter.Export(ctx, st); err != nil {
		return fmt.Errorf("export statement %s: %w", p.Slug(), err)
	}

	w.mu.Lock()
	w.lastExport[p.Slug()] = started
	w.mu.Unlock()

	slog.InfoContext(ctx, "Monthly statement exported",
		applog.FieldPeriod, p.Slug(),
		applog.FieldDestination, w.exporter.Name(),
		"movements", len(st.Ledger))
	return nil
}

// RunPeriodic re-exports the current month every interval until ctx ends.
func (w *ExportWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.ExportCurrentMonth(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic export failed", applog.FieldError, err)
			}
		}
	}
}
