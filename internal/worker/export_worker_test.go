package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finance/internal/amqp"
	"finance/internal/core"
	"finance/internal/services"
	"finance/internal/storage/memory"
)

type recordingExporter struct {
	mu    sync.Mutex
	slugs []string
	err   error
}

func (r *recordingExporter) Export(_ context.Context, st core.Statement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.slugs = append(r.slugs, st.Period.Slug())
	return nil
}

func (r *recordingExporter) Name() string { return "recording" }

func newTestWorker(t *testing.T, exp *recordingExporter) (*ExportWorker, *services.IncomeService) {
	t.Helper()
	store := memory.New()
	incomes := services.NewIncomeService(store, nil, nil)
	expenses := services.NewExpenseService(store, nil, nil)
	reports := services.NewReportService(incomes, expenses)
	return NewExportWorker(reports, exp, time.Second), incomes
}

func TestHandleRecordEventExportsRecordMonth(t *testing.T) {
	exp := &recordingExporter{}
	w, incomes := newTestWorker(t, exp)
	ctx := context.Background()

	in := &core.Income{Amount: core.Money{Cents: 100}, Date: core.NewDate(2026, 1, 5)}
	if err := incomes.Add(ctx, in); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	msg := amqp.NewRecordEventMessage(core.RecordEvent{
		Kind: core.KindIncome, Action: core.ActionCreated, RecordID: in.ID, Amount: in.Amount, Date: in.Date,
	})
	if err := w.HandleRecordEvent(ctx, msg); err != nil {
		t.Fatalf("HandleRecordEvent() error = %v", err)
	}

	if len(exp.slugs) != 1 || exp.slugs[0] != "2026-01-01_2026-01-31" {
		t.Fatalf("unexpected exports %v", exp.slugs)
	}
}

func TestHandleRecordEventSkipsStaleMessages(t *testing.T) {
	exp := &recordingExporter{}
	w, _ := newTestWorker(t, exp)
	ctx := context.Background()

	first := amqp.NewRecordEventMessage(core.RecordEvent{Kind: core.KindExpense, Action: core.ActionCreated, RecordID: 1, Date: core.NewDate(2026, 2, 3)})
	first.OccurredAt = time.Now().Add(-time.Minute)
	second := amqp.NewRecordEventMessage(core.RecordEvent{Kind: core.KindExpense, Action: core.ActionUpdated, RecordID: 1, Date: core.NewDate(2026, 2, 3)})
	second.OccurredAt = time.Now().Add(-30 * time.Second)

	if err := w.HandleRecordEvent(ctx, second); err != nil {
		t.Fatal(err)
	}
	// Arrives late: the export above already includes it.
	if err := w.HandleRecordEvent(ctx, first); err != nil {
		t.Fatal(err)
	}

	if len(exp.slugs) != 1 {
		t.Fatalf("expected a single export, got %v", exp.slugs)
	}
}

func TestHandleRecordEventWithoutDatesUsesOccurredAt(t *testing.T) {
	exp := &recordingExporter{}
	w, _ := newTestWorker(t, exp)

	msg := amqp.NewRecordEventMessage(core.RecordEvent{Kind: core.KindIncome, Action: core.ActionDeleted, RecordID: 9})
	msg.OccurredAt = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	if err := w.HandleRecordEvent(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	if len(exp.slugs) != 1 || exp.slugs[0] != "2026-04-01_2026-04-30" {
		t.Fatalf("unexpected exports %v", exp.slugs)
	}
}

func TestHandleRecordEventExportFailureRequeues(t *testing.T) {
	exp := &recordingExporter{err: errors.New("disk full")}
	w, _ := newTestWorker(t, exp)

	msg := amqp.NewRecordEventMessage(core.RecordEvent{Kind: core.KindIncome, Action: core.ActionCreated, RecordID: 1, Date: core.NewDate(2026, 1, 1)})
	if err := w.HandleRecordEvent(context.Background(), msg); err == nil {
		t.Fatal("expected error so the message is requeued")
	}
}

func TestHandleRecordEventDropsBadPayload(t *testing.T) {
	exp := &recordingExporter{}
	w, _ := newTestWorker(t, exp)

	msg := &amqp.RecordEventMessage{Kind: "INCOME", Date: "not-a-date"}
	if err := w.HandleRecordEvent(context.Background(), msg); err != nil {
		t.Fatalf("bad payloads should be dropped, got %v", err)
	}
	if len(exp.slugs) != 0 {
		t.Fatalf("nothing should be exported, got %v", exp.slugs)
	}
}

func TestExportCurrentMonth(t *testing.T) {
	exp := &recordingExporter{}
	w, _ := newTestWorker(t, exp)
	w.now = func() time.Time { return time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC) }

	if err := w.ExportCurrentMonth(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(exp.slugs) != 1 || exp.slugs[0] != "2026-12-01_2026-12-31" {
		t.Fatalf("unexpected exports %v", exp.slugs)
	}
}

type capturePublisher struct {
	events []core.RecordEvent
}

func (c *capturePublisher) PublishRecordEvent(_ context.Context, ev core.RecordEvent) error {
	c.events = append(c.events, ev)
	return nil
}

func TestHandleRecordEventMovedRecordRefreshesBothMonths(t *testing.T) {
	exp := &recordingExporter{}
	pub := &capturePublisher{}
	store := memory.New()
	incomes := services.NewIncomeService(store, nil, pub)
	expenses := services.NewExpenseService(store, nil, pub)
	w := NewExportWorker(services.NewReportService(incomes, expenses), exp, time.Second)
	ctx := context.Background()

	in := &core.Income{Amount: core.Money{Cents: 100}, Source: "Job", Date: core.NewDate(2026, 1, 5)}
	if err := incomes.Add(ctx, in); err != nil {
		t.Fatal(err)
	}
	moved := *in
	moved.Date = core.NewDate(2026, 2, 5)
	if err := incomes.Update(ctx, moved); err != nil {
		t.Fatal(err)
	}

	if err := w.HandleRecordEvent(ctx, amqp.NewRecordEventMessage(pub.events[1])); err != nil {
		t.Fatal(err)
	}

	want := map[string]bool{"2026-01-01_2026-01-31": true, "2026-02-01_2026-02-28": true}
	if len(exp.slugs) != 2 || !want[exp.slugs[0]] || !want[exp.slugs[1]] {
		t.Fatalf("expected January and February exports, got %v", exp.slugs)
	}
}

func TestHandleRecordEventSameMonthUpdateExportsOnce(t *testing.T) {
	exp := &recordingExporter{}
	w, _ := newTestWorker(t, exp)

	msg := amqp.NewRecordEventMessage(core.RecordEvent{
		Kind: core.KindExpense, Action: core.ActionUpdated, RecordID: 3,
		Date: core.NewDate(2026, 3, 20), PreviousDate: core.NewDate(2026, 3, 2),
	})
	if err := w.HandleRecordEvent(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	if len(exp.slugs) != 1 || exp.slugs[0] != "2026-03-01_2026-03-31" {
		t.Fatalf("unexpected exports %v", exp.slugs)
	}
}

func TestHandleRecordEventDeletionUsesRecordMonth(t *testing.T) {
	exp := &recordingExporter{}
	w, _ := newTestWorker(t, exp)

	msg := amqp.NewRecordEventMessage(core.RecordEvent{
		Kind: core.KindIncome, Action: core.ActionDeleted, RecordID: 9, PreviousDate: core.NewDate(2025, 11, 30),
	})
	msg.OccurredAt = time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)

	if err := w.HandleRecordEvent(context.Background(), msg); err != nil {
		t.Fatal(err)
	}
	if len(exp.slugs) != 1 || exp.slugs[0] != "2025-11-01_2025-11-30" {
		t.Fatalf("unexpected exports %v", exp.slugs)
	}
}
