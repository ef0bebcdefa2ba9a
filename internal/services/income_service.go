package services

import (
	"context"
	"fmt"
	"log/slog"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"
)

// IncomeService validates income records before storing them and announces
// successful writes.
type IncomeService struct {
	store     ports.IncomeStore
	validator *core.Validator
	events    ports.EventPublisher
}

// NewIncomeService wires the service. events may be nil.
func NewIncomeService(store ports.IncomeStore, validator *core.Validator, events ports.EventPublisher) *IncomeService {
	if validator == nil {
		validator = core.NewValidator()
	}
	return &IncomeService{
		store:     store,
		validator: validator,
		events:    events,
	}
}

// Add validates in (defaulting its date to today) and stores it. On success
// in.ID holds the assigned id.
func (s *IncomeService) Add(ctx context.Context, in *core.Income) error {
	if err := s.validator.Income(in); err != nil {
		return err
	}
	if err := s.store.InsertIncome(ctx, in); err != nil {
		return fmt.Errorf("add income: %w", err)
	}
	publish(ctx, s.events, core.RecordEvent{
		Kind:     core.KindIncome,
		Action:   core.ActionCreated,
		RecordID: in.ID,
		Amount:   in.Amount,
		Date:     in.Date,
	})
	return nil
}

func (s *IncomeService) Update(ctx context.Context, in core.Income) error {
	if err := s.validator.Income(&in); err != nil {
		return err
	}
	previous := s.previousDate(ctx, in.ID)
	if err := s.store.UpdateIncome(ctx, in); err != nil {
		return fmt.Errorf("update income: %w", err)
	}
	publish(ctx, s.events, core.RecordEvent{
		Kind:         core.KindIncome,
		Action:       core.ActionUpdated,
		RecordID:     in.ID,
		Amount:       in.Amount,
		Date:         in.Date,
		PreviousDate: previous,
	})
	return nil
}

func (s *IncomeService) Delete(ctx context.Context, id int64) error {
	previous := s.previousDate(ctx, id)
	if err := s.store.DeleteIncome(ctx, id); err != nil {
		return fmt.Errorf("delete income: %w", err)
	}
	publish(ctx, s.events, core.RecordEvent{
		Kind:         core.KindIncome,
		Action:       core.ActionDeleted,
		RecordID:     id,
		PreviousDate: previous,
	})
	return nil
}

func (s *IncomeService) ByMonth(ctx context.Context, year, month int) ([]core.Income, error) {
	return s.store.IncomeByMonth(ctx, year, month)
}

func (s *IncomeService) ByDateRange(ctx context.Context, from, to core.Date) ([]core.Income, error) {
	return s.store.IncomeByDateRange(ctx, from, to)
}

// previousDate reads the stored date of id ahead of a change so the event can
// name the month the record leaves. Without a publisher nothing is read.
func (s *IncomeService) previousDate(ctx context.Context, id int64) core.Date {
	if s.events == nil || id <= 0 {
		return core.Date{}
	}
	in, err := s.store.IncomeByID(ctx, id)
	if err != nil {
		slog.DebugContext(ctx, "Previous income not readable, event carries no previous date",
			applog.FieldRecordID, id, applog.FieldError, err)
		return core.Date{}
	}
	return in.Date
}

// publish sends ev when a publisher is configured. Failures are logged only:
// the record is already stored.
func publish(ctx context.Context, events ports.EventPublisher, ev core.RecordEvent) {
	if events == nil {
		slog.DebugContext(ctx, "Event publisher not configured, skipping record event",
			applog.FieldKind, ev.Kind, applog.FieldAction, ev.Action, applog.FieldRecordID, ev.RecordID)
		return
	}
	if err := events.PublishRecordEvent(ctx, ev); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record event",
			applog.FieldKind, ev.Kind, applog.FieldAction, ev.Action, applog.FieldRecordID, ev.RecordID,
			applog.FieldError, err)
	}
}
