package services

import (
	"context"
	"fmt"
	"log/slog"

	"finance/internal/core"
	applog "finance/internal/log"
	"finance/internal/ports"
)

// ExpenseService validates expense records before storing them and announces
// successful writes.
type ExpenseService struct {
	store     ports.ExpenseStore
	validator *core.Validator
	events    ports.EventPublisher
}

func NewExpenseService(store ports.ExpenseStore, validator *core.Validator, events ports.EventPublisher) *ExpenseService {
	if validator == nil {
		validator = core.NewValidator()
	}
	return &ExpenseService{
		store:     store,
		validator: validator,
		events:    events,
	}
}

func (s *ExpenseService) Add(ctx context.Context, e *core.Expense) error {
	if err := s.validator.Expense(e); err != nil {
		return err
	}
	if err := s.store.InsertExpense(ctx, e); err != nil {
		return fmt.Errorf("add expense: %w", err)
	}
	publish(ctx, s.events, core.RecordEvent{
		Kind:     core.KindExpense,
		Action:   core.ActionCreated,
		RecordID: e.ID,
		Amount:   e.Amount,
		Date:     e.Date,
	})
	return nil
}

func (s *ExpenseService) Update(ctx context.Context, e core.Expense) error {
	if err := s.validator.Expense(&e); err != nil {
		return err
	}
	previous := s.previousDate(ctx, e.ID)
	if err := s.store.UpdateExpense(ctx, e); err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	publish(ctx, s.events, core.RecordEvent{
		Kind:         core.KindExpense,
		Action:       core.ActionUpdated,
		RecordID:     e.ID,
		Amount:       e.Amount,
		Date:         e.Date,
		PreviousDate: previous,
	})
	return nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	previous := s.previousDate(ctx, id)
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	publish(ctx, s.events, core.RecordEvent{
		Kind:         core.KindExpense,
		Action:       core.ActionDeleted,
		RecordID:     id,
		PreviousDate: previous,
	})
	return nil
}

func (s *ExpenseService) ByMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
	return s.store.ExpenseByMonth(ctx, year, month)
}

func (s *ExpenseService) ByDateRange(ctx context.Context, from, to core.Date) ([]core.Expense, error) {
	return s.store.ExpenseByDateRange(ctx, from, to)
}

// previousDate reads the stored date of id ahead of a change so the event can
// name the month the record leaves. Without a publisher nothing is read.
func (s *ExpenseService) previousDate(ctx context.Context, id int64) core.Date {
	if s.events == nil || id <= 0 {
		return core.Date{}
	}
	e, err := s.store.ExpenseByID(ctx, id)
	if err != nil {
		slog.DebugContext(ctx, "Previous expense not readable, event carries no previous date",
			applog.FieldRecordID, id, applog.FieldError, err)
		return core.Date{}
	}
	return e.Date
}
