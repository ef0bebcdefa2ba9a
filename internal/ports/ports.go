// Package ports declares the interfaces services depend on. Adapters in
// storage, storage/memory and amqp implement them.
package ports

import (
	"context"

	"finance/internal/core"
)

type (
	// IncomeStore persists income records.
	//
	// Reads return records ordered by date then id. IncomeByID, Update and
	// Delete of an unknown id fail with a *core.StorageError wrapping
	// core.ErrNotFound.
	IncomeStore interface {
		// InsertIncome stores the record and sets its ID.
		InsertIncome(ctx context.Context, in *core.Income) error
		IncomeByMonth(ctx context.Context, year, month int) ([]core.Income, error)
		// IncomeByDateRange returns records with from <= date <= to.
		IncomeByDateRange(ctx context.Context, from, to core.Date) ([]core.Income, error)
		IncomeByID(ctx context.Context, id int64) (core.Income, error)
		UpdateIncome(ctx context.Context, in core.Income) error
		DeleteIncome(ctx context.Context, id int64) error
	}

	// ExpenseStore persists expense records with the same contract as IncomeStore.
	ExpenseStore interface {
		InsertExpense(ctx context.Context, e *core.Expense) error
		ExpenseByMonth(ctx context.Context, year, month int) ([]core.Expense, error)
		ExpenseByDateRange(ctx context.Context, from, to core.Date) ([]core.Expense, error)
		ExpenseByID(ctx context.Context, id int64) (core.Expense, error)
		UpdateExpense(ctx context.Context, e core.Expense) error
		DeleteExpense(ctx context.Context, id int64) error
	}

	RecordStore interface {
		IncomeStore
		ExpenseStore
	}

	// EventPublisher announces successful writes to interested consumers.
	EventPublisher interface {
		PublishRecordEvent(ctx context.Context, ev core.RecordEvent) error
	}
)
