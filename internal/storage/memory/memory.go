// Package memory is a process-local record store for tests and demos.
// Nothing survives a restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"finance/internal/core"
)

type Store struct {
	mu       sync.Mutex
	nextID   int64
	incomes  []core.Income
	expenses []core.Expense
}

func New() *Store {
	return &Store{}
}

func (s *Store) InsertIncome(_ context.Context, in *core.Income) error {
	if in == nil {
		return core.NewStorageError("insert income", core.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	in.ID = s.nextID
	s.incomes = append(s.incomes, *in)
	return nil
}

func (s *Store) IncomeByMonth(ctx context.Context, year, month int) ([]core.Income, error) {
	p, err := core.MonthPeriod(year, month)
	if err != nil {
		return nil, err
	}
	return s.IncomeByDateRange(ctx, p.From, p.To)
}

func (s *Store) IncomeByDateRange(_ context.Context, from, to core.Date) ([]core.Income, error) {
	p := core.Period{From: from, To: to}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Income
	for _, in := range s.incomes {
		if p.Contains(in.Date) {
			out = append(out, in)
		}
	}
	slices.SortStableFunc(out, func(a, b core.Income) int { return a.Date.Compare(b.Date) })
	return out, nil
}

func (s *Store) IncomeByID(_ context.Context, id int64) (core.Income, error) {
	if id <= 0 {
		return core.Income{}, core.NewStorageError("get income", core.ErrMissingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.incomes, func(x core.Income) bool { return x.ID == id })
	if i < 0 {
		return core.Income{}, notFound("get income", id)
	}
	return s.incomes[i], nil
}

func (s *Store) UpdateIncome(_ context.Context, in core.Income) error {
	if in.ID <= 0 {
		return core.NewStorageError("update income", core.ErrMissingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.incomes, func(x core.Income) bool { return x.ID == in.ID })
	if i < 0 {
		return notFound("update income", in.ID)
	}
	s.incomes[i] = in
	return nil
}

func (s *Store) DeleteIncome(_ context.Context, id int64) error {
	if id <= 0 {
		return core.NewStorageError("delete income", core.ErrMissingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.incomes, func(x core.Income) bool { return x.ID == id })
	if i < 0 {
		return notFound("delete income", id)
	}
	s.incomes = slices.Delete(s.incomes, i, i+1)
	return nil
}

func (s *Store) InsertExpense(_ context.Context, e *core.Expense) error {
	if e == nil {
		return core.NewStorageError("insert expense", core.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	e.ID = s.nextID
	s.expenses = append(s.expenses, *e)
	return nil
}

func (s *Store) ExpenseByMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
	p, err := core.MonthPeriod(year, month)
	if err != nil {
		return nil, err
	}
	return s.ExpenseByDateRange(ctx, p.From, p.To)
}

func (s *Store) ExpenseByDateRange(_ context.Context, from, to core.Date) ([]core.Expense, error) {
	p := core.Period{From: from, To: to}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Expense
	for _, e := range s.expenses {
		if p.Contains(e.Date) {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b core.Expense) int { return a.Date.Compare(b.Date) })
	return out, nil
}

func (s *Store) ExpenseByID(_ context.Context, id int64) (core.Expense, error) {
	if id <= 0 {
		return core.Expense{}, core.NewStorageError("get expense", core.ErrMissingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.expenses, func(x core.Expense) bool { return x.ID == id })
	if i < 0 {
		return core.Expense{}, notFound("get expense", id)
	}
	return s.expenses[i], nil
}

func (s *Store) UpdateExpense(_ context.Context, e core.Expense) error {
	if e.ID <= 0 {
		return core.NewStorageError("update expense", core.ErrMissingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.expenses, func(x core.Expense) bool { return x.ID == e.ID })
	if i < 0 {
		return notFound("update expense", e.ID)
	}
	s.expenses[i] = e
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	if id <= 0 {
		return core.NewStorageError("delete expense", core.ErrMissingID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.expenses, func(x core.Expense) bool { return x.ID == id })
	if i < 0 {
		return notFound("delete expense", id)
	}
	s.expenses = slices.Delete(s.expenses, i, i+1)
	return nil
}

// Close is a no-op so the store satisfies the same lifecycle as SQL stores.
func (s *Store) Close() error { return nil }

func notFound(op string, id int64) error {
	return core.NewStorageError(op, fmt.Errorf("id %d: %w", id, core.ErrNotFound))
}
