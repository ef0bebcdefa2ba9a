package storage

import (
	"context"
	"database/sql"

	"finance/internal/core"
)

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// Queries holds the SQL shared by the SQLite and MySQL backends. Statements
// use "?" placeholders and plain yyyy-MM-dd date literals, which both accept.
type Queries struct {
	db *sql.DB
}

const createIncome = `INSERT INTO income (amount_cents, source, description, date) VALUES (?, ?, ?, ?)`

type CreateIncomeParams struct {
	AmountCents int64
	Source      string
	Description string
	Date        string
}

func (q *Queries) CreateIncome(ctx context.Context, arg CreateIncomeParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createIncome, arg.AmountCents, arg.Source, arg.Description, arg.Date)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listIncomeBetween = `SELECT id, amount_cents, source, description, date FROM income
WHERE date >= ? AND date <= ?
ORDER BY date, id`

func (q *Queries) ListIncomeBetween(ctx context.Context, from, to string) ([]Income, error) {
	rows, err := q.db.QueryContext(ctx, listIncomeBetween, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Income
	for rows.Next() {
		var i Income
		if err := rows.Scan(&i.ID, &i.AmountCents, &i.Source, &i.Description, &i.Date); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getIncome = `SELECT id, amount_cents, source, description, date FROM income WHERE id = ?`

func (q *Queries) GetIncome(ctx context.Context, id int64) (Income, error) {
	var i Income
	err := q.db.QueryRowContext(ctx, getIncome, id).Scan(&i.ID, &i.AmountCents, &i.Source, &i.Description, &i.Date)
	return i, err
}

const updateIncome = `UPDATE income SET amount_cents = ?, source = ?, description = ?, date = ? WHERE id = ?`

type UpdateIncomeParams struct {
	ID          int64
	AmountCents int64
	Source      string
	Description string
	Date        string
}

// UpdateIncome returns the number of matched rows.
func (q *Queries) UpdateIncome(ctx context.Context, arg UpdateIncomeParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateIncome, arg.AmountCents, arg.Source, arg.Description, arg.Date, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteIncome = `DELETE FROM income WHERE id = ?`

func (q *Queries) DeleteIncome(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteIncome, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const createExpense = `INSERT INTO expense (amount_cents, category, description, date) VALUES (?, ?, ?, ?)`

type CreateExpenseParams struct {
	AmountCents int64
	Category    string
	Description string
	Date        string
}

func (q *Queries) CreateExpense(ctx context.Context, arg CreateExpenseParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, createExpense, arg.AmountCents, arg.Category, arg.Description, arg.Date)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

const listExpenseBetween = `SELECT id, amount_cents, category, description, date FROM expense
WHERE date >= ? AND date <= ?
ORDER BY date, id`

func (q *Queries) ListExpenseBetween(ctx context.Context, from, to string) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenseBetween, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var e Expense
		if err := rows.Scan(&e.ID, &e.AmountCents, &e.Category, &e.Description, &e.Date); err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getExpense = `SELECT id, amount_cents, category, description, date FROM expense WHERE id = ?`

func (q *Queries) GetExpense(ctx context.Context, id int64) (Expense, error) {
	var e Expense
	err := q.db.QueryRowContext(ctx, getExpense, id).Scan(&e.ID, &e.AmountCents, &e.Category, &e.Description, &e.Date)
	return e, err
}

const updateExpense = `UPDATE expense SET amount_cents = ?, category = ?, description = ?, date = ? WHERE id = ?`

type UpdateExpenseParams struct {
	ID          int64
	AmountCents int64
	Category    string
	Description string
	Date        string
}

func (q *Queries) UpdateExpense(ctx context.Context, arg UpdateExpenseParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateExpense, arg.AmountCents, arg.Category, arg.Description, arg.Date, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteExpense = `DELETE FROM expense WHERE id = ?`

func (q *Queries) DeleteExpense(ctx context.Context, id int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteExpense, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Income is a row of the income table.
type Income struct {
	ID          int64
	AmountCents int64
	Source      string
	Description string
	Date        string
}

func (i Income) toCore() (core.Income, error) {
	d, err := core.ParseStoredDate(i.Date)
	if err != nil {
		return core.Income{}, err
	}
	return core.Income{
		ID:          i.ID,
		Amount:      core.Money{Cents: i.AmountCents},
		Source:      i.Source,
		Description: i.Description,
		Date:        d,
	}, nil
}

// Expense is a row of the expense table.
type Expense struct {
	ID          int64
	AmountCents int64
	Category    string
	Description string
	Date        string
}

func (e Expense) toCore() (core.Expense, error) {
	d, err := core.ParseStoredDate(e.Date)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{
		ID:          e.ID,
		Amount:      core.Money{Cents: e.AmountCents},
		Category:    e.Category,
		Description: e.Description,
		Date:        d,
	}, nil
}
