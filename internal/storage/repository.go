package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"finance/internal/core"
	applog "finance/internal/log"

	_ "modernc.org/sqlite"
)

// SQLRepository implements ports.RecordStore on top of database/sql.
// The same queries serve the SQLite and MySQL dialects.
type SQLRepository struct {
	db      *sql.DB
	queries *Queries
	dialect Dialect
}

// NewSQLiteRepository opens (creating if needed) the database file at dbPath
// and applies the embedded schema.
func NewSQLiteRepository(dbPath string) (*SQLRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY between the app and its own queries.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(DialectSQLite, dbPath); err != nil {
		slog.Warn("Schema initialization failed, continuing with existing schema",
			"dialect", DialectSQLite, "error", err)
	}

	return newSQLRepository(db, DialectSQLite), nil
}

// NewMySQLRepository connects to a MySQL server, creating the database and
// tables when missing. Schema failures are logged and do not abort startup;
// an unreachable server surfaces on the first operation as a StorageError.
func NewMySQLRepository(ctx context.Context, opts MySQLOptions) (*SQLRepository, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if err := EnsureDatabase(ctx, opts); err != nil {
		slog.WarnContext(ctx, "Database bootstrap failed", "database", opts.Database, "error", err)
	}

	dsn := opts.DSN()
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql database: %w", err)
	}

	if err := RunMigrations(DialectMySQL, dsn); err != nil {
		slog.WarnContext(ctx, "Schema initialization failed, continuing with existing schema",
			"dialect", DialectMySQL, "error", err)
	}

	return newSQLRepository(db, DialectMySQL), nil
}

func newSQLRepository(db *sql.DB, dialect Dialect) *SQLRepository {
	return &SQLRepository{
		db:      db,
		queries: New(db),
		dialect: dialect,
	}
}

func (r *SQLRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLRepository) Dialect() Dialect {
	return r.dialect
}

// InsertIncome implements ports.IncomeStore
func (r *SQLRepository) InsertIncome(ctx context.Context, in *core.Income) error {
	if in == nil {
		return core.NewStorageError("insert income", core.ErrInvalidInput)
	}
	id, err := r.queries.CreateIncome(ctx, CreateIncomeParams{
		AmountCents: in.Amount.Cents,
		Source:      in.Source,
		Description: in.Description,
		Date:        in.Date.String(),
	})
	if err != nil {
		return core.NewStorageError("insert income", err)
	}
	in.ID = id

	slog.DebugContext(ctx, "Income saved",
		applog.FieldRecordID, id,
		applog.FieldAmountCents, in.Amount.Cents,
		applog.FieldDate, in.Date.String())
	return nil
}

// IncomeByMonth implements ports.IncomeStore
func (r *SQLRepository) IncomeByMonth(ctx context.Context, year, month int) ([]core.Income, error) {
	p, err := core.MonthPeriod(year, month)
	if err != nil {
		return nil, err
	}
	return r.IncomeByDateRange(ctx, p.From, p.To)
}

// IncomeByDateRange implements ports.IncomeStore
func (r *SQLRepository) IncomeByDateRange(ctx context.Context, from, to core.Date) ([]core.Income, error) {
	rows, err := r.queries.ListIncomeBetween(ctx, from.String(), to.String())
	if err != nil {
		return nil, core.NewStorageError("list income", err)
	}
	out := make([]core.Income, 0, len(rows))
	for _, row := range rows {
		in, err := row.toCore()
		if err != nil {
			return nil, core.NewStorageError("list income", fmt.Errorf("row %d: %w", row.ID, err))
		}
		out = append(out, in)
	}
	return out, nil
}

// IncomeByID implements ports.IncomeStore
func (r *SQLRepository) IncomeByID(ctx context.Context, id int64) (core.Income, error) {
	if id <= 0 {
		return core.Income{}, core.NewStorageError("get income", core.ErrMissingID)
	}
	row, err := r.queries.GetIncome(ctx, id)
	if err != nil {
		return core.Income{}, rowError("get income", id, err)
	}
	in, err := row.toCore()
	if err != nil {
		return core.Income{}, core.NewStorageError("get income", fmt.Errorf("row %d: %w", id, err))
	}
	return in, nil
}

// UpdateIncome implements ports.IncomeStore
func (r *SQLRepository) UpdateIncome(ctx context.Context, in core.Income) error {
	if in.ID <= 0 {
		return core.NewStorageError("update income", core.ErrMissingID)
	}
	n, err := r.queries.UpdateIncome(ctx, UpdateIncomeParams{
		ID:          in.ID,
		AmountCents: in.Amount.Cents,
		Source:      in.Source,
		Description: in.Description,
		Date:        in.Date.String(),
	})
	return affected("update income", in.ID, n, err)
}

// DeleteIncome implements ports.IncomeStore
func (r *SQLRepository) DeleteIncome(ctx context.Context, id int64) error {
	if id <= 0 {
		return core.NewStorageError("delete income", core.ErrMissingID)
	}
	n, err := r.queries.DeleteIncome(ctx, id)
	return affected("delete income", id, n, err)
}

// InsertExpense implements ports.ExpenseStore
func (r *SQLRepository) InsertExpense(ctx context.Context, e *core.Expense) error {
	if e == nil {
		return core.NewStorageError("insert expense", core.ErrInvalidInput)
	}
	id, err := r.queries.CreateExpense(ctx, CreateExpenseParams{
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.String(),
	})
	if err != nil {
		return core.NewStorageError("insert expense", err)
	}
	e.ID = id

	slog.DebugContext(ctx, "Expense saved",
		applog.FieldRecordID, id,
		applog.FieldAmountCents, e.Amount.Cents,
		applog.FieldDate, e.Date.String())
	return nil
}

// ExpenseByMonth implements ports.ExpenseStore
func (r *SQLRepository) ExpenseByMonth(ctx context.Context, year, month int) ([]core.Expense, error) {
	p, err := core.MonthPeriod(year, month)
	if err != nil {
		return nil, err
	}
	return r.ExpenseByDateRange(ctx, p.From, p.To)
}

// ExpenseByDateRange implements ports.ExpenseStore
func (r *SQLRepository) ExpenseByDateRange(ctx context.Context, from, to core.Date) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenseBetween(ctx, from.String(), to.String())
	if err != nil {
		return nil, core.NewStorageError("list expense", err)
	}
	out := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		e, err := row.toCore()
		if err != nil {
			return nil, core.NewStorageError("list expense", fmt.Errorf("row %d: %w", row.ID, err))
		}
		out = append(out, e)
	}
	return out, nil
}

// ExpenseByID implements ports.ExpenseStore
func (r *SQLRepository) ExpenseByID(ctx context.Context, id int64) (core.Expense, error) {
	if id <= 0 {
		return core.Expense{}, core.NewStorageError("get expense", core.ErrMissingID)
	}
	row, err := r.queries.GetExpense(ctx, id)
	if err != nil {
		return core.Expense{}, rowError("get expense", id, err)
	}
	e, err := row.toCore()
	if err != nil {
		return core.Expense{}, core.NewStorageError("get expense", fmt.Errorf("row %d: %w", id, err))
	}
	return e, nil
}

// UpdateExpense implements ports.ExpenseStore
func (r *SQLRepository) UpdateExpense(ctx context.Context, e core.Expense) error {
	if e.ID <= 0 {
		return core.NewStorageError("update expense", core.ErrMissingID)
	}
	n, err := r.queries.UpdateExpense(ctx, UpdateExpenseParams{
		ID:          e.ID,
		AmountCents: e.Amount.Cents,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.String(),
	})
	return affected("update expense", e.ID, n, err)
}

// DeleteExpense implements ports.ExpenseStore
func (r *SQLRepository) DeleteExpense(ctx context.Context, id int64) error {
	if id <= 0 {
		return core.NewStorageError("delete expense", core.ErrMissingID)
	}
	n, err := r.queries.DeleteExpense(ctx, id)
	return affected("delete expense", id, n, err)
}

// rowError maps a single-row read failure; no row means ErrNotFound.
func rowError(op string, id int64, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.NewStorageError(op, fmt.Errorf("id %d: %w", id, core.ErrNotFound))
	}
	return core.NewStorageError(op, err)
}

// affected turns a write result into the store contract: driver errors and
// zero matched rows both become a StorageError.
func affected(op string, id, n int64, err error) error {
	if err != nil {
		return core.NewStorageError(op, err)
	}
	if n == 0 {
		return core.NewStorageError(op, fmt.Errorf("id %d: %w", id, core.ErrNotFound))
	}
	return nil
}
