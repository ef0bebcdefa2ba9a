// Package menu implements the interactive console: a numbered menu read line
// by line from an input stream, with results written to an output stream.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"finance/internal/core"
	"finance/internal/export"
	applog "finance/internal/log"
	"finance/internal/services"
)

// Controller runs the menu loop. It is not safe for concurrent use.
type Controller struct {
	in       *lineReader
	out      io.Writer
	incomes  *services.IncomeService
	expenses *services.ExpenseService
	reports  *services.ReportService
	exporter export.Exporter
	logger   *applog.Logger
	now      func() time.Time
}

// NewController wires the menu. exporter may be nil, in which case the
// export actions report that export is not configured.
func NewController(
	in io.Reader,
	out io.Writer,
	incomes *services.IncomeService,
	expenses *services.ExpenseService,
	reports *services.ReportService,
	exporter export.Exporter,
) *Controller {
	return &Controller{
		in:       newLineReader(in),
		out:      out,
		incomes:  incomes,
		expenses: expenses,
		reports:  reports,
		exporter: exporter,
		logger:   applog.New(applog.DefaultConfig()).WithComponent(applog.ComponentMenu),
		now:      time.Now,
	}
}

// WithLogger replaces the controller's logger.
func (c *Controller) WithLogger(logger *applog.Logger) *Controller {
	c.logger = logger.WithComponent(applog.ComponentMenu)
	return c
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Failed actions are reported and the loop continues; only the end of input
// and cancellation stop it.
func (c *Controller) Run(ctx context.Context) error {
	defer c.in.close()

	for {
		printMenu(c.out)
		choice, err := c.prompt(ctx, "Select an option: ")
		if err != nil {
			return c.finish(err)
		}

		action, ok := c.actions()[choice]
		switch {
		case choice == "0":
			fmt.Fprintln(c.out, "Exiting. Goodbye!")
			return nil
		case !ok:
			fmt.Fprintln(c.out, "Invalid option. Try again.")
		default:
			if err := action(ctx); err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					return c.finish(err)
				}
				c.report(err)
			}
		}
		fmt.Fprintln(c.out)
	}
}

func (c *Controller) actions() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"1":  c.addIncome,
		"2":  c.addExpense,
		"3":  c.quickView,
		"4":  c.monthlyReport,
		"5":  c.customReport,
		"6":  c.updateIncome,
		"7":  c.deleteIncome,
		"8":  c.updateExpense,
		"9":  c.deleteExpense,
		"10": c.exportMonthly,
		"11": c.exportCustom,
	}
}

// finish maps the reason the loop stopped to Run's result.
func (c *Controller) finish(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "Exiting. Goodbye!")
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// report prints a failed action. Storage errors also print their cause.
func (c *Controller) report(err error) {
	var ie inputError
	if errors.As(err, &ie) {
		fmt.Fprintln(c.out, ie.Error())
		return
	}

	fmt.Fprintf(c.out, "Error: %s\n", err)
	var se *core.StorageError
	if errors.As(err, &se) && se.Err != nil {
		fmt.Fprintf(c.out, "Cause: %s\n", se.Err)
		c.logger.Error("Storage operation failed", applog.FieldOperation, se.Op, applog.FieldError, se.Err)
	}
}

func (c *Controller) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	return c.in.next(ctx)
}

func (c *Controller) addIncome(ctx context.Context) error {
	in, err := c.readIncome(ctx)
	if err != nil {
		return err
	}
	if err := c.incomes.Add(ctx, &in); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Income recorded successfully.")
	return nil
}

func (c *Controller) addExpense(ctx context.Context) error {
	e, err := c.readExpense(ctx)
	if err != nil {
		return err
	}
	if err := c.expenses.Add(ctx, &e); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Expense recorded successfully.")
	return nil
}

func (c *Controller) updateIncome(ctx context.Context) error {
	id, err := c.readID(ctx, "Income ID: ")
	if err != nil {
		return err
	}
	in, err := c.readIncome(ctx)
	if err != nil {
		return err
	}
	in.ID = id
	if err := c.incomes.Update(ctx, in); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Income updated successfully.")
	return nil
}

func (c *Controller) updateExpense(ctx context.Context) error {
	id, err := c.readID(ctx, "Expense ID: ")
	if err != nil {
		return err
	}
	e, err := c.readExpense(ctx)
	if err != nil {
		return err
	}
	e.ID = id
	if err := c.expenses.Update(ctx, e); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Expense updated successfully.")
	return nil
}

func (c *Controller) deleteIncome(ctx context.Context) error {
	id, err := c.readID(ctx, "Income ID: ")
	if err != nil {
		return err
	}
	if err := c.incomes.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Income deleted successfully.")
	return nil
}

func (c *Controller) deleteExpense(ctx context.Context) error {
	id, err := c.readID(ctx, "Expense ID: ")
	if err != nil {
		return err
	}
	if err := c.expenses.Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Expense deleted successfully.")
	return nil
}

func (c *Controller) quickView(ctx context.Context) error {
	st, err := c.readMonthly(ctx)
	if err != nil {
		return err
	}
	printQuickView(c.out, st.Report)
	return nil
}

func (c *Controller) monthlyReport(ctx context.Context) error {
	st, err := c.readMonthly(ctx)
	if err != nil {
		return err
	}
	printStatement(c.out, st)
	return nil
}

func (c *Controller) customReport(ctx context.Context) error {
	st, err := c.readCustom(ctx)
	if err != nil {
		return err
	}
	printStatement(c.out, st)
	return nil
}

func (c *Controller) exportMonthly(ctx context.Context) error {
	if c.exporter == nil {
		return export.ErrNotConfigured
	}
	st, err := c.readMonthly(ctx)
	if err != nil {
		return err
	}
	return c.export(ctx, st)
}

func (c *Controller) exportCustom(ctx context.Context) error {
	if c.exporter == nil {
		return export.ErrNotConfigured
	}
	st, err := c.readCustom(ctx)
	if err != nil {
		return err
	}
	return c.export(ctx, st)
}

func (c *Controller) export(ctx context.Context, st core.Statement) error {
	if err := c.exporter.Export(ctx, st); err != nil {
		return fmt.Errorf("export %s: %w", st.Period.Slug(), err)
	}
	c.logger.InfoContext(ctx, "Statement exported",
		applog.FieldPeriod, st.Period.Slug(),
		applog.FieldDestination, c.exporter.Name())
	fmt.Fprintf(c.out, "Exported %q to %s.\n", st.Period.Title, c.exporter.Name())
	return nil
}

// readIncome prompts for the income fields. Parsing stops at the first
// malformed value.
func (c *Controller) readIncome(ctx context.Context) (core.Income, error) {
	amount, err := c.readAmount(ctx)
	if err != nil {
		return core.Income{}, err
	}
	source, err := c.prompt(ctx, "Source: ")
	if err != nil {
		return core.Income{}, err
	}
	desc, err := c.prompt(ctx, "Description: ")
	if err != nil {
		return core.Income{}, err
	}
	date, err := c.readOptionalDate(ctx)
	if err != nil {
		return core.Income{}, err
	}
	return core.Income{Amount: amount, Source: source, Description: desc, Date: date}, nil
}

func (c *Controller) readExpense(ctx context.Context) (core.Expense, error) {
	amount, err := c.readAmount(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	category, err := c.prompt(ctx, "Category: ")
	if err != nil {
		return core.Expense{}, err
	}
	desc, err := c.prompt(ctx, "Description: ")
	if err != nil {
		return core.Expense{}, err
	}
	date, err := c.readOptionalDate(ctx)
	if err != nil {
		return core.Expense{}, err
	}
	return core.Expense{Amount: amount, Category: category, Description: desc, Date: date}, nil
}

func (c *Controller) readAmount(ctx context.Context) (core.Money, error) {
	s, err := c.prompt(ctx, "Amount: ")
	if err != nil {
		return core.Money{}, err
	}
	return parseAmount(s)
}

func (c *Controller) readOptionalDate(ctx context.Context) (core.Date, error) {
	s, err := c.prompt(ctx, "Date (yyyy-MM-dd) [leave empty for today]: ")
	if err != nil {
		return core.Date{}, err
	}
	return parseOptionalDate(s)
}

func (c *Controller) readID(ctx context.Context, label string) (int64, error) {
	s, err := c.prompt(ctx, label)
	if err != nil {
		return 0, err
	}
	return parseID(s)
}

func (c *Controller) readMonthly(ctx context.Context) (core.Statement, error) {
	now := c.now()
	yearStr, err := c.prompt(ctx, fmt.Sprintf("Enter year [%d]: ", now.Year()))
	if err != nil {
		return core.Statement{}, err
	}
	monthStr, err := c.prompt(ctx, fmt.Sprintf("Enter month (1-12) [%d]: ", int(now.Month())))
	if err != nil {
		return core.Statement{}, err
	}
	year, month, err := monthParams(yearStr, monthStr, now)
	if err != nil {
		return core.Statement{}, err
	}
	return c.reports.Monthly(ctx, year, month)
}

func (c *Controller) readCustom(ctx context.Context) (core.Statement, error) {
	fromStr, err := c.prompt(ctx, "From date (yyyy-MM-dd): ")
	if err != nil {
		return core.Statement{}, err
	}
	from, err := parseDate(fromStr)
	if err != nil {
		return core.Statement{}, err
	}
	toStr, err := c.prompt(ctx, "To date (yyyy-MM-dd): ")
	if err != nil {
		return core.Statement{}, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return core.Statement{}, err
	}
	return c.reports.Custom(ctx, from, to)
}
