package menu

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"finance/internal/core"
	"finance/internal/services"
	"finance/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)

type fakeExporter struct {
	mu         sync.Mutex
	statements []core.Statement
	err        error
}

func (f *fakeExporter) Export(_ context.Context, st core.Statement) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statements = append(f.statements, st)
	return f.err
}

func (f *fakeExporter) Name() string { return "fake" }

type fixture struct {
	store    *memory.Store
	incomes  *services.IncomeService
	expenses *services.ExpenseService
	reports  *services.ReportService
}

func newFixture() *fixture {
	store := memory.New()
	v := &core.Validator{Now: func() time.Time { return testNow }}
	incomes := services.NewIncomeService(store, v, nil)
	expenses := services.NewExpenseService(store, v, nil)
	return &fixture{
		store:    store,
		incomes:  incomes,
		expenses: expenses,
		reports:  services.NewReportService(incomes, expenses),
	}
}

// run feeds input to a fresh controller and returns everything it printed.
func (f *fixture) run(t *testing.T, input string, exporter *fakeExporter) string {
	t.Helper()
	var out bytes.Buffer
	var c *Controller
	if exporter == nil {
		c = NewController(strings.NewReader(input), &out, f.incomes, f.expenses, f.reports, nil)
	} else {
		c = NewController(strings.NewReader(input), &out, f.incomes, f.expenses, f.reports, exporter)
	}
	c.now = func() time.Time { return testNow }
	require.NoError(t, c.Run(context.Background()))
	return out.String()
}

func (f *fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.incomes.Add(ctx, &core.Income{
		Amount: core.Money{Cents: 100000}, Source: "Job", Description: "Salary", Date: core.NewDate(2026, 1, 5),
	}))
	require.NoError(t, f.expenses.Add(ctx, &core.Expense{
		Amount: core.Money{Cents: 20000}, Category: "Food", Description: "Groceries", Date: core.NewDate(2026, 1, 3),
	}))
	require.NoError(t, f.expenses.Add(ctx, &core.Expense{
		Amount: core.Money{Cents: 30000}, Category: "Rent", Description: "January", Date: core.NewDate(2026, 1, 10),
	}))
}

func TestAddIncome(t *testing.T) {
	f := newFixture()
	out := f.run(t, "1\n1000.50\nJob\nSalary\n2026-01-05\n0\n", nil)

	assert.Contains(t, out, "Income recorded successfully.")
	assert.Contains(t, out, "Exiting. Goodbye!")

	got, err := f.store.IncomeByMonth(context.Background(), 2026, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(100050), got[0].Amount.Cents)
	assert.Equal(t, "Job", got[0].Source)
	assert.Equal(t, "2026-01-05", got[0].Date.String())
}

func TestAddExpenseBlankDateIsToday(t *testing.T) {
	f := newFixture()
	out := f.run(t, "2\n12,34\nFood\nLunch\n\n0\n", nil)

	assert.Contains(t, out, "Expense recorded successfully.")
	got, err := f.store.ExpenseByMonth(context.Background(), 2026, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1234), got[0].Amount.Cents)
	assert.Equal(t, "2026-01-20", got[0].Date.String())
}

func TestMalformedInputDoesNotMutate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{
			name:    "malformed income amount",
			input:   "1\nabc\n0\n",
			message: "Invalid amount. Please enter a numeric value.",
		},
		{
			name:    "malformed expense amount",
			input:   "2\n12.3.4\n0\n",
			message: "Invalid amount. Please enter a numeric value.",
		},
		{
			name:    "malformed income date",
			input:   "1\n10\nJob\nBonus\n2026-13-40\n0\n",
			message: "Invalid date format. Use yyyy-MM-dd.",
		},
		{
			name:    "trailing text after income date",
			input:   "1\n50\nJob\nbonus\n2026-01-05 oops\n0\n",
			message: "Invalid date format. Use yyyy-MM-dd.",
		},
		{
			name:    "timestamp instead of expense date",
			input:   "2\n50\nFood\nLunch\n2026-01-05T12:00:00Z\n0\n",
			message: "Invalid date format. Use yyyy-MM-dd.",
		},
		{
			name:    "amount above the limit",
			input:   "1\n50000000000000000\nJob\nJackpot\n2026-01-05\n0\n",
			message: "Error: income amount must not exceed 999999999999.99",
		},
		{
			name:    "non-positive amount",
			input:   "2\n-5\nFood\nRefund\n2026-01-02\n0\n",
			message: "Error: expense amount must be greater than zero",
		},
		{
			name:    "zero amount",
			input:   "1\n0\nJob\nNothing\n2026-01-02\n0\n",
			message: "Error: income amount must be greater than zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			out := f.run(t, tt.input, nil)
			assert.Contains(t, out, tt.message)

			ctx := context.Background()
			incomes, err := f.store.IncomeByMonth(ctx, 2026, 1)
			require.NoError(t, err)
			expenses, err := f.store.ExpenseByMonth(ctx, 2026, 1)
			require.NoError(t, err)
			assert.Empty(t, incomes)
			assert.Empty(t, expenses)
		})
	}
}

func TestInvalidOption(t *testing.T) {
	f := newFixture()
	out := f.run(t, "42\n0\n", nil)
	assert.Contains(t, out, "Invalid option. Try again.")
}

func TestEOFEndsLoop(t *testing.T) {
	f := newFixture()
	out := f.run(t, "1\n", nil)
	assert.Contains(t, out, "Amount: ")
	assert.Contains(t, out, "Exiting. Goodbye!")
}

func TestCancelEndsLoop(t *testing.T) {
	f := newFixture()
	pr, pw := io.Pipe()
	defer pw.Close()

	var out bytes.Buffer
	c := NewController(pr, &out, f.incomes, f.expenses, f.reports, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestQuickViewDefaultsToCurrentMonth(t *testing.T) {
	f := newFixture()
	f.seed(t)
	out := f.run(t, "3\n\n\n0\n", nil)

	assert.Contains(t, out, "--- Quick Monthly View ---")
	assert.Contains(t, out, "Total Income: 1000.00")
	assert.Contains(t, out, "Total Expense: 500.00")
	assert.Contains(t, out, "Savings: 500.00")
}

func TestMonthlyReportPrintsLedger(t *testing.T) {
	f := newFixture()
	f.seed(t)
	out := f.run(t, "4\n2026\n1\n0\n", nil)

	assert.Contains(t, out, "--- Monthly report for 2026-01 ---")
	assert.Contains(t, out, "Savings      : 500.00")

	groceries := strings.Index(out, "Food - Groceries")
	salary := strings.Index(out, "Job - Salary")
	rent := strings.Index(out, "Rent - January")
	require.True(t, groceries > 0 && salary > 0 && rent > 0, out)
	assert.Less(t, groceries, salary)
	assert.Less(t, salary, rent)

	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Rent - January") {
			fields := strings.Fields(line)
			assert.Equal(t, "-300.00", fields[len(fields)-2])
			assert.Equal(t, "500.00", fields[len(fields)-1])
		}
	}
}

func TestMonthlyReportInvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"non-numeric year", "4\ntwenty\n1\n0\n", "Invalid number input."},
		{"month out of range", "4\n2026\n13\n0\n", "Error: invalid input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			out := f.run(t, tt.input, nil)
			assert.Contains(t, out, tt.message)
		})
	}
}

func TestCustomReportSwapsReversedRange(t *testing.T) {
	f := newFixture()
	f.seed(t)
	out := f.run(t, "5\n2026-01-31\n2026-01-04\n0\n", nil)

	assert.Contains(t, out, "--- Custom date report 2026-01-04 to 2026-01-31 ---")
	assert.Contains(t, out, "Total Income : 1000.00")
	assert.Contains(t, out, "Total Expense: 300.00")
	assert.NotContains(t, out, "Food - Groceries")
}

func TestEmptyLedger(t *testing.T) {
	f := newFixture()
	out := f.run(t, "5\n2025-01-01\n2025-01-31\n0\n", nil)
	assert.Contains(t, out, "No transactions in this period.")
}

func TestUpdateAndDelete(t *testing.T) {
	f := newFixture()
	f.seed(t)
	ctx := context.Background()

	out := f.run(t, "6\n1\n1200\nJob\nRaise\n2026-01-06\n0\n", nil)
	assert.Contains(t, out, "Income updated successfully.")
	incomes, err := f.store.IncomeByMonth(ctx, 2026, 1)
	require.NoError(t, err)
	require.Len(t, incomes, 1)
	assert.Equal(t, int64(120000), incomes[0].Amount.Cents)

	// ids are shared across kinds: the seeded expenses are 2 and 3.
	out = f.run(t, "9\n2\n0\n", nil)
	assert.Contains(t, out, "Expense deleted successfully.")
	expenses, err := f.store.ExpenseByMonth(ctx, 2026, 1)
	require.NoError(t, err)
	assert.Len(t, expenses, 1)
}

func TestUnknownIDReportsStorageError(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"update income", "6\n99\n10\nJob\nX\n\n0\n"},
		{"delete income", "7\n99\n0\n"},
		{"update expense", "8\n99\n10\nFood\nX\n\n0\n"},
		{"delete expense", "9\n99\n0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			out := f.run(t, tt.input, nil)
			assert.Contains(t, out, "Error: ")
			assert.Contains(t, out, "Cause: id 99: record not found")
		})
	}
}

func TestDeleteMalformedID(t *testing.T) {
	f := newFixture()
	f.seed(t)
	out := f.run(t, "7\none\n0\n", nil)
	assert.Contains(t, out, "Invalid number input.")

	incomes, err := f.store.IncomeByMonth(context.Background(), 2026, 1)
	require.NoError(t, err)
	assert.Len(t, incomes, 1)
}

func TestExport(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		f := newFixture()
		out := f.run(t, "10\n0\n", nil)
		assert.Contains(t, out, "Error: export not configured")
	})

	t.Run("monthly", func(t *testing.T) {
		f := newFixture()
		f.seed(t)
		exp := &fakeExporter{}
		out := f.run(t, "10\n2026\n1\n0\n", exp)

		assert.Contains(t, out, `Exported "Monthly report for 2026-01" to fake.`)
		require.Len(t, exp.statements, 1)
		assert.Equal(t, int64(50000), exp.statements[0].Report.Savings.Cents)
		assert.Len(t, exp.statements[0].Ledger, 3)
	})

	t.Run("custom", func(t *testing.T) {
		f := newFixture()
		f.seed(t)
		exp := &fakeExporter{}
		out := f.run(t, "11\n2026-01-01\n2026-01-05\n0\n", exp)

		assert.Contains(t, out, "Exported")
		require.Len(t, exp.statements, 1)
		assert.Equal(t, "2026-01-01_2026-01-05", exp.statements[0].Period.Slug())
	})

	t.Run("destination failure", func(t *testing.T) {
		f := newFixture()
		exp := &fakeExporter{err: errors.New("disk full")}
		out := f.run(t, "10\n2026\n1\n0\n", exp)
		assert.Contains(t, out, "Error: export 2026-01-01_2026-01-31: disk full")
	})
}

func TestParseHelpers(t *testing.T) {
	_, err := parseAmount("ten")
	assert.Equal(t, errBadAmount, err)

	d, err := parseOptionalDate("")
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())

	_, err = parseDate("01/02/2026")
	assert.Equal(t, errBadDate, err)

	year, month, err := monthParams("", "3", testNow)
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 3, month)

	_, err = parseID("1.5")
	assert.Equal(t, errBadNumber, err)
}
