package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLedgerRunningBalance(t *testing.T) {
	incomes, expenses := sampleJanuary()

	got := BuildLedger(incomes, expenses)
	require.Len(t, got, 3)

	want := []struct {
		date    string
		kind    Kind
		label   string
		change  string
		balance string
	}{
		{"2026-01-03", KindExpense, "Food - groceries", "-200.00", "-200.00"},
		{"2026-01-05", KindIncome, "Job - salary", "1000.00", "800.00"},
		{"2026-01-10", KindExpense, "Rent - flat", "-300.00", "500.00"},
	}
	for i, w := range want {
		m := got[i]
		assert.Equal(t, w.date, m.Date.String(), "row %d date", i)
		assert.Equal(t, w.kind, m.Kind, "row %d kind", i)
		assert.Equal(t, w.label, m.Label, "row %d label", i)
		assert.Equal(t, w.change, m.Change.String(), "row %d change", i)
		assert.Equal(t, w.balance, m.Balance.String(), "row %d balance", i)
	}

	// Final balance always equals savings.
	assert.Equal(t, Summarize(incomes, expenses).Savings, got[len(got)-1].Balance)
}

func TestBuildLedgerSameDateIncomeFirst(t *testing.T) {
	day := NewDate(2026, 4, 1)
	incomes := []Income{
		{ID: 7, Amount: Money{Cents: 500}, Source: "Gift", Date: day},
		{ID: 3, Amount: Money{Cents: 100}, Source: "Refund", Date: day},
	}
	expenses := []Expense{
		{ID: 1, Amount: Money{Cents: 200}, Category: "Bar", Date: day},
	}

	got := BuildLedger(incomes, expenses)
	require.Len(t, got, 3)
	assert.Equal(t, int64(7), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)
	assert.Equal(t, KindExpense, got[2].Kind)
	assert.Equal(t, int64(400), got[2].Balance.Cents)
}

func TestBuildLedgerEmpty(t *testing.T) {
	assert.Nil(t, BuildLedger(nil, nil))
	assert.Nil(t, BuildLedger([]Income{}, []Expense{}))
}

func TestBuildLedgerDoesNotMutateInput(t *testing.T) {
	incomes := []Income{
		{ID: 2, Amount: Money{Cents: 1}, Date: NewDate(2026, 1, 9)},
		{ID: 1, Amount: Money{Cents: 1}, Date: NewDate(2026, 1, 1)},
	}
	BuildLedger(incomes, nil)
	assert.Equal(t, int64(2), incomes[0].ID)
	assert.Equal(t, int64(1), incomes[1].ID)
}

func TestBuildLedgerBalanceIsPrefixSum(t *testing.T) {
	incomes := []Income{
		{Amount: Money{Cents: 1000}, Date: NewDate(2026, 1, 2)},
		{Amount: Money{Cents: 333}, Date: NewDate(2026, 1, 20)},
	}
	expenses := []Expense{
		{Amount: Money{Cents: 1}, Date: NewDate(2026, 1, 1)},
		{Amount: Money{Cents: 999}, Date: NewDate(2026, 1, 15)},
		{Amount: Money{Cents: 50}, Date: NewDate(2026, 1, 31)},
	}

	got := BuildLedger(incomes, expenses)
	require.Len(t, got, len(incomes)+len(expenses))

	var sum Money
	for i, m := range got {
		sum = sum.Add(m.Change)
		assert.Equal(t, sum, m.Balance, "row %d", i)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].Date.Compare(m.Date), 0, "row %d out of order", i)
		}
	}
}
