package core

import "slices"

// Movement is one signed line of the ledger.
type Movement struct {
	ID      int64
	Date    Date
	Kind    Kind
	Label   string
	Change  Money // +amount for income, -amount for expense
	Balance Money // running balance after this movement
}

// BuildLedger merges incomes and expenses into a date-ordered sequence of
// movements carrying a running balance.
//
// Movements sharing a date keep their input order, incomes before expenses.
// The input slices are not modified. Empty input yields nil.
func BuildLedger(incomes []Income, expenses []Expense) []Movement {
	if len(incomes)+len(expenses) == 0 {
		return nil
	}

	movements := make([]Movement, 0, len(incomes)+len(expenses))
	for _, in := range incomes {
		movements = append(movements, Movement{
			ID:     in.ID,
			Date:   in.Date,
			Kind:   KindIncome,
			Label:  in.Label(),
			Change: in.Amount,
		})
	}
	for _, e := range expenses {
		movements = append(movements, Movement{
			ID:     e.ID,
			Date:   e.Date,
			Kind:   KindExpense,
			Label:  e.Label(),
			Change: e.Amount.Neg(),
		})
	}

	slices.SortStableFunc(movements, func(a, b Movement) int {
		return a.Date.Compare(b.Date)
	})

	var balance Money
	for i := range movements {
		balance = balance.Add(movements[i].Change)
		movements[i].Balance = balance
	}
	return movements
}
