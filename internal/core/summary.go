package core

// Report holds the totals of a period. Savings is derived on construction.
type Report struct {
	TotalIncome  Money
	TotalExpense Money
	Savings      Money
}

// NewReport builds a Report, computing Savings = income - expense.
func NewReport(totalIncome, totalExpense Money) Report {
	return Report{
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Savings:      totalIncome.Sub(totalExpense),
	}
}

// Summarize totals already-scoped income and expense sets.
func Summarize(incomes []Income, expenses []Expense) Report {
	var totalIncome, totalExpense Money
	for _, in := range incomes {
		totalIncome = totalIncome.Add(in.Amount)
	}
	for _, e := range expenses {
		totalExpense = totalExpense.Add(e.Amount)
	}
	return NewReport(totalIncome, totalExpense)
}

// Statement is everything a report screen or an export needs for one period.
type Statement struct {
	Period Period
	Report Report
	Ledger []Movement
}

// NewStatement summarizes and builds the ledger for the given records.
func NewStatement(p Period, incomes []Income, expenses []Expense) Statement {
	return Statement{
		Period: p,
		Report: Summarize(incomes, expenses),
		Ledger: BuildLedger(incomes, expenses),
	}
}
