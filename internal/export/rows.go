package export

import "finance/internal/core"

var ledgerHeader = []any{"ID", "Date", "Type", "Description", "Change", "Balance"}

// summaryRows lays out the totals as label/value pairs.
func summaryRows(st core.Statement) [][]any {
	return [][]any{
		{st.Period.Title},
		{"From", st.Period.From.String()},
		{"To", st.Period.To.String()},
		{"Total Income", st.Report.TotalIncome.Float()},
		{"Total Expense", st.Report.TotalExpense.Float()},
		{"Savings", st.Report.Savings.Float()},
	}
}

// ledgerRows returns the header followed by one row per movement.
func ledgerRows(st core.Statement) [][]any {
	rows := make([][]any, 0, len(st.Ledger)+1)
	rows = append(rows, ledgerHeader)
	for _, m := range st.Ledger {
		rows = append(rows, []any{
			m.ID,
			m.Date.String(),
			string(m.Kind),
			m.Label,
			m.Change.Float(),
			m.Balance.Float(),
		})
	}
	return rows
}
