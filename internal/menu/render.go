package menu

import (
	"fmt"
	"io"

	"finance/internal/core"
)

const ledgerRowFormat = "%-6s %-10s %-8s %-30.30s %12s %12s\n"

func printMenu(w io.Writer) {
	fmt.Fprintln(w, "=== Monthly Finance Manager ===")
	fmt.Fprintln(w, "1) Add Income")
	fmt.Fprintln(w, "2) Add Expense")
	fmt.Fprintln(w, "3) View Monthly Income vs Expense (quick)")
	fmt.Fprintln(w, "4) Generate Monthly Report")
	fmt.Fprintln(w, "5) Generate Custom Date Range Report")
	fmt.Fprintln(w, "6) Update Income")
	fmt.Fprintln(w, "7) Delete Income")
	fmt.Fprintln(w, "8) Update Expense")
	fmt.Fprintln(w, "9) Delete Expense")
	fmt.Fprintln(w, "10) Export Monthly Report")
	fmt.Fprintln(w, "11) Export Custom Date Range Report")
	fmt.Fprintln(w, "0) Exit")
}

func printQuickView(w io.Writer, r core.Report) {
	fmt.Fprintln(w, "--- Quick Monthly View ---")
	fmt.Fprintf(w, "Total Income: %s\n", r.TotalIncome)
	fmt.Fprintf(w, "Total Expense: %s\n", r.TotalExpense)
	fmt.Fprintf(w, "Savings: %s\n", r.Savings)
}

// printStatement writes the totals followed by the ledger.
func printStatement(w io.Writer, st core.Statement) {
	fmt.Fprintf(w, "--- %s ---\n", st.Period.Title)
	fmt.Fprintf(w, "Total Income : %s\n", st.Report.TotalIncome)
	fmt.Fprintf(w, "Total Expense: %s\n", st.Report.TotalExpense)
	fmt.Fprintf(w, "Savings      : %s\n", st.Report.Savings)
	fmt.Fprintln(w)
	printLedger(w, st.Ledger)
}

func printLedger(w io.Writer, ledger []core.Movement) {
	if len(ledger) == 0 {
		fmt.Fprintln(w, "No transactions in this period.")
		return
	}
	fmt.Fprintf(w, ledgerRowFormat, "ID", "Date", "Type", "Description", "Change", "Balance")
	for _, m := range ledger {
		fmt.Fprintf(w, ledgerRowFormat,
			fmt.Sprint(m.ID), m.Date, m.Kind, m.Label, m.Change.Signed(), m.Balance)
	}
}
