package services

import (
	"context"
	"fmt"

	"finance/internal/core"
)

// ReportService reads both record kinds for a period and derives the totals
// and the ledger.
type ReportService struct {
	incomes  *IncomeService
	expenses *ExpenseService
}

func NewReportService(incomes *IncomeService, expenses *ExpenseService) *ReportService {
	return &ReportService{incomes: incomes, expenses: expenses}
}

// Monthly builds the statement of a calendar month.
func (s *ReportService) Monthly(ctx context.Context, year, month int) (core.Statement, error) {
	p, err := core.MonthPeriod(year, month)
	if err != nil {
		return core.Statement{}, err
	}
	incomes, err := s.incomes.ByMonth(ctx, year, month)
	if err != nil {
		return core.Statement{}, fmt.Errorf("monthly report: %w", err)
	}
	expenses, err := s.expenses.ByMonth(ctx, year, month)
	if err != nil {
		return core.Statement{}, fmt.Errorf("monthly report: %w", err)
	}
	return core.NewStatement(p, incomes, expenses), nil
}

// Custom builds the statement of an inclusive date range. Reversed bounds
// are swapped.
func (s *ReportService) Custom(ctx context.Context, from, to core.Date) (core.Statement, error) {
	p := core.RangePeriod(from, to)
	incomes, err := s.incomes.ByDateRange(ctx, p.From, p.To)
	if err != nil {
		return core.Statement{}, fmt.Errorf("custom report: %w", err)
	}
	expenses, err := s.expenses.ByDateRange(ctx, p.From, p.To)
	if err != nil {
		return core.Statement{}, fmt.Errorf("custom report: %w", err)
	}
	return core.NewStatement(p, incomes, expenses), nil
}
