package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"finance/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsOptions locates the target spreadsheet and the service account used
// to write to it. CredentialsJSON wins over CredentialsFile.
type SheetsOptions struct {
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	CredentialsJSON string
}

// SheetsExporter writes each statement to its own tab of a Google
// spreadsheet, named after SheetName and the period slug. Exporting a period
// again clears that tab and rewrites it, so a tab always holds one block:
// title and totals followed by the ledger header and rows.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter authenticates with a service account.
func NewSheetsExporter(ctx context.Context, opts SheetsOptions) (*SheetsExporter, error) {
	if strings.TrimSpace(opts.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}

	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(opts.CredentialsJSON) != "":
		slog.DebugContext(ctx, "Using inline service account credentials")
		credentialsJSON = []byte(opts.CredentialsJSON)
	case opts.CredentialsFile != "":
		b, err := os.ReadFile(opts.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return newSheetsExporter(svc, opts), nil
}

func newSheetsExporter(svc *gsheet.Service, opts SheetsOptions) *SheetsExporter {
	name := opts.SheetName
	if name == "" {
		name = "Ledger"
	}
	return &SheetsExporter{svc: svc, spreadsheetID: opts.SpreadsheetID, sheetName: name}
}

func (s *SheetsExporter) Name() string {
	return "google-sheets"
}

func (s *SheetsExporter) Export(ctx context.Context, st core.Statement) error {
	if s.svc == nil {
		return errors.New("sheets service not initialized")
	}

	tab := s.tabName(st)
	if err := s.ensureTab(ctx, tab); err != nil {
		return err
	}

	rng := quoteSheet(tab)
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", tab, err)
	}

	values := append(summaryRows(st), ledgerRows(st)...)
	resp, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, rng+"!A1", &gsheet.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update sheet %s: %w", tab, err)
	}

	slog.InfoContext(ctx, "Statement exported",
		"destination", s.Name(),
		"sheet", tab,
		"range", resp.UpdatedRange,
		"movements", len(st.Ledger))
	return nil
}

func (s *SheetsExporter) tabName(st core.Statement) string {
	return s.sheetName + " " + st.Period.Slug()
}

// ensureTab adds the tab when the spreadsheet does not have it yet.
func (s *SheetsExporter) ensureTab(ctx context.Context, tab string) error {
	ss, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("look up sheet %s: %w", tab, err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tab {
			return nil
		}
	}

	req := &gsheet.BatchUpdateSpreadsheetRequest{Requests: []*gsheet.Request{{
		AddSheet: &gsheet.AddSheetRequest{Properties: &gsheet.SheetProperties{Title: tab}},
	}}}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add sheet %s: %w", tab, err)
	}
	slog.DebugContext(ctx, "Sheet added", "sheet", tab)
	return nil
}

// quoteSheet returns the A1 notation for a whole tab.
func quoteSheet(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}
