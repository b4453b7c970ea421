package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/scaledger/scaledger/internal/model"
)

// Sheet titles within the exported spreadsheet.
const (
	summarySheet      = "Summary"
	accountsSheet     = "Accounts"
	transactionsSheet = "Transactions"
)

// Writer exports dashboard state to a Google Sheets spreadsheet.
type Writer struct {
	service *sheetsapi.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets dashboard writer, running the
// interactive OAuth2 flow if no cached token exists.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	ts, err := tokenSource(ctx, config)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, ts)
	service, err := sheetsapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write exports the accounts, transactions, and derived summary.
func (w *Writer) Write(ctx context.Context, accounts []model.Account, transactions []model.Transaction, summary model.Summary) error {
	w.logger.Info("Starting dashboard export",
		"accounts", len(accounts),
		"transactions", len(transactions))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	updates := map[string][][]any{
		summarySheet:      summaryRows(summary, time.Now()),
		accountsSheet:     accountRows(accounts),
		transactionsSheet: transactionRows(transactions),
	}

	for sheet, values := range updates {
		vr := &sheetsapi.ValueRange{Values: values}
		_, err := w.service.Spreadsheets.Values.
			Update(spreadsheetID, sheet+"!A1", vr).
			ValueInputOption("RAW").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write %s sheet: %w", sheet, err)
		}
	}

	w.logger.Info("Dashboard export completed", "spreadsheet_id", spreadsheetID)

	return nil
}

// getOrCreateSpreadsheet gets the configured spreadsheet or creates a new one
// with the three dashboard sheets.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheetsapi.Sheet{
			{Properties: &sheetsapi.SheetProperties{Title: summarySheet}},
			{Properties: &sheetsapi.SheetProperties{Title: accountsSheet}},
			{Properties: &sheetsapi.SheetProperties{Title: transactionsSheet}},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("Created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// summaryRows renders the derived summary values.
func summaryRows(summary model.Summary, exportedAt time.Time) [][]any {
	ratio := "n/a"
	if summary.Ratio != nil {
		ratio = summary.Ratio.StringFixed(2)
	}

	return [][]any{
		{"Exported", exportedAt.Format("2006-01-02 15:04:05")},
		{},
		{"Overall Net Cash", summary.OverallNetCash.StringFixed(2)},
		{"Weight On Hand", summary.WeightOnHand.String()},
		{"Sale Amount / Weight", ratio},
	}
}

// accountRows renders the accounts collection with a header row.
func accountRows(accounts []model.Account) [][]any {
	rows := [][]any{
		{"Name", "Type", "Current Balance", "Created"},
	}
	for _, acct := range accounts {
		rows = append(rows, []any{
			acct.Name,
			acct.Type,
			acct.CurrentBalance.StringFixed(2),
			acct.CreatedTime().Format("2006-01-02"),
		})
	}
	return rows
}

// transactionRows renders the transactions collection with a header row.
func transactionRows(transactions []model.Transaction) [][]any {
	rows := [][]any{
		{"Date", "Type", "Amount", "Weight Change", "Category", "Notes"},
	}
	for _, txn := range transactions {
		rows = append(rows, []any{
			txn.EffectiveTime().Format("2006-01-02"),
			string(txn.Type),
			txn.Amount.StringFixed(2),
			txn.WeightChange.String(),
			txn.Category,
			txn.Notes,
		})
	}
	return rows
}
