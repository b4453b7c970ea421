package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scaledger/scaledger/internal/cli"
	"github.com/scaledger/scaledger/internal/common"
	"github.com/scaledger/scaledger/internal/config"
	"github.com/scaledger/scaledger/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard to external destinations",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var spreadsheetID string

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Export accounts, transactions, and the summary to Google Sheets",
		Long: `Write the current dashboard state to a Google Sheets spreadsheet.
Requires sheets.client_id and sheets.client_secret in the config; the
first run opens a browser for OAuth2 authorization.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			tokenFile, err := config.SheetsTokenFile()
			if err != nil {
				return err
			}

			cfg := sheets.DefaultConfig()
			cfg.ClientID = viper.GetString("sheets.client_id")
			cfg.ClientSecret = viper.GetString("sheets.client_secret")
			cfg.TokenFile = tokenFile
			if spreadsheetID != "" {
				cfg.SpreadsheetID = spreadsheetID
			} else if id := viper.GetString("sheets.spreadsheet_id"); id != "" {
				cfg.SpreadsheetID = id
			}

			writer, err := sheets.NewWriter(ctx, cfg, slog.Default().With("component", "sheets"))
			if err != nil {
				return common.NewUserError("failed to set up Google Sheets export", err)
			}

			snap := st.Snapshot()
			if err := writer.Write(ctx, snap.Accounts, snap.Transactions, snap.Summary); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d accounts and %d transactions",
				len(snap.Accounts), len(snap.Transactions))))

			return nil
		},
	}

	cmd.Flags().StringVar(&spreadsheetID, "spreadsheet", "", "existing spreadsheet ID (default: create or reuse configured one)")

	return cmd
}
