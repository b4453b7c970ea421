package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/scaledger/scaledger/internal/cli"
	"github.com/scaledger/scaledger/internal/common"
	"github.com/scaledger/scaledger/internal/model"
	"github.com/scaledger/scaledger/internal/plaid"
)

func importPlaidCmd() *cobra.Command {
	var (
		accountID string
		fromDate  string
		toDate    string
	)

	cmd := &cobra.Command{
		Use:   "plaid",
		Short: "Import transactions from the Plaid API",
		Long: `Fetch transactions from Plaid for the configured item and record them
against the given account. Requires plaid.client_id, plaid.secret,
plaid.environment, and plaid.access_token in the config.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			client, err := plaid.NewClient(plaid.Config{
				ClientID:    viper.GetString("plaid.client_id"),
				Secret:      viper.GetString("plaid.secret"),
				Environment: viper.GetString("plaid.environment"),
				AccessToken: viper.GetString("plaid.access_token"),
			})
			if err != nil {
				return common.NewUserError("plaid configuration is incomplete", err)
			}

			entries, err := fetchPlaidEntries(ctx, client, fromDate, toDate)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(cli.FormatWarning("No transactions returned for the date range"))
				return nil
			}

			_, err = importEntries(ctx, st, accountID, entries)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account ID to record entries against")
	cmd.Flags().StringVar(&fromDate, "from", "", "start date (YYYY-MM-DD, default one month ago)")
	cmd.Flags().StringVar(&toDate, "to", "", "end date (YYYY-MM-DD, default today)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

// fetchPlaidEntries resolves the date range, defaulting to the trailing
// month, and pulls statement entries from the aggregator.
func fetchPlaidEntries(ctx context.Context, fetcher plaid.StatementFetcher, fromDate, toDate string) ([]model.StatementEntry, error) {
	end := time.Now()
	if toDate != "" {
		var err error
		end, err = parseDateFlag(toDate)
		if err != nil {
			return nil, err
		}
	}

	start := end.AddDate(0, -1, 0)
	if fromDate != "" {
		var err error
		start, err = parseDateFlag(fromDate)
		if err != nil {
			return nil, err
		}
	}

	entries, err := fetcher.GetTransactions(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Plaid: %w", err)
	}

	return entries, nil
}
