package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scaledger/scaledger/internal/cli"
	"github.com/scaledger/scaledger/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "ofx <file>",
		Short: "Import transactions from an OFX/QFX file",
		Long: `Parse an OFX or QFX bank statement and record its entries as
transactions against the given account.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()

			entries, err := ofx.NewParser().ParseFile(ctx, f)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println(cli.FormatWarning("No transactions found in file"))
				return nil
			}

			_, err = importEntries(ctx, st, accountID, entries)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account ID to record entries against")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
