package main

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/scaledger/scaledger/internal/cli"
	"github.com/scaledger/scaledger/internal/model"
	"github.com/scaledger/scaledger/internal/store"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from external sources",
		Long:  `Import bank statement data from OFX/QFX files or the Plaid API.`,
	}

	cmd.AddCommand(importOFXCmd())
	cmd.AddCommand(importPlaidCmd())

	return cmd
}

// importEntries records statement entries as transactions against the given
// account. Negative amounts become expenses, positive amounts adjustments;
// entries carry no weight.
func importEntries(ctx context.Context, st *store.Store, accountID string, entries []model.StatementEntry) (int, error) {
	bar := progressbar.NewOptions(len(entries),
		progressbar.OptionSetDescription("Importing transactions"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)

	imported := 0
	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return imported, ctx.Err()
		default:
		}

		typ := model.TypeAdjustment
		if entry.Amount.IsNegative() {
			typ = model.TypeExpense
		}

		ok := st.AddTransaction(ctx, store.TransactionInput{
			AccountID: accountID,
			Type:      typ,
			Amount:    model.NormalizeAmount(typ, entry.Amount),
			Notes:     entry.Description,
			Category:  entry.Category,
			Timestamp: entry.Posted.UnixMilli(),
		})
		if !ok {
			_ = bar.Finish()
			return imported, fmt.Errorf("failed to record entry %q from %s",
				entry.Description, entry.Posted.Format("2006-01-02"))
		}

		imported++
		_ = bar.Add(1)
	}

	_ = bar.Finish()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transactions", imported)))

	return imported, nil
}
