package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scaledger/scaledger/internal/cli"
	"github.com/scaledger/scaledger/internal/model"
	"github.com/scaledger/scaledger/internal/remote"
	"github.com/scaledger/scaledger/internal/store"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `List, add, edit, and delete transactions. Amount and weight signs are normalized per type.`,
	}

	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(editTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func listTxCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, err := newStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			snap := st.Snapshot()
			if len(snap.Transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions found. Use 'scaledger tx add' to record one."))
				return nil
			}

			transactions := snap.Transactions
			if limit > 0 && len(transactions) > limit {
				transactions = transactions[:limit]
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Weight"),
				cli.TableHeaderStyle.Render("Notes"))

			for _, txn := range transactions {
				notes := txn.Notes
				if notes == "" && txn.Category != "" {
					notes = cli.SubtleStyle.Render("(" + txn.Category + ")")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					txn.ID,
					txn.EffectiveTime().Format("2006-01-02"),
					txn.Type,
					styleMoney(txn.Amount),
					txn.WeightChange.String(),
					notes)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many transactions (0 = all)")

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		accountID string
		txType    string
		amount    string
		weight    string
		notes     string
		category  string
		date      string
		relatedID int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Long: `Record a transaction against an account. Purchase and Expense amounts are
forced negative, Sale amounts positive; weight change is positive for
Purchase, negative for Sale, and zero for everything else.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			typ, err := model.ParseTransactionType(txType)
			if err != nil {
				return err
			}

			amt, err := parseDecimalFlag(amount, "amount")
			if err != nil {
				return err
			}
			wt, err := parseDecimalFlag(weight, "weight")
			if err != nil {
				return err
			}

			when, err := parseDateFlag(date)
			if err != nil {
				return err
			}

			in := store.TransactionInput{
				AccountID:            accountID,
				Type:                 typ,
				Amount:               model.NormalizeAmount(typ, amt),
				WeightChange:         model.NormalizeWeight(typ, wt),
				Notes:                notes,
				Category:             category,
				RelatedTransactionID: relatedID,
			}
			if !when.IsZero() {
				in.Timestamp = when.UnixMilli()
			}

			if !st.AddTransaction(ctx, in) {
				return fmt.Errorf("failed to add transaction")
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s", typ, in.Amount.StringFixed(2))))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "account ID the transaction belongs to")
	cmd.Flags().StringVar(&txType, "type", "", "transaction type (Purchase, Sale, Expense, Transfer, Adjustment)")
	cmd.Flags().StringVar(&amount, "amount", "", "currency amount")
	cmd.Flags().StringVar(&weight, "weight", "0", "weight change")
	cmd.Flags().StringVar(&notes, "notes", "", "free-text note")
	cmd.Flags().StringVar(&category, "category", "", "category tag")
	cmd.Flags().StringVar(&date, "date", "", "effective date (YYYY-MM-DD, default now)")
	cmd.Flags().Int64Var(&relatedID, "related", 0, "related transaction ID (e.g. transfer pair)")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func editTxCmd() *cobra.Command {
	var (
		accountID string
		txType    string
		amount    string
		weight    string
		notes     string
		category  string
		date      string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Long:  `Apply a partial update to a transaction; only the provided flags change.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q: %w", args[0], err)
			}

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			patch, err := buildTxPatch(cmd.Flags().Changed, accountID, txType, amount, weight, notes, category, date)
			if err != nil {
				return err
			}

			if !st.UpdateTransaction(ctx, id, patch) {
				return fmt.Errorf("failed to update transaction %d", id)
			}

			fmt.Println(cli.FormatSuccess("Transaction updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "new account ID")
	cmd.Flags().StringVar(&txType, "type", "", "new transaction type")
	cmd.Flags().StringVar(&amount, "amount", "", "new currency amount")
	cmd.Flags().StringVar(&weight, "weight", "", "new weight change")
	cmd.Flags().StringVar(&notes, "notes", "", "new note")
	cmd.Flags().StringVar(&category, "category", "", "new category tag")
	cmd.Flags().StringVar(&date, "date", "", "new effective date (YYYY-MM-DD)")

	return cmd
}

// buildTxPatch assembles a partial update from the changed flags only.
func buildTxPatch(changed func(string) bool, accountID, txType, amount, weight, notes, category, date string) (remote.TransactionPatch, error) {
	var patch remote.TransactionPatch

	if changed("account") {
		patch.AccountID = &accountID
	}
	if changed("type") {
		typ, err := model.ParseTransactionType(txType)
		if err != nil {
			return patch, err
		}
		patch.Type = &typ
	}
	if changed("amount") {
		amt, err := parseDecimalFlag(amount, "amount")
		if err != nil {
			return patch, err
		}
		patch.Amount = &amt
	}
	if changed("weight") {
		wt, err := parseDecimalFlag(weight, "weight")
		if err != nil {
			return patch, err
		}
		patch.WeightChange = &wt
	}
	if changed("notes") {
		patch.Notes = &notes
	}
	if changed("category") {
		patch.Category = &category
	}
	if changed("date") {
		when, err := parseDateFlag(date)
		if err != nil {
			return patch, err
		}
		wire := remote.FormatWireTime(when)
		patch.Timestamp = &wire
	}

	if patch == (remote.TransactionPatch{}) {
		return patch, fmt.Errorf("nothing to change: provide at least one field flag")
	}

	return patch, nil
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q: %w", args[0], err)
			}

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			if !st.DeleteTransaction(ctx, id) {
				return fmt.Errorf("failed to delete transaction %d", id)
			}

			fmt.Println(cli.FormatSuccess("Transaction deleted"))
			return nil
		},
	}
}
