package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/scaledger/scaledger/internal/cli"
	"github.com/scaledger/scaledger/internal/remote"
	"github.com/scaledger/scaledger/internal/store"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
		Long:  `List, add, edit, and delete the accounts transactions are recorded against.`,
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(editAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, err := newStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			snap := st.Snapshot()
			if len(snap.Accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts found. Use 'scaledger accounts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Type"),
				cli.TableHeaderStyle.Render("Balance"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 8),
				strings.Repeat("-", 20),
				strings.Repeat("-", 10),
				strings.Repeat("-", 12))

			for _, acct := range snap.Accounts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					acct.ID, acct.Name, acct.Type, styleMoney(acct.CurrentBalance))
			}

			fmt.Fprintf(w, "\t\t%s\t%s\n",
				cli.TableHeaderStyle.Render("Net cash"),
				styleMoney(snap.Summary.OverallNetCash))

			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		accountType string
		balance     string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			bal, err := parseDecimalFlag(balance, "balance")
			if err != nil {
				return err
			}

			ok := st.AddAccount(ctx, store.AccountInput{
				Name:           args[0],
				Type:           accountType,
				CurrentBalance: bal,
			})
			if !ok {
				return fmt.Errorf("failed to add account %q", args[0])
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account %q", args[0])))
			return nil
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "Bank", "account type tag (e.g. Bank, CashApp)")
	cmd.Flags().StringVar(&balance, "balance", "0", "current balance")

	return cmd
}

func editAccountCmd() *cobra.Command {
	var (
		name        string
		accountType string
		balance     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an account",
		Long:  `Apply a partial update to an account; only the provided flags change.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			var patch remote.AccountPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("type") {
				patch.Type = &accountType
			}
			if cmd.Flags().Changed("balance") {
				bal, parseErr := parseDecimalFlag(balance, "balance")
				if parseErr != nil {
					return parseErr
				}
				patch.CurrentBalance = &bal
			}
			if patch == (remote.AccountPatch{}) {
				return fmt.Errorf("nothing to change: provide --name, --type, or --balance")
			}

			if !st.UpdateAccount(ctx, args[0], patch) {
				return fmt.Errorf("failed to update account %s", args[0])
			}

			fmt.Println(cli.FormatSuccess("Account updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&accountType, "type", "", "new type tag")
	cmd.Flags().StringVar(&balance, "balance", "", "new current balance")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Long:  `Delete an account. Transactions referencing it are not removed.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, _, err := newStore(ctx)
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			if !st.DeleteAccount(ctx, args[0]) {
				return fmt.Errorf("failed to delete account %s", args[0])
			}

			fmt.Println(cli.FormatSuccess("Account deleted"))
			return nil
		},
	}
}
