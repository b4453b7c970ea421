package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/scaledger/scaledger/internal/cli"
)

func dashboardCmd() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the summary dashboard",
		Long: `Show derived totals across all accounts: overall net cash, weight on
hand, and the average sale amount per unit weight.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, _, err := newStore(cmd.Context())
			if err != nil {
				return err
			}
			if err := requireUser(st); err != nil {
				return err
			}

			snap := st.Snapshot()

			cards := lipgloss.JoinHorizontal(
				lipgloss.Top,
				cli.RenderBox("Net Cash", styleMoney(snap.Summary.OverallNetCash)),
				cli.RenderBox("Weight On Hand", snap.Summary.WeightOnHand.String()),
				cli.RenderBox("Amount / Weight", formatRatio(snap.Summary.Ratio)),
			)

			fmt.Println(cli.FormatTitle("Dashboard"))
			fmt.Println(cards)
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("%d accounts · %d transactions",
				len(snap.Accounts), len(snap.Transactions))))

			if recent > 0 && len(snap.Transactions) > 0 {
				fmt.Println()
				fmt.Println(cli.TableHeaderStyle.Render("Recent activity"))
				n := recent
				if n > len(snap.Transactions) {
					n = len(snap.Transactions)
				}
				var lines []string
				for _, txn := range snap.Transactions[:n] {
					lines = append(lines, fmt.Sprintf("%s  %-10s  %s",
						txn.EffectiveTime().Format("2006-01-02"),
						txn.Type,
						styleMoney(txn.Amount)))
				}
				fmt.Println(strings.Join(lines, "\n"))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&recent, "recent", 5, "number of recent transactions to show (0 = none)")

	return cmd
}

// formatRatio renders the amount-per-weight ratio, which is undefined until
// at least one sale with nonzero weight exists.
func formatRatio(ratio *decimal.Decimal) string {
	if ratio == nil {
		return cli.SubtleStyle.Render("n/a")
	}
	return ratio.StringFixed(2)
}
