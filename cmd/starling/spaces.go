package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var spacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "Print per-space balances and savings goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		acct, err := newAccount(cmd)
		if err != nil {
			return err
		}
		if err := acct.RefreshSpaces(cmd.Context()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()

		goals := make([]string, 0, len(acct.SavingsGoals))
		for uid := range acct.SavingsGoals {
			goals = append(goals, uid)
		}
		sort.Strings(goals)
		for _, uid := range goals {
			g := acct.SavingsGoals[uid]
			fmt.Fprintf(out, "goal  %-24s %s of %s (%d%%)\n",
				g.Name,
				minorUnits(g.TotalSaved.MinorUnits, g.TotalSaved.Currency),
				minorUnits(g.Target.MinorUnits, g.Target.Currency),
				g.SavedPercentage)
			if g.RecurringTransfer.TransferUID != "" {
				fmt.Fprintf(out, "      next top-up %s on %s\n",
					minorUnits(g.RecurringTransfer.Amount.MinorUnits, g.RecurringTransfer.Amount.Currency),
					g.RecurringTransfer.NextPaymentDate)
			}
		}

		spaces := make([]string, 0, len(acct.SpendingSpaces))
		for uid := range acct.SpendingSpaces {
			spaces = append(spaces, uid)
		}
		sort.Strings(spaces)
		for _, uid := range spaces {
			s := acct.SpendingSpaces[uid]
			fmt.Fprintf(out, "space %-24s %s (%s)\n",
				s.Name, minorUnits(s.Balance.MinorUnits, s.Balance.Currency), s.State)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(spacesCmd)
}
