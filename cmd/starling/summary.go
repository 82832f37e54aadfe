package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print account identity, balance, and space totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		acct, err := newAccount(cmd)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := acct.RefreshIdentifiers(ctx); err != nil {
			return err
		}
		if err := acct.RefreshBalance(ctx); err != nil {
			return err
		}
		if err := acct.RefreshSpaces(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Account:   %s (%s)\n", acct.Name, acct.Currency)
		fmt.Fprintf(out, "Identity:  %s / %s\n", acct.BankIdentifier, acct.AccountIdentifier)
		if acct.IBAN != "" {
			fmt.Fprintf(out, "IBAN:      %s (%s)\n", acct.IBAN, acct.BIC)
		}
		fmt.Fprintf(out, "Cleared:   %s\n", minorUnits(acct.ClearedBalance, acct.Currency))
		fmt.Fprintf(out, "Effective: %s\n", minorUnits(acct.EffectiveBalance, acct.Currency))
		fmt.Fprintf(out, "Pending:   %s\n", minorUnits(acct.PendingTransactions, acct.Currency))

		var saved int64
		for _, goal := range acct.SavingsGoals {
			saved += goal.TotalSaved.MinorUnits
		}
		fmt.Fprintf(out, "Saved across %d goals: %s\n", len(acct.SavingsGoals), minorUnits(saved, acct.Currency))
		fmt.Fprintf(out, "Spending spaces: %d\n", len(acct.SpendingSpaces))
		return nil
	},
}

// minorUnits renders an integer minor-unit amount as major units. Display
// only; the library never converts amounts.
func minorUnits(v int64, currency string) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, v/100, v%100, currency)
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}
