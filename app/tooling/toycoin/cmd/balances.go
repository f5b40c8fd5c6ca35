package cmd

import (
	"fmt"
	"log"
	"sort"

	"github.com/spf13/cobra"
)

var balancesCmd = &cobra.Command{
	Use:   "balances [account]",
	Short: "Print every balance, or the balance of one account, pending block included.",
	Args:  cobra.MaximumNArgs(1),
	Run:   balancesRun,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
}

func balancesRun(cmd *cobra.Command, args []string) {
	c, ctx, cancel := newClient()
	defer cancel()

	if len(args) == 1 {
		bal, err := c.Balance(ctx, args[0])
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Account: %s  Balance: %d\n", args[0], bal)
		return
	}

	bals, err := c.Balances(ctx)
	if err != nil {
		log.Fatal(err)
	}

	accounts := make([]string, 0, len(bals))
	for account := range bals {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	for _, account := range accounts {
		fmt.Printf("Account: %s  Balance: %d\n", account, bals[account])
	}
}
