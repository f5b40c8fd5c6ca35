package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/ardanlabs/toycoin/foundation/toycoin/client"
	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount int64
)

var wireCmd = &cobra.Command{
	Use:   "wire",
	Short: "Queue a transfer between two accounts.",
	Args:  cobra.NoArgs,
	Run:   wireRun,
}

func init() {
	rootCmd.AddCommand(wireCmd)
	wireCmd.Flags().StringVarP(&from, "from", "f", "", "Account the coins leave.")
	wireCmd.Flags().StringVarP(&to, "to", "o", "", "Account the coins arrive in.")
	wireCmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Number of coins to move.")
	wireCmd.MarkFlagRequired("from")
	wireCmd.MarkFlagRequired("to")
}

func wireRun(cmd *cobra.Command, args []string) {
	c, ctx, cancel := newClient()
	defer cancel()

	if err := c.Wire(ctx, from, to, amount); err != nil {
		var re *client.ResponseError
		if errors.As(err, &re) {
			log.Fatal(re.Message)
		}
		log.Fatal(err)
	}

	fmt.Printf("wire of %d from %s to %s is pending\n", amount, from, to)
}
