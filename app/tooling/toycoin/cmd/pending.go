package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Print the transactions of the open block.",
	Args:  cobra.NoArgs,
	Run:   pendingRun,
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}

func pendingRun(cmd *cobra.Command, args []string) {
	c, ctx, cancel := newClient()
	defer cancel()

	trans, err := c.Pending(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if len(trans) == 0 {
		fmt.Println("no pending transactions")
		return
	}

	for i, tx := range trans {
		fmt.Printf("%3d: %s\n", i, tx)
	}
}
