package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/ardanlabs/toycoin/foundation/toycoin/client"
	"github.com/spf13/cobra"
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Seal the open block.",
	Args:  cobra.NoArgs,
	Run:   commitRun,
}

func init() {
	rootCmd.AddCommand(commitCmd)
}

func commitRun(cmd *cobra.Command, args []string) {
	c, ctx, cancel := newClient()
	defer cancel()

	if err := c.Commit(ctx); err != nil {
		var re *client.ResponseError
		if errors.As(err, &re) {
			log.Fatal(re.Message)
		}
		log.Fatal(err)
	}

	fmt.Println("block committed")
}
