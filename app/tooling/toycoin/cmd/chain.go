package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the committed blocks.",
	Args:  cobra.NoArgs,
	Run:   chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func chainRun(cmd *cobra.Command, args []string) {
	c, ctx, cancel := newClient()
	defer cancel()

	blocks, err := c.Chain(ctx)
	if err != nil {
		log.Fatal(err)
	}

	for _, blk := range blocks {
		hash, err := blk.Hash()
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("Block %d  %s\n", blk.Index, blk.TimeStamp.Format(time.RFC3339))
		fmt.Printf("  hash:     %s\n", hash.Hex())
		fmt.Printf("  previous: %s\n", blk.PreviousHash.Hex())
		fmt.Printf("  proof:    %s\n", hexutil.Encode([]byte{blk.Proof}))
		for _, tx := range blk.Transactions {
			fmt.Printf("  %s\n", tx)
		}
	}
}
