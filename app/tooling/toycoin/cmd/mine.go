package cmd

import (
	"fmt"
	"log"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"
)

var (
	mineMiner  string
	mineBlocks int
	mineCommit bool
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Sweep every guess until the current proof is found.",
	Args:  cobra.NoArgs,
	Run:   mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&mineMiner, "miner", "m", "", "Account credited for each proof found.")
	mineCmd.Flags().IntVarP(&mineBlocks, "blocks", "b", 1, "Number of proofs to find.")
	mineCmd.Flags().BoolVarP(&mineCommit, "commit", "c", false, "Commit the block after each proof so the next one rotates.")
	mineCmd.MarkFlagRequired("miner")
}

func mineRun(cmd *cobra.Command, args []string) {
	c, ctx, cancel := newClient()
	defer cancel()

	for i := 0; i < mineBlocks; i++ {
		proof, found, err := c.Mine(ctx, mineMiner)
		if err != nil {
			log.Fatal(err)
		}

		if !found {
			fmt.Println("no guess accepted, the block was committed during the sweep")
			continue
		}
		fmt.Printf("proof %s found for %s\n", hexutil.Encode([]byte{proof}), mineMiner)

		if mineCommit {
			if err := c.Commit(ctx); err != nil {
				log.Fatal(err)
			}
			fmt.Println("block committed")
		}
	}
}
