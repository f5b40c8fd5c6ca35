package cmd

import (
	"fmt"
	"log"
	"strconv"

	"github.com/spf13/cobra"
)

var miner string

var guessCmd = &cobra.Command{
	Use:   "guess <value>",
	Short: "Submit one proof guess between 0 and 255.",
	Args:  cobra.ExactArgs(1),
	Run:   guessRun,
}

func init() {
	rootCmd.AddCommand(guessCmd)
	guessCmd.Flags().StringVarP(&miner, "miner", "m", "", "Account credited for a correct guess.")
	guessCmd.MarkFlagRequired("miner")
}

func guessRun(cmd *cobra.Command, args []string) {
	value, err := strconv.ParseUint(args[0], 10, 8)
	if err != nil {
		log.Fatalf("guess must be between 0 and 255: %s", args[0])
	}

	c, ctx, cancel := newClient()
	defer cancel()

	correct, err := c.Guess(ctx, miner, byte(value))
	if err != nil {
		log.Fatal(err)
	}

	if !correct {
		fmt.Println("wrong")
		return
	}

	fmt.Printf("correct, %s was granted a reward\n", miner)
}
