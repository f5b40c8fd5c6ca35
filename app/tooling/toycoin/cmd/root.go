// Package cmd contains the toycoin command line client.
package cmd

import (
	"context"
	"os"
	"time"

	"github.com/ardanlabs/toycoin/foundation/toycoin/client"
	"github.com/spf13/cobra"
)

var (
	url     string
	timeout time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&url, "url", "u", "http://localhost:8083", "Url of the toycoin service.")
	rootCmd.PersistentFlags().DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Deadline for the whole command.")
}

var rootCmd = &cobra.Command{
	Use:   "toycoin",
	Short: "Talk to a toycoin ledger",
}

// Execute runs the command named on the command line.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newClient() (*client.Client, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	return client.New(url), ctx, cancel
}
