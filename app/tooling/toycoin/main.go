// This program drives a running toycoin service from the command line.
package main

import "github.com/ardanlabs/toycoin/app/tooling/toycoin/cmd"

func main() {
	cmd.Execute()
}
