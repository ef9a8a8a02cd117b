// This program provides a command line client for a ledger node.
package main

import "github.com/ardanlabs/ledger/app/tooling/cli/cmd"

func main() {
	cmd.Execute()
}
