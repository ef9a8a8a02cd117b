package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var verbose bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Fetch the chain held by the node and validate it locally.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		pc, err := c.Chain()
		if err != nil {
			return err
		}

		ev := func(v string, args ...any) {}
		if verbose {
			ev = func(v string, args ...any) {
				pterm.Debug.Println(fmt.Sprintf(v, args...))
			}
			pterm.EnableDebugMessages()
		}

		if err := database.ValidateChain(pc.Chain, ev); err != nil {
			return err
		}

		pterm.Success.Printfln("chain of %d blocks is valid", len(pc.Chain))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every check performed.")
}
