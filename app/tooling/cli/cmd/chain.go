package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the chain held by the node.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		pc, err := c.Chain()
		if err != nil {
			return err
		}

		pterm.Info.Printfln("length: %d", pc.Length)
		return printChain(pc.Chain)
	},
}

func init() {
	rootCmd.AddCommand(chainCmd)
}
