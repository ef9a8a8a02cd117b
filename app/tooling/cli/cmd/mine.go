package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine a block.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		spinner, _ := pterm.DefaultSpinner.Start("mining")
		mb, err := c.Mine()
		if err != nil {
			spinner.Fail(err)
			return err
		}
		spinner.Success("mined")

		return printBlock(mb)
	},
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
