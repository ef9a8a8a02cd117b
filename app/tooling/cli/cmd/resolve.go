package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Ask the node to resolve its chain against its peers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		res, err := c.Resolve()
		if err != nil {
			return err
		}

		if res.Replaced {
			pterm.Warning.Println(res.Message)
		} else {
			pterm.Success.Println(res.Message)
		}

		return printChain(res.Chain)
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
