package cmd

import "github.com/spf13/cobra"

var pendingCmd = &cobra.Command{
	Use:   "pending",
	Short: "Print the transactions waiting for the next block.",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		trans, err := c.Pending()
		if err != nil {
			return err
		}

		return printTrans(trans)
	},
}

func init() {
	rootCmd.AddCommand(pendingCmd)
}
