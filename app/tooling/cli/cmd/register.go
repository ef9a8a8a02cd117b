package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register [node...]",
	Short: "Register peer nodes with the node.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		reg, err := c.Register(args)
		if err != nil {
			return err
		}

		pterm.Success.Println(reg.Message)

		items := make([]pterm.BulletListItem, len(reg.TotalNodes))
		for i, host := range reg.TotalNodes {
			items[i] = pterm.BulletListItem{Level: 0, Text: host}
		}

		return pterm.DefaultBulletList.WithItems(items).Render()
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
