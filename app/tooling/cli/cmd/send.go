package cmd

import (
	"errors"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	sender    string
	recipient string
	amount    uint64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a transaction to the node.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if sender == "" || recipient == "" {
			return errors.New("sender and recipient are required")
		}

		c, err := newClient()
		if err != nil {
			return err
		}

		msg, err := c.Send(database.NewTx(sender, recipient, amount))
		if err != nil {
			return err
		}

		pterm.Success.Println(msg.Message)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sender, "sender", "s", "", "Sender of the amount.")
	sendCmd.Flags().StringVarP(&recipient, "recipient", "r", "", "Recipient of the amount.")
	sendCmd.Flags().Uint64VarP(&amount, "amount", "a", 0, "Amount to send.")
}
