// Package cmd contains the ledger command line client.
package cmd

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	profilePath string
	nodeURL     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "ledger.toml", "Path to the profile file.")
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "", "Url of the node, overrides the profile.")
}

var rootCmd = &cobra.Command{
	Use:           "ledger",
	Short:         "Command line client for a ledger node",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command named on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// newClient constructs a client for the node named by the profile and flags.
func newClient() (*client, error) {
	prf, err := loadProfile(profilePath)
	if err != nil {
		return nil, err
	}

	if nodeURL != "" {
		prf.URL = nodeURL
	}

	return prf.client()
}
