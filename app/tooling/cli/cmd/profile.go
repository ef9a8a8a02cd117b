package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// profile represents the settings kept in the profile file.
type profile struct {
	URL     string `toml:"url"`
	Timeout string `toml:"timeout"`
}

func defaultProfile() profile {
	return profile{
		URL:     "http://localhost:8080",
		Timeout: "30s",
	}
}

// loadProfile reads the profile file. A missing file gives the defaults.
func loadProfile(path string) (profile, error) {
	prf := defaultProfile()

	if _, err := toml.DecodeFile(path, &prf); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultProfile(), nil
		}
		return profile{}, fmt.Errorf("decoding profile %s: %w", path, err)
	}

	return prf, nil
}

// saveProfile writes the profile file.
func saveProfile(path string, prf profile) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(prf); err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	return nil
}

// client constructs a node client from the profile.
func (prf profile) client() (*client, error) {
	timeout, err := time.ParseDuration(prf.Timeout)
	if err != nil {
		return nil, fmt.Errorf("parsing timeout %q: %w", prf.Timeout, err)
	}

	return newNodeClient(prf.URL, timeout), nil
}

// =============================================================================

var profileTimeout string

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Write the profile file used by the other commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		prf := defaultProfile()
		if nodeURL != "" {
			prf.URL = nodeURL
		}
		prf.Timeout = profileTimeout

		if _, err := prf.client(); err != nil {
			return err
		}

		if err := saveProfile(profilePath, prf); err != nil {
			return err
		}

		pterm.Success.Printfln("profile written to %s", profilePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.Flags().StringVarP(&profileTimeout, "timeout", "t", defaultProfile().Timeout, "Timeout for calls to the node.")
}
