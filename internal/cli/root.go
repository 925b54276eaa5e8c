// Package cli implements the skylock command-line client.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/arcziwoda/skylock-sub000/internal/cli/config"
	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagServerURL string

	cfg       *config.Config
	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "skylock",
	Short: "Skylock CLI — manage your files from the terminal",
	Long: `Skylock CLI lets you upload, download, share, and manage files
on your Skylock server without leaving the terminal.

Get started:
  skylock register            Create an account
  skylock login               Authenticate
  skylock ls /                List your root folder
  skylock upload report.pdf /docs/report.pdf`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		apiClient = api.NewClient(cfg.ServerURL, cfg.Token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or http://localhost:8080)")
}

func requireAuth() error {
	if !cfg.HasToken() {
		return errors.New("not logged in, run 'skylock login' first")
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
