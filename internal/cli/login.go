package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/arcziwoda/skylock-sub000/internal/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Authenticate against the server",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		var resp api.Response[api.Login]
		err = apiClient.Post("/auth/login", map[string]string{
			"username": args[0],
			"password": password,
		}, &resp)
		if err != nil {
			return fmt.Errorf("logging in: %w", err)
		}

		cfg.Token = resp.Data.Token
		if err := config.Save(cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}

		fmt.Printf("Logged in as %s\n", resp.Data.User.Username)
		return nil
	},
}

func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	data, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
