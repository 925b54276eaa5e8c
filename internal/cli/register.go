package cli

import (
	"errors"
	"fmt"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Repeat password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			return errors.New("passwords do not match")
		}

		var resp api.Response[api.User]
		err = apiClient.Post("/auth/register", map[string]string{
			"username": args[0],
			"password": password,
		}, &resp)
		if err != nil {
			return fmt.Errorf("registering: %w", err)
		}

		fmt.Printf("Account created: %s\nRun 'skylock login %s' to sign in.\n", resp.Data.Username, resp.Data.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
