package cli

import (
	"fmt"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/arcziwoda/skylock-sub000/internal/cli/output"
	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		var resp api.Response[api.User]
		if err := apiClient.Get("/auth/me", nil, &resp); err != nil {
			return fmt.Errorf("fetching user: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.UserInfo(resp.Data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
