package cli

import (
	"fmt"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/spf13/cobra"
)

var flagUnshareFile bool

var unshareCmd = &cobra.Command{
	Use:   "unshare <path>",
	Short: "Make a folder or file private again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		body := map[string]interface{}{"isPublic": false}
		escaped := api.EscapePath(args[0])

		if flagUnshareFile {
			var resp api.Response[api.File]
			if err := apiClient.Patch("/files/"+escaped, body, &resp); err != nil {
				return fmt.Errorf("unsharing: %w", err)
			}
		} else {
			var resp api.Response[api.Folder]
			if err := apiClient.Patch("/folders/"+escaped, body, &resp); err != nil {
				return fmt.Errorf("unsharing: %w", err)
			}
		}

		fmt.Println("Now private:", args[0])
		return nil
	},
}

func init() {
	unshareCmd.Flags().BoolVar(&flagUnshareFile, "file", false, "Target a file instead of a folder")
	rootCmd.AddCommand(unshareCmd)
}
