package cli

import (
	"fmt"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/arcziwoda/skylock-sub000/internal/cli/output"
	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a folder",
	Long: `List the contents of a folder by virtual path.

  skylock ls            List the root folder
  skylock ls /docs      List /docs`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		path := ""
		if len(args) > 0 {
			path = args[0]
		}

		var resp api.Response[api.Contents]
		if err := apiClient.Get("/folders/"+api.EscapePath(path), nil, &resp); err != nil {
			return fmt.Errorf("listing folder: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		output.ContentsTable(resp.Data)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
