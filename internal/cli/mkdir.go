package cli

import (
	"fmt"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/arcziwoda/skylock-sub000/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagMkdirParents bool
	flagMkdirPublic  bool
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir <path>",
	Short: "Create a folder",
	Long: `Create a folder at the given virtual path.

  skylock mkdir /docs
  skylock mkdir -p /docs/reports/2026
  skylock mkdir --public /shared`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		body := map[string]interface{}{
			"parents": flagMkdirParents,
			"public":  flagMkdirPublic,
		}

		var resp api.Response[api.Folder]
		if err := apiClient.Post("/folders/"+api.EscapePath(args[0]), body, &resp); err != nil {
			return fmt.Errorf("creating folder: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		fmt.Printf("Created folder: %s (id: %s)\n", resp.Data.Name, resp.Data.ID)
		return nil
	},
}

func init() {
	mkdirCmd.Flags().BoolVarP(&flagMkdirParents, "parents", "p", false, "Create missing parent folders")
	mkdirCmd.Flags().BoolVar(&flagMkdirPublic, "public", false, "Make the folder public")
	rootCmd.AddCommand(mkdirCmd)
}
