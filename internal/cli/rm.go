package cli

import (
	"fmt"
	"net/url"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/spf13/cobra"
)

var (
	flagRmRecursive bool
	flagRmFile      bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a folder or file",
	Long: `Delete the folder at the given virtual path, or a file with --file.

  skylock rm /docs/old            Delete an empty folder
  skylock rm -r /docs/old         Delete a folder and everything in it
  skylock rm --file /docs/a.txt   Delete a file`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		if flagRmFile {
			var resp api.Response[map[string]string]
			if err := apiClient.Delete("/files/"+api.EscapePath(args[0]), nil, &resp); err != nil {
				return fmt.Errorf("deleting file: %w", err)
			}
			fmt.Println("Deleted file:", args[0])
			return nil
		}

		params := url.Values{}
		if flagRmRecursive {
			params.Set("recursive", "true")
		}

		var resp api.Response[map[string]string]
		if err := apiClient.Delete("/folders/"+api.EscapePath(args[0]), params, &resp); err != nil {
			return fmt.Errorf("deleting folder: %w", err)
		}
		fmt.Println("Deleted folder:", args[0])
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&flagRmRecursive, "recursive", "r", false, "Delete folder contents recursively")
	rmCmd.Flags().BoolVar(&flagRmFile, "file", false, "Target a file instead of a folder")
	rootCmd.AddCommand(rmCmd)
}
