package cli

import (
	"fmt"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/arcziwoda/skylock-sub000/internal/cli/output"
	"github.com/spf13/cobra"
)

var flagShareFile bool

var shareCmd = &cobra.Command{
	Use:   "share <path>",
	Short: "Make a folder or file public and print its share link",
	Long: `Mark the folder at the given virtual path public and print the
share link. Use --file for files.

  skylock share /docs
  skylock share --file /docs/report.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		kind := "folders"
		if flagShareFile {
			kind = "files"
		}
		escaped := api.EscapePath(args[0])

		body := map[string]interface{}{"isPublic": true}
		if flagShareFile {
			var resp api.Response[api.File]
			if err := apiClient.Patch("/files/"+escaped, body, &resp); err != nil {
				return fmt.Errorf("sharing: %w", err)
			}
		} else {
			var resp api.Response[api.Folder]
			if err := apiClient.Patch("/folders/"+escaped, body, &resp); err != nil {
				return fmt.Errorf("sharing: %w", err)
			}
		}

		var link api.Response[api.ShareLink]
		if err := apiClient.Get("/links/"+kind+"/"+escaped, nil, &link); err != nil {
			return fmt.Errorf("fetching share link: %w", err)
		}

		if flagJSON {
			output.JSON(link.Data)
			return nil
		}
		fmt.Println("Share link:", link.Data.URL)
		if link.Data.DownloadURL != "" {
			fmt.Println("Download:  ", link.Data.DownloadURL)
		}
		return nil
	},
}

func init() {
	shareCmd.Flags().BoolVar(&flagShareFile, "file", false, "Target a file instead of a folder")
	rootCmd.AddCommand(shareCmd)
}
