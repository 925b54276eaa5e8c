package cli

import (
	"fmt"
	"os"
	"path"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/spf13/cobra"
)

var (
	flagDownloadOutput string
	flagDownloadZip    bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <remote-path>",
	Short: "Download a file, or a folder as a zip",
	Long: `Download the file at the given virtual path, or an entire folder
as a zip archive with --zip.

  skylock download /docs/report.pdf
  skylock download /docs/report.pdf -o out.pdf
  skylock download --zip /docs`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		endpoint := "/download/files/" + api.EscapePath(args[0])
		target := flagDownloadOutput
		if flagDownloadZip {
			endpoint = "/archive/folders/" + api.EscapePath(args[0])
			if target == "" {
				name := path.Base(args[0])
				if name == "/" || name == "." {
					name = "root"
				}
				target = name + ".zip"
			}
		}
		if target == "" {
			target = path.Base(args[0])
		}

		out, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("creating %s: %w", target, err)
		}
		defer out.Close()

		if err := apiClient.Download(endpoint, out); err != nil {
			os.Remove(target)
			return fmt.Errorf("downloading: %w", err)
		}

		fmt.Println("Saved to", target)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&flagDownloadOutput, "output", "o", "", "Output file name")
	downloadCmd.Flags().BoolVar(&flagDownloadZip, "zip", false, "Download a folder as a zip archive")
	rootCmd.AddCommand(downloadCmd)
}
