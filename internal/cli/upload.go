package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arcziwoda/skylock-sub000/internal/cli/api"
	"github.com/arcziwoda/skylock-sub000/internal/cli/output"
	"github.com/spf13/cobra"
)

var (
	flagUploadForce  bool
	flagUploadPublic bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <local-file> [remote-path]",
	Short: "Upload a file",
	Long: `Upload a local file to the given virtual path. Without a remote
path the file lands in the root folder under its local name.

  skylock upload report.pdf
  skylock upload report.pdf /docs/report.pdf
  skylock upload -f report.pdf /docs/report.pdf   Replace an existing file`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		remote := "/" + filepath.Base(args[0])
		if len(args) > 1 {
			remote = args[1]
			// A trailing slash means "into this folder".
			if strings.HasSuffix(remote, "/") {
				remote += filepath.Base(args[0])
			}
		}

		fields := map[string]string{
			"force":  strconv.FormatBool(flagUploadForce),
			"public": strconv.FormatBool(flagUploadPublic),
		}

		var resp api.Response[api.File]
		if err := apiClient.Upload("/files/"+api.EscapePath(remote), args[0], fields, &resp); err != nil {
			return fmt.Errorf("uploading: %w", err)
		}

		if flagJSON {
			output.JSON(resp.Data)
			return nil
		}
		fmt.Printf("Uploaded %s (%s)\n", resp.Data.Name, output.FormatSize(resp.Data.Size))
		return nil
	},
}

func init() {
	uploadCmd.Flags().BoolVarP(&flagUploadForce, "force", "f", false, "Replace an existing file in place")
	uploadCmd.Flags().BoolVar(&flagUploadPublic, "public", false, "Make the file public")
	rootCmd.AddCommand(uploadCmd)
}
