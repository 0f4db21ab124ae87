package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/frostyfucker/HotelBrendle/internal/authz"
)

var (
	exportFile string
	exportName string
	exportMime string
)

var exportCmd = &cobra.Command{
	Use:   "export [dataset]",
	Short: "Save a dataset or local file to Google Drive",
	Long: `Uploads a workspace dataset, or a local file given with --file, to your
Google Drive. The first export of a session asks for Drive consent in the
browser; later exports renew the grant silently.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appProvider.App(cmd.Context())
		if err != nil {
			return err
		}
		current, err := a.RequireSession()
		if err != nil {
			return err
		}

		if !authz.Can(a.Enforcer, current.Role, authz.ActionExportDrive) {
			return fmt.Errorf("role %q is not allowed to export to Drive", current.Role)
		}

		var name, mimeType string
		var content []byte
		switch {
		case exportFile != "":
			content, err = os.ReadFile(exportFile)
			if err != nil {
				return fmt.Errorf("reading %s: %w", exportFile, err)
			}
			name = exportName
			if name == "" {
				name = filepath.Base(exportFile)
			}
			mimeType = exportMime
		case len(args) == 1:
			content, err = a.Workspace.Get(cmd.Context(), current.SubjectID, args[0])
			if err != nil {
				return fmt.Errorf("reading dataset %q: %w", args[0], err)
			}
			name = exportName
			if name == "" {
				name = fmt.Sprintf("%s-%s.json", args[0], time.Now().Format("2006-01-02"))
			}
			mimeType = "application/json"
		default:
			return fmt.Errorf("specify a dataset to export, or a local file with --file")
		}

		return a.Uploader.Save(cmd.Context(), name, content, mimeType)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFile, "file", "", "Local file to upload instead of a dataset")
	exportCmd.Flags().StringVar(&exportName, "name", "", "File name to use in Drive (defaults to the source name)")
	exportCmd.Flags().StringVar(&exportMime, "mime", "text/plain", "MIME type for --file uploads")
}
