package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	authcmd "github.com/frostyfucker/HotelBrendle/cmd/brendle/cmd/auth"
	"github.com/frostyfucker/HotelBrendle/cmd/brendle/internal/app"
)

var appProvider = app.NewProvider()

var rootCmd = &cobra.Command{
	Use:   "brendle",
	Short: "Hotel Brendle renovation dashboard CLI",
	Long: `brendle manages the Hotel Brendle renovation workspace: sign in with
Google, inspect and edit the per-user datasets, and export them to Google Drive.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	defer appProvider.Close()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	authcmd.SetAppProvider(appProvider)
	rootCmd.AddCommand(authcmd.AuthCmd)
	rootCmd.AddCommand(workspaceCmd)
	rootCmd.AddCommand(exportCmd)
}
