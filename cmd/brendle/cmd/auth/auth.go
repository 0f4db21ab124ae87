package auth

import (
	"github.com/spf13/cobra"

	"github.com/frostyfucker/HotelBrendle/cmd/brendle/internal/app"
)

var appProvider *app.Provider

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for signing in with Google and inspecting the current session.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
}

// SetAppProvider injects the shared application provider.
func SetAppProvider(provider *app.Provider) {
	appProvider = provider
}
