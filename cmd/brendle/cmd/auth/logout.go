package auth

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appProvider.App(cmd.Context())
		if err != nil {
			return err
		}

		if a.Sessions.Current() == nil {
			fmt.Println("Not logged in.")
			return nil
		}

		a.Sessions.Logout(cmd.Context())
		return nil
	},
}
