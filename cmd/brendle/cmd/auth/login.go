package auth

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Signs in with your Google account using a browser-based flow.

The CLI opens your browser, waits for Google to redirect back, and stores
the resulting session locally. First-time users get a freshly seeded
workspace.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appProvider.App(cmd.Context())
		if err != nil {
			return err
		}

		if !a.Loader.SignInEnabled() {
			if reason := a.Cfg.SignInDisabledReason(); reason != "" {
				return fmt.Errorf("sign-in is disabled: %s", reason)
			}
			return fmt.Errorf("sign-in is unavailable; Google services failed to load")
		}

		if current := a.Sessions.Current(); current != nil {
			fmt.Printf("Already logged in as %s (%s). Run `brendle auth logout` first to switch accounts.\n",
				current.Name, current.Email)
			return nil
		}

		if err := a.Identity.SignIn(cmd.Context()); err != nil {
			return err
		}

		current := a.Sessions.Current()
		if current == nil {
			return fmt.Errorf("sign-in did not produce a valid session")
		}

		fmt.Println("------------------------------------------------------------")
		fmt.Printf("Logged in as: %s (%s)\n", current.Name, current.Email)
		fmt.Printf("Role: %s\n", current.Role)
		return nil
	},
}
