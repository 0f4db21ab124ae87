package auth

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/frostyfucker/HotelBrendle/internal/authz"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display the current session and its permissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appProvider.App(cmd.Context())
		if err != nil {
			return err
		}

		current, err := a.RequireSession()
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Session")
		pterm.Info.Printf("Logged in as: %s (%s)\n", current.Name, current.Email)
		pterm.Info.Printf("Role: %s\n", current.Role)

		pterm.DefaultSection.Println("Google Services")
		pterm.Info.Printf("Sign-in: %s\n", readiness(a.Loader.SignInEnabled()))
		pterm.Info.Printf("Drive exports: %s\n", readiness(a.Loader.StorageReady()))

		actions, err := authz.ActionsFor(a.Enforcer, current.Role)
		if err != nil {
			return fmt.Errorf("resolving permissions: %w", err)
		}

		pterm.DefaultSection.Println("Permissions")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ROLE\tACTIONS")
		fmt.Fprintf(w, "%s\t%s\n", current.Role, strings.Join(actions, ", "))
		w.Flush()

		return nil
	},
}

func readiness(ready bool) string {
	if ready {
		return "ready"
	}
	return "unavailable"
}
