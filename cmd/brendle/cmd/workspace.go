package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var workspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Inspect and edit your renovation workspace",
	Long:  `Commands for listing, reading, and updating the datasets in your workspace.`,
}

var workspaceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your workspace datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appProvider.App(cmd.Context())
		if err != nil {
			return err
		}
		current, err := a.RequireSession()
		if err != nil {
			return err
		}

		entries, err := a.Workspace.List(cmd.Context(), current.SubjectID)
		if err != nil {
			return fmt.Errorf("listing workspace: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "DATASET\tSIZE\tUPDATED")
		for _, entry := range entries {
			fmt.Fprintf(w, "%s\t%d\t%s\n", entry.Dataset, len(entry.Value), entry.UpdatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var workspaceGetCmd = &cobra.Command{
	Use:   "get <dataset>",
	Short: "Print a dataset as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appProvider.App(cmd.Context())
		if err != nil {
			return err
		}
		current, err := a.RequireSession()
		if err != nil {
			return err
		}

		value, err := a.Workspace.Get(cmd.Context(), current.SubjectID, args[0])
		if err != nil {
			return fmt.Errorf("reading dataset %q: %w", args[0], err)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, value, "", "  "); err != nil {
			// Stored values are JSON, but print whatever is there.
			fmt.Println(string(value))
			return nil
		}
		fmt.Println(pretty.String())
		return nil
	},
}

var workspaceSetCmd = &cobra.Command{
	Use:   "set <dataset> <json>",
	Short: "Replace a dataset with the given JSON value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appProvider.App(cmd.Context())
		if err != nil {
			return err
		}
		current, err := a.RequireSession()
		if err != nil {
			return err
		}

		if !json.Valid([]byte(args[1])) {
			return fmt.Errorf("value for %q is not valid JSON", args[0])
		}

		if err := a.Workspace.Put(cmd.Context(), current.SubjectID, args[0], json.RawMessage(args[1])); err != nil {
			return fmt.Errorf("updating dataset %q: %w", args[0], err)
		}
		fmt.Printf("Updated %s.\n", args[0])
		return nil
	},
}

func init() {
	workspaceCmd.AddCommand(workspaceListCmd)
	workspaceCmd.AddCommand(workspaceGetCmd)
	workspaceCmd.AddCommand(workspaceSetCmd)
}
