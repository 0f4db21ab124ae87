package workspace

// bun/migrate derives the migration name from the file that calls
// MustRegister, which must be named <number>_<label>.go.

func init() {
	Migrations.MustRegister(upWorkspaceEntries, downWorkspaceEntries)
}
