package workspace

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// Migrations holds the workspace schema migrations.
var Migrations = migrate.NewMigrations()

func upWorkspaceEntries(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*Entry)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create workspace_entries table: %w", err)
	}

	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_workspace_entries_subject ON workspace_entries(subject_id)`)
	if err != nil {
		return fmt.Errorf("create workspace_entries subject index: %w", err)
	}
	return nil
}

func downWorkspaceEntries(ctx context.Context, db *bun.DB) error {
	_, err := db.NewDropTable().
		Model((*Entry)(nil)).
		IfExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("drop workspace_entries table: %w", err)
	}
	return nil
}

// runMigrations applies pending migrations with the migrator's locking so a
// second process cannot race the schema setup.
func runMigrations(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, Migrations)

	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("initialize migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
