package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/budgetwise/internal/config"
	"github.com/mmynk/budgetwise/internal/storage/sqlite"
)

func newMigrateCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations to the SQLite database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if root.cfg.StorageBackend != config.BackendSQLite {
				return fmt.Errorf("migrate needs the sqlite backend, got %q", root.cfg.StorageBackend)
			}
			if err := sqlite.Migrate(root.cfg.DBPath); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database %s is up to date\n", root.cfg.DBPath)
			return nil
		},
	}
}
