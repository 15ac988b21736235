// Package cli implements the budget command-line tool, which works directly
// on the configured store.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/budgetwise/internal/app"
	"github.com/mmynk/budgetwise/internal/config"
	"github.com/mmynk/budgetwise/internal/export"
	"github.com/mmynk/budgetwise/internal/models"
	"github.com/mmynk/budgetwise/internal/storage"
	"github.com/mmynk/budgetwise/pkg/logging"
)

type rootOptions struct {
	configFile string
	dbPath     string
	logLevel   string

	cfg *config.Config
}

// NewRootCommand builds the budget command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "budget",
		Short:         "Summarize and manage a recurring budget",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when no subcommand is provided
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (yaml, json or toml)")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path (overrides DB_PATH)")
	flags.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	cmd.AddCommand(
		newBalancesCommand(opts),
		newSummaryCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newMigrateCommand(opts),
	)
	return cmd
}

// load reads the configuration and applies flag overrides. The CLI logs at
// warn unless asked otherwise so that tables stay readable.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("db") {
		cfg.StorageBackend = config.BackendSQLite
		cfg.DBPath = o.dbPath
	}
	level := "warn"
	if cmd.Flags().Changed("log-level") {
		level = o.logLevel
	}
	logging.SetupWith(logging.ParseLevel(level), logging.ParseFormat(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

func (o *rootOptions) openStore() (storage.Store, error) {
	return app.OpenStore(o.cfg)
}

// snapshot reads the budget from an export file when from is set, and from
// the configured store otherwise.
func (o *rootOptions) snapshot(ctx context.Context, from string) (*models.Budget, error) {
	if from != "" {
		file, err := os.Open(from)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		return export.Decode(file, export.FormatFromPath(from))
	}

	store, err := o.openStore()
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.Snapshot(ctx)
}
