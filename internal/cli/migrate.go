package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/travelplanner/booking-system/internal/infrastructure/config"
	"github.com/travelplanner/booking-system/internal/infrastructure/db/postgres"
)

var errNotPostgres = errors.New("migrations apply to STORE_DRIVER=postgres only; mongo indexes are created on startup")

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the Postgres schema",
	Long: `Apply, roll back or inspect the embedded Postgres migrations.

Example usage:
  travelplanner migrate up          # Apply all pending migrations
  travelplanner migrate down 1      # Roll back one migration
  travelplanner migrate version     # Print the current version`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(cmd); err != nil {
			return err
		}
		if cfg.StoreDriver != config.DriverPostgres {
			return errNotPostgres
		}
		return nil
	},
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return postgres.ApplyMigrations(cfg.Postgres.DSN, log)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back migrations (default 1 step)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			if _, err := fmt.Sscanf(args[0], "%d", &steps); err != nil || steps <= 0 {
				return fmt.Errorf("steps must be a positive integer, got %q", args[0])
			}
		}
		return postgres.RollbackMigrations(cfg.Postgres.DSN, steps, log)
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, dirty, err := postgres.MigrationVersion(cfg.Postgres.DSN)
		if err != nil {
			return err
		}
		state := "clean"
		if dirty {
			state = "dirty"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version %d (%s)\n", v, state)
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
	rootCmd.AddCommand(migrateCmd)
}
