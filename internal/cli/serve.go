package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/travelplanner/booking-system/internal/app"
	"github.com/travelplanner/booking-system/internal/infrastructure/config"
	"github.com/travelplanner/booking-system/internal/infrastructure/db/postgres"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API on $PORT using the store selected by $STORE_DRIVER.

With STORE_DRIVER=postgres, pending migrations are applied first unless
--migrate=false is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.StoreDriver == config.DriverPostgres && serveMigrate {
			if err := postgres.ApplyMigrations(cfg.Postgres.DSN, log); err != nil {
				return err
			}
		}

		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() {
			if err := a.Close(context.WithoutCancel(ctx)); err != nil {
				log.Error().Err(err).Msg("shutdown")
			}
		}()

		return a.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", true, "apply pending Postgres migrations before serving")
	rootCmd.AddCommand(serveCmd)
}
