// Package cli contains the travelplanner commands.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/travelplanner/booking-system/internal/infrastructure/config"
	"github.com/travelplanner/booking-system/pkg/logger"
)

var (
	cfg     *config.Config
	log     zerolog.Logger
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "travelplanner",
	Short: "Travel booking API server and admin tooling",
	Long: `travelplanner serves the travel booking HTTP API and carries the
administrative commands that have no HTTP route.

Configuration is read from the environment (and an optional .env file).

Example usage:
  travelplanner serve                      # Start the HTTP API
  travelplanner migrate up                 # Apply Postgres migrations
  travelplanner create-admin --email a@b.c # Create an ADMIN account`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func initConfig(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(cmd.Context())
	if err != nil {
		return err
	}
	log = logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "travelplanner",
		Output:  cmd.ErrOrStderr(),
	}).With().Str("version", version).Logger()
	return nil
}
