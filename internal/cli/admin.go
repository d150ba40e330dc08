package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/travelplanner/booking-system/internal/app"
	"github.com/travelplanner/booking-system/internal/core/ports"
)

var (
	adminEmail    string
	adminName     string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an ADMIN account",
	Long: `Create an active ADMIN account in the configured store. This is the only
way to obtain the ADMIN role; registration over HTTP always creates USER
accounts.

The password may be passed with --password or through $ADMIN_PASSWORD.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password := adminPassword
		if password == "" {
			password = os.Getenv("ADMIN_PASSWORD")
		}
		if password == "" {
			return errors.New("a password is required (--password or $ADMIN_PASSWORD)")
		}

		ctx := cmd.Context()
		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		user, err := a.Auth.CreateAdmin(ctx, ports.RegisterInput{Name: adminName, Email: adminEmail, Password: password})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %d <%s>\n", user.ID, user.Email)
		return nil
	},
}

var setActiveCmd = &cobra.Command{
	Use:   "set-active <email> <true|false>",
	Short: "Activate or deactivate an account",
	Long: `Activate or deactivate an account. Deactivated accounts cannot log in;
tokens issued before the change stay valid until they expire.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var active bool
		switch args[1] {
		case "true":
			active = true
		case "false":
		default:
			return fmt.Errorf("second argument must be true or false, got %q", args[1])
		}

		ctx := cmd.Context()
		a, err := app.New(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer a.Close(ctx)

		if err := a.SetUserActive(ctx, args[0], active); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s active=%t\n", args[0], active)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Administrator", "display name")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "password, at least 8 characters")
	_ = createAdminCmd.MarkFlagRequired("email")

	rootCmd.AddCommand(createAdminCmd, setActiveCmd)
}
