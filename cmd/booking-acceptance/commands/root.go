package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/booking-acceptance/internal/config"
	"github.com/celestiaorg/booking-acceptance/internal/constants"
	"github.com/celestiaorg/booking-acceptance/internal/logger"
)

// flag names
const (
	flagEnv       = "env"
	flagConfigDir = "config-dir"
)

var (
	// envName selects <config-dir>/<env>.env. Flag parsing sets this.
	envName string
	// configDir holds the environment files. Flag parsing sets this.
	configDir string
	// cfg is the configuration resolved by PersistentPreRunE
	cfg *config.Config
)

func init() {
	// Set basic defaults for the flags. PersistentPreRunE will handle env var override.
	RootCmd.PersistentFlags().StringVarP(&envName, flagEnv, "e", constants.DefaultEnvName, "Environment to run against (env: BOOKING_ENV)")
	RootCmd.PersistentFlags().StringVar(&configDir, flagConfigDir, constants.DefaultConfigDir, "Directory holding <env>.env files (env: BOOKING_CONFIG_DIR)")

	RootCmd.AddCommand(GetRunCmd())
	RootCmd.AddCommand(GetTokenCmd())
	RootCmd.AddCommand(GetHealthCmd())
	RootCmd.AddCommand(GetBookingCmd())
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "booking-acceptance",
	Short: "Acceptance tests for the booking API",
	Long: `booking-acceptance runs the booking API feature suite against a configured
environment and offers a few commands to poke the API by hand.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > Env Var > Default
		if !cmd.Flags().Changed(flagEnv) {
			if v := os.Getenv(constants.EnvName); v != "" {
				envName = v
			}
		}
		if !cmd.Flags().Changed(flagConfigDir) {
			if v := os.Getenv(constants.EnvConfigDir); v != "" {
				configDir = v
			}
		}

		loaded, err := config.Load(envName, configDir)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded

		logger.InitializeAndConfigure(cfg.LogLevel())
		logger.DebugWithFields("Configuration loaded", map[string]interface{}{
			"env":      cfg.Name(),
			"base_url": cfg.BaseURL(),
			"timeout":  cfg.Timeout().String(),
		})
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
