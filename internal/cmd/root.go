package cmd

import (
	"fmt"
	"os"

	"marketplace/internal/config"

	"github.com/spf13/cobra"
)

var (
	configFile string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "marketplace",
	Short: "Marketplace backend for stores, products, orders and reviews",
	Long: `Marketplace serves the HTTP API through which customers browse stores,
place orders and rate stores, and sellers manage their store, catalog and
order fulfillment.

Configuration is read from config.yaml (or --config), a .env file and the
environment, e.g. DB_DRIVER, DB_DSN, JWT_SECRET, RABBITMQ_URL.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml or ./deploy/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded when present")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(config.Options{ConfigFile: configFile, EnvFile: envFile})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
