package main

import (
	"fmt"
	"os"

	"pharmacare/config"
	"pharmacare/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pharmacare",
	Short: "Pharmacy storefront backend",
	Long: `Backend for the pharmacy storefront: catalog, carts, accounts and orders.

Subcommands:
  serve    - run the HTTP API and the operational gRPC endpoint
  migrate  - apply or roll back the database schema
  seed     - load the demo catalog`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadRuntime reads configuration with a bootstrap logger, then returns the
// logger configured from it.
func loadRuntime() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.LoadConfig(logger.New("info", "json"))
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger.New(cfg.LogLevel, cfg.LogFormat), nil
}
