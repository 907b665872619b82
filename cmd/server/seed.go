package main

import (
	"fmt"
	"os"

	"pharmacare/internal/repository"
	"pharmacare/internal/seed"
	"pharmacare/pkg/db"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo catalog (idempotent)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}

		fixtures, err := loadFixtures(seedFile)
		if err != nil {
			return err
		}

		database, err := db.Connect(cmd.Context(), cfg.DatabaseURL, poolConfig(cfg))
		if err != nil {
			return err
		}
		defer database.Close()

		seeder := seed.NewSeeder(
			repository.NewPostgresDrugRepository(database, log),
			repository.NewPostgresCategoryRepository(database, log),
			log,
		)
		return seeder.Run(cmd.Context(), fixtures)
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML fixture file (defaults to the embedded catalog)")
}

func loadFixtures(path string) (*seed.Fixtures, error) {
	if path == "" {
		return seed.DefaultFixtures()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return seed.ParseFixtures(data)
}
