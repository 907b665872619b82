package main

import (
	"pharmacare/migrations"
	"pharmacare/pkg/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down]",
	Short: "Apply or roll back the database schema",
	Args:  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{
		string(db.MigrateUp),
		string(db.MigrateDown),
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadRuntime()
		if err != nil {
			return err
		}
		return db.RunMigrations(migrations.FS, cfg.DatabaseURL, db.MigrateDirection(args[0]), log)
	},
}
