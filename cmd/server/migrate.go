package main

import (
	"apgbuilders/internal/database"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cfg.DBAutoMigrate = false

			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
}
