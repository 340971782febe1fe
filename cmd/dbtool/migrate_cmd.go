package main

import (
	"github.com/NamelessIII/api-webscrap/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect schema migrations",
	}

	cmd.AddCommand(migrateSubcmd("up", "Apply all pending migrations", infra.RunMigrations))
	cmd.AddCommand(migrateSubcmd("down", "Roll back the most recent migration", infra.RollbackMigration))
	cmd.AddCommand(migrateSubcmd("status", "Print the state of every migration", infra.MigrationStatus))

	return cmd
}

func migrateSubcmd(use, short string, run func(*gorm.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			if err := run(db); err != nil {
				return err
			}
			log.Info().Str("command", use).Msg("migrate done")
			return nil
		},
	}
}
