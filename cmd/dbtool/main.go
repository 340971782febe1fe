// Command dbtool manages the api-webscrap database schema and demo data.
//
//	dbtool migrate up|down|status
//	dbtool seed --dias 90
package main

import (
	"os"

	"github.com/NamelessIII/api-webscrap/internal/config"
	"github.com/NamelessIII/api-webscrap/internal/infra"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dbtool",
		Short:        "Database maintenance for api-webscrap",
		SilenceUsage: true,
	}

	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())

	return cmd
}

// openDB loads configuration, configures logging and connects to Postgres.
func openDB() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	infra.SetupLogger(cfg)

	db, err := infra.NewDatabase(cfg)
	if err != nil {
		return nil, err
	}
	log.Debug().Msg("connected to postgres")
	return db, nil
}
