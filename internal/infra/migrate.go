package infra

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const migrationsDir = "migrations"

func gooseDB(db *gorm.DB) (*sql.DB, error) {
	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, fmt.Errorf("goose set dialect: %w", err)
	}
	return db.DB()
}

// RunMigrations applies every pending migration.
func RunMigrations(db *gorm.DB) error {
	sqlDB, err := gooseDB(db)
	if err != nil {
		return err
	}
	if err := goose.Up(sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// RollbackMigration reverts the most recent migration.
func RollbackMigration(db *gorm.DB) error {
	sqlDB, err := gooseDB(db)
	if err != nil {
		return err
	}
	if err := goose.Down(sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("goose down: %w", err)
	}
	return nil
}

// MigrationStatus prints the applied/pending state of every migration.
func MigrationStatus(db *gorm.DB) error {
	sqlDB, err := gooseDB(db)
	if err != nil {
		return err
	}
	return goose.Status(sqlDB, migrationsDir)
}
