package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hairizuanbinnoorazman/bizadmin/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration commands",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrations(func(driver string, db *sql.DB, dir string) error {
			if err := database.RunMigrations(driver, db, dir); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			fmt.Println("Migrations applied successfully")
			return nil
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Rollback the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrations(func(driver string, db *sql.DB, dir string) error {
			if err := database.RollbackMigration(driver, db, dir); err != nil {
				return fmt.Errorf("failed to rollback migration: %w", err)
			}
			fmt.Println("Migration rolled back successfully")
			return nil
		})
	},
}

func withMigrations(fn func(driver string, db *sql.DB, dir string) error) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, closeDB, err := openDatabase(context.Background(), cfg, cfg.newLogger())
	if err != nil {
		return err
	}
	defer closeDB()

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return fn(cfg.Database.Driver, sqlDB, database.MigrationsDir(cfg.Database.MigrationsPath, cfg.Database.Driver))
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}
