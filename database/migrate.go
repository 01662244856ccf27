package database

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// MigrationsDir returns the directory holding the migrations for driver
// under root, e.g. database/migrations/sqlite.
func MigrationsDir(root, driver string) string {
	if driver == "" {
		driver = DriverSQLite
	}
	return filepath.Join(root, driver)
}

func newMigrate(driver string, db *sql.DB, path string) (*migrate.Migrate, error) {
	var (
		instance migratedb.Driver
		name     string
		err      error
	)
	switch driver {
	case DriverMySQL:
		name = "mysql"
		instance, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	case DriverSQLite, "":
		name = "sqlite3"
		instance, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+path, name, instance)
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations from %s: %w", path, err)
	}
	return m, nil
}

// RunMigrations applies every pending migration found in path.
func RunMigrations(driver string, db *sql.DB, path string) error {
	m, err := newMigrate(driver, db, path)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// RollbackMigration reverts the most recent migration.
func RollbackMigration(driver string, db *sql.DB, path string) error {
	m, err := newMigrate(driver, db, path)
	if err != nil {
		return err
	}
	if err := m.Steps(-1); err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}
	return nil
}
