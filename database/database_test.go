package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestConfig_DSN(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{
			name: "sqlite path",
			cfg:  Config{Driver: DriverSQLite, Path: "bizadmin.db"},
			want: "bizadmin.db",
		},
		{
			name: "empty driver means sqlite",
			cfg:  Config{Path: ":memory:"},
			want: ":memory:",
		},
		{
			name:    "sqlite without path",
			cfg:     Config{Driver: DriverSQLite},
			wantErr: true,
		},
		{
			name: "mysql",
			cfg:  Config{Driver: DriverMySQL, User: "root", Password: "pw", Host: "db", Port: 3306, Database: "bizadmin"},
			want: "root:pw@tcp(db:3306)/bizadmin?charset=utf8mb4&parseTime=True&loc=UTC&multiStatements=true",
		},
		{
			name:    "unknown driver",
			cfg:     Config{Driver: "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.DSN()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func connectTemp(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Connect(Config{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestMigrations(t *testing.T) {
	path := MigrationsDir("migrations", DriverSQLite)

	t.Run("up creates every table", func(t *testing.T) {
		db := connectTemp(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)

		require.NoError(t, RunMigrations(DriverSQLite, sqlDB, path))
		for _, table := range []string{"clients", "projects", "users"} {
			assert.True(t, db.Migrator().HasTable(table), table)
		}
	})

	t.Run("up twice is a no-op", func(t *testing.T) {
		db := connectTemp(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)

		require.NoError(t, RunMigrations(DriverSQLite, sqlDB, path))
		assert.NoError(t, RunMigrations(DriverSQLite, sqlDB, path))
	})

	t.Run("rollback reverts the latest migration only", func(t *testing.T) {
		db := connectTemp(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)

		require.NoError(t, RunMigrations(DriverSQLite, sqlDB, path))
		require.NoError(t, RollbackMigration(DriverSQLite, sqlDB, path))
		assert.False(t, db.Migrator().HasTable("users"))
		assert.True(t, db.Migrator().HasTable("projects"))
	})

	t.Run("unknown driver", func(t *testing.T) {
		db := connectTemp(t)
		sqlDB, err := db.DB()
		require.NoError(t, err)

		assert.Error(t, RunMigrations("postgres", sqlDB, path))
	})
}

func TestMigrationsDir(t *testing.T) {
	assert.Equal(t, filepath.Join("database", "migrations", "mysql"), MigrationsDir(filepath.Join("database", "migrations"), DriverMySQL))
	assert.Equal(t, filepath.Join("m", "sqlite"), MigrationsDir("m", ""))
}
