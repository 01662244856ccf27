package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hairizuanbinnoorazman/bizadmin/database"
	"github.com/hairizuanbinnoorazman/bizadmin/logger"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Session  SessionConfig
	CORS     CORSConfig
	Log      LogConfig
	Seed     SeedConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BasePath     string
	AutoMigrate  bool
}

// DatabaseConfig holds database connection configuration.
type DatabaseConfig struct {
	Driver         string
	Path           string
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	MaxOpenConns   int
	MaxIdleConns   int
	MigrationsPath string
}

// SessionConfig holds session management configuration.
type SessionConfig struct {
	Duration    time.Duration
	TokenSecret string
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Format string
}

// SeedConfig points at the seed file. Empty means the built-in seed.
type SeedConfig struct {
	File string
}

// LoadConfig loads configuration from file and environment variables.
// Keys map to env vars with dots replaced by underscores, e.g. DATABASE_DRIVER.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.base_path", "/api/projects")
	v.SetDefault("server.auto_migrate", true)

	v.SetDefault("database.driver", database.DriverSQLite)
	v.SetDefault("database.path", "bizadmin.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "bizadmin")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.migrations_path", "database/migrations")

	v.SetDefault("session.duration", "24h")
	v.SetDefault("session.token_secret", "change-this-secret-in-production-min-32-chars")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", string(logger.FormatJSON))

	v.SetDefault("seed.file", "")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config

	config.Server.Host = v.GetString("server.host")
	config.Server.Port = v.GetInt("server.port")
	config.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	config.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	config.Server.BasePath = v.GetString("server.base_path")
	config.Server.AutoMigrate = v.GetBool("server.auto_migrate")

	config.Database.Driver = v.GetString("database.driver")
	config.Database.Path = v.GetString("database.path")
	config.Database.Host = v.GetString("database.host")
	config.Database.Port = v.GetInt("database.port")
	config.Database.User = v.GetString("database.user")
	config.Database.Password = v.GetString("database.password")
	config.Database.Database = v.GetString("database.database")
	config.Database.MaxOpenConns = v.GetInt("database.max_open_conns")
	config.Database.MaxIdleConns = v.GetInt("database.max_idle_conns")
	config.Database.MigrationsPath = v.GetString("database.migrations_path")

	config.Session.Duration = v.GetDuration("session.duration")
	config.Session.TokenSecret = v.GetString("session.token_secret")

	config.CORS.AllowedOrigins = v.GetStringSlice("cors.allowed_origins")

	config.Log.Level = v.GetString("log.level")
	config.Log.Format = v.GetString("log.format")

	config.Seed.File = v.GetString("seed.file")

	return &config, nil
}

func (c *Config) newLogger() logger.Logger {
	if logger.Format(c.Log.Format) == logger.FormatText {
		return logger.NewLogrusLoggerWithOutput(c.Log.Level, logger.FormatText, os.Stdout)
	}
	return logger.NewLogrusLogger(c.Log.Level)
}

func (c *Config) databaseConfig() database.Config {
	return database.Config{
		Driver:       c.Database.Driver,
		Path:         c.Database.Path,
		Host:         c.Database.Host,
		Port:         c.Database.Port,
		User:         c.Database.User,
		Password:     c.Database.Password,
		Database:     c.Database.Database,
		MaxOpenConns: c.Database.MaxOpenConns,
		MaxIdleConns: c.Database.MaxIdleConns,
		LogQueries:   strings.EqualFold(c.Log.Level, "debug"),
	}
}

// openDatabase connects and returns a close func for the underlying pool.
func openDatabase(ctx context.Context, cfg *Config, log logger.Logger) (*gorm.DB, func(), error) {
	db, err := database.Connect(cfg.databaseConfig())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	log.Info(ctx, "database connected", map[string]interface{}{
		"driver":   cfg.Database.Driver,
		"database": cfg.Database.Database,
	})

	return db, func() { sqlDB.Close() }, nil
}
