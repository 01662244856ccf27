package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hairizuanbinnoorazman/bizadmin/client"
	"github.com/hairizuanbinnoorazman/bizadmin/database"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
	"github.com/hairizuanbinnoorazman/bizadmin/sandbox"
	"github.com/hairizuanbinnoorazman/bizadmin/session"
	"github.com/hairizuanbinnoorazman/bizadmin/user"
	"github.com/spf13/cobra"
)

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServer,
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed", false, "apply the seed data before serving")
	rootCmd.AddCommand(serveCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := cfg.newLogger()
	log.Info(ctx, "starting server", map[string]interface{}{
		"version": Version,
		"commit":  Commit,
		"date":    BuildDate,
	})

	db, closeDB, err := openDatabase(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeDB()

	if cfg.Server.AutoMigrate {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %w", err)
		}
		dir := database.MigrationsDir(cfg.Database.MigrationsPath, cfg.Database.Driver)
		if err := database.RunMigrations(cfg.Database.Driver, sqlDB, dir); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info(ctx, "migrations applied", map[string]interface{}{"path": dir})
	}

	projectStore := project.NewSQLStore(db, log)
	clientStore := client.NewSQLStore(db, log)
	userStore := user.NewSQLStore(db, log)

	if seedOnStart {
		if _, err := applySeed(ctx, cfg.Seed.File, sandbox.Seeder{
			Clients:  clientStore,
			Users:    userStore,
			Projects: projectStore,
			Logger:   log,
		}); err != nil {
			return err
		}
	}

	sessionManager := session.NewManager(cfg.Session.Duration, log)
	sessionManager.StartCleanup(5 * time.Minute)
	defer sessionManager.StopCleanup()

	log.Info(ctx, "session manager initialized", map[string]interface{}{
		"duration": cfg.Session.Duration.String(),
	})

	router := sandbox.NewRouter(sandbox.Config{
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, sandbox.Deps{
		Projects: projectStore,
		Clients:  clientStore,
		Users:    userStore,
		Sessions: sessionManager,
		Tokens:   session.NewTokenCodec(cfg.Session.TokenSecret),
		Logger:   log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(ctx, "server listening", map[string]interface{}{
			"address":   addr,
			"base_path": cfg.Server.BasePath,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info(ctx, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info(ctx, "server stopped", nil)
	return nil
}
