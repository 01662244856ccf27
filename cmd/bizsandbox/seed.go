package main

import (
	"context"
	"fmt"

	"github.com/hairizuanbinnoorazman/bizadmin/client"
	"github.com/hairizuanbinnoorazman/bizadmin/project"
	"github.com/hairizuanbinnoorazman/bizadmin/sandbox"
	"github.com/hairizuanbinnoorazman/bizadmin/user"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load clients, users and projects into the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if seedFile != "" {
			cfg.Seed.File = seedFile
		}

		log := cfg.newLogger()
		db, closeDB, err := openDatabase(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer closeDB()

		res, err := applySeed(ctx, cfg.Seed.File, sandbox.Seeder{
			Clients:  client.NewSQLStore(db, log),
			Users:    user.NewSQLStore(db, log),
			Projects: project.NewSQLStore(db, log),
			Logger:   log,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Seeded %d clients, %d users, %d projects\n", res.Clients, res.Users, res.Projects)
		return nil
	},
}

func applySeed(ctx context.Context, path string, seeder sandbox.Seeder) (sandbox.SeedResult, error) {
	data, err := sandbox.LoadSeedFile(path)
	if err != nil {
		return sandbox.SeedResult{}, fmt.Errorf("failed to load seed data: %w", err)
	}
	res, err := seeder.Apply(ctx, data)
	if err != nil {
		return res, fmt.Errorf("failed to apply seed data: %w", err)
	}
	return res, nil
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "seed YAML file (defaults to the built-in seed)")
	rootCmd.AddCommand(seedCmd)
}
