package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hairizuanbinnoorazman/bizadmin/auth"
	"github.com/hairizuanbinnoorazman/bizadmin/projectstore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const configFileName = ".bizadmin"

var cfg *viper.Viper

func initConfig() error {
	cfg = viper.New()
	cfg.SetConfigName(configFileName)
	cfg.SetConfigType("yaml")

	home, err := os.UserHomeDir()
	if err == nil {
		cfg.AddConfigPath(home)
	}

	cfg.SetDefault("url", "http://localhost:8080")
	cfg.SetDefault("base_path", projectstore.DefaultBasePath)
	cfg.SetDefault("token", "")
	cfg.SetDefault("role", "")

	cfg.SetEnvPrefix("BIZADMIN")
	cfg.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// CLI flags take highest priority
	if flagURL != "" {
		cfg.Set("url", flagURL)
	}
	if flagBasePath != "" {
		cfg.Set("base_path", flagBasePath)
	}
	if flagToken != "" {
		cfg.Set("token", flagToken)
	}

	return nil
}

func getConfigURL() string {
	return strings.TrimRight(cfg.GetString("url"), "/")
}

func getConfigBasePath() string {
	return "/" + strings.Trim(cfg.GetString("base_path"), "/")
}

func getCredentials() auth.Static {
	creds := auth.Static{AccessToken: cfg.GetString("token")}
	if role, err := auth.ParseRole(cfg.GetString("role")); err == nil {
		creds.UserRole = role
	}
	return creds
}

func maskToken(token string) string {
	switch {
	case token == "":
		return "(not set)"
	case len(token) > 8:
		return token[:4] + "..." + token[len(token)-4:]
	}
	return "****"
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a config file template at ~/.bizadmin.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get home directory: %w", err)
			}

			configPath := filepath.Join(home, configFileName+".yaml")

			if _, err := os.Stat(configPath); err == nil {
				printMessage("Config file already exists at " + configPath)
				return nil
			}

			template := `# bizadmin CLI configuration
url: http://localhost:8080
base_path: /api/projects
token: ""
# admin, manager or employee; used to refuse writes locally
role: ""
`
			if err := os.WriteFile(configPath, []byte(template), 0600); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			printMessage("Config file created at " + configPath)
			return nil
		},
	}
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := getCredentials()
			role := string(creds.UserRole)
			if role == "" {
				role = "(not set)"
			}

			printMessage(fmt.Sprintf("URL:       %s", getConfigURL()))
			printMessage(fmt.Sprintf("Base path: %s", getConfigBasePath()))
			printMessage(fmt.Sprintf("Token:     %s", maskToken(creds.AccessToken)))
			printMessage(fmt.Sprintf("Role:      %s", role))

			if cfgFile := cfg.ConfigFileUsed(); cfgFile != "" {
				printMessage(fmt.Sprintf("Config file: %s", cfgFile))
			} else {
				printMessage("Config file: (none)")
			}

			return nil
		},
	}
}
