// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nih-reporter CLI. It serves the
// RePORTER tools over MCP stdio and exposes the same operations as
// subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nih-reporter/internal/reporter"
	"github.com/pdiddy/nih-reporter/internal/secrets"
	"github.com/pdiddy/nih-reporter/internal/tools"
	"github.com/pdiddy/nih-reporter/internal/trends"
	"github.com/pdiddy/nih-reporter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds values loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the nih-reporter CLI.
var rootCmd = &cobra.Command{
	Use:   "nih-reporter",
	Short: "Search and summarize NIH-funded research projects",
	Long: `nih-reporter queries the NIH RePORTER project search API. It runs as an
MCP server over stdio (serve) or as a CLI: search projects, call any tool
by name, summarize funding trends, and archive results in SQLite.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nih-reporter.yaml or ~/.config/nih-reporter/nih-reporter.yaml)")
}

func initConfig() {
	// A .env file only fills variables that are not already set.
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded .env")
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nih-reporter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nih-reporter"))
		}
	}

	viper.SetDefault("reporter.base_url", reporter.DefaultBaseURL)
	viper.SetDefault("reporter.timeout", 30*time.Second)
	viper.SetDefault("reporter.user_agent", "nih-reporter/"+version)
	viper.SetDefault("reporter.max_retries", 5)
	viper.SetDefault("trends.max_projects", trends.DefaultMaxProjects)
	viper.SetDefault("archive.db_path", "archive/reporter.db")
	viper.SetDefault("server.name", "nih-reporter")
	viper.SetDefault("server.version", version)

	viper.SetEnvPrefix("NIH_REPORTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the typed configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		Reporter: types.ReporterConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("reporter.timeout"),
				UserAgent: secrets.UserAgent(viper.GetString("reporter.user_agent"), loadedSecrets),
			},
			BaseURL:    viper.GetString("reporter.base_url"),
			MaxRetries: viper.GetInt("reporter.max_retries"),
		},
		Trends: types.TrendsConfig{
			MaxProjects: viper.GetInt("trends.max_projects"),
		},
		Archive: types.ArchiveConfig{
			DBPath: viper.GetString("archive.db_path"),
		},
		Server: types.ServerInfo{
			Name:    viper.GetString("server.name"),
			Version: viper.GetString("server.version"),
		},
	}
}

// newService wires a tool service to a RePORTER client. Progress goes to
// stderr so stdout stays clean for results and the MCP protocol.
func newService(cfg types.Config) *tools.Service {
	return &tools.Service{
		Source:             reporter.NewClient(cfg.Reporter, os.Stderr),
		DefaultMaxProjects: cfg.Trends.MaxProjects,
		Log:                os.Stderr,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
