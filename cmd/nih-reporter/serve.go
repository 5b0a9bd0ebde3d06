// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nih-reporter/internal/tools"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Serve exposes the RePORTER tools (search_projects, get_project_details,
search_recent_awards, search_by_investigator, get_spending_categories,
search_projects_light, analyze_research_trends) to an MCP client over
stdin/stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		reg := tools.NewRegistry(newService(cfg))
		server := tools.NewServer(cfg.Server, reg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		fmt.Fprintf(os.Stderr, "Starting %s %s MCP server (%d tools)\n", cfg.Server.Name, cfg.Server.Version, len(reg.Tools()))
		return tools.ServeStdio(ctx, server)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
