// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nih-reporter/internal/tools"
	"github.com/pdiddy/nih-reporter/internal/trends"
	"github.com/pdiddy/nih-reporter/pkg/types"
)

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Summarize funding trends for matching projects",
	Long: `Trends retrieves up to --max-projects matching projects (at most 2000) and
prints totals, distribution by agency, activity code and fiscal year, the
top organizations by funding and common title themes.

Use --save to keep the summary and its query in a YAML file and --load to
print a saved summary without querying RePORTER. Add --refresh to --load to
re-run the saved query and update the file.`,
	RunE: runTrends,
}

func runTrends(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	loadPath, _ := cmd.Flags().GetString("load")
	savePath, _ := cmd.Flags().GetString("save")
	refresh, _ := cmd.Flags().GetBool("refresh")

	var summary *types.TrendSummary
	if refresh {
		if loadPath == "" {
			return fmt.Errorf("--refresh requires --load")
		}
		rf, err := trends.RefreshReportFile(context.Background(), newService(loadConfig()).Source, loadPath, os.Stderr)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Refreshed %s\n", loadPath)
		summary = &rf.Summary
	} else if loadPath != "" {
		rf, err := trends.ReadReportFile(loadPath)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Loaded report saved %s\n", rf.SavedAt.Format("2006-01-02 15:04"))
		summary = &rf.Summary
	} else {
		cfg := loadConfig()
		p, err := tools.ParseTrendParams(trendArgs(cmd), cfg.Trends.MaxProjects)
		if err != nil {
			return err
		}
		req := tools.TrendRequest(p, os.Stderr)

		client := newService(cfg).Source
		summary, err = trends.Analyze(context.Background(), client, req)
		if err != nil {
			return err
		}

		if savePath != "" {
			if err := trends.WriteReportFile(savePath, req, summary); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Saved report to %s\n", savePath)
		}
	}

	if jsonOutput {
		return trends.FormatJSON(os.Stdout, summary)
	}
	trends.FormatTable(os.Stdout, summary)
	return nil
}

func init() {
	addTrendFlags(trendsCmd)
	trendsCmd.Flags().Bool("json", false, "output the summary as JSON")
	trendsCmd.Flags().String("save", "", "save the summary and query to a YAML file")
	trendsCmd.Flags().String("load", "", "print a saved summary instead of querying")
	trendsCmd.Flags().Bool("refresh", false, "with --load, re-run the saved query and update the file")
	trendsCmd.MarkFlagsMutuallyExclusive("save", "load")

	rootCmd.AddCommand(trendsCmd)
}
