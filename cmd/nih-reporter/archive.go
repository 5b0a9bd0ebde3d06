// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nih-reporter/internal/archive"
	"github.com/pdiddy/nih-reporter/internal/reporter"
	"github.com/pdiddy/nih-reporter/internal/tools"
	"github.com/pdiddy/nih-reporter/internal/trends"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Snapshot matching projects into the local SQLite archive",
	Long: `Archive retrieves matching projects the same way trends does and upserts
them into a SQLite database keyed by project number and fiscal year.

Use --summarize to print a trend summary of archived projects without
querying RePORTER, optionally narrowed with --agency, --fiscal-year and
--org, and bounded with --limit.`,
	RunE: runArchive,
}

func runArchive(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	store, err := archive.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	if summarize, _ := cmd.Flags().GetBool("summarize"); summarize {
		return summarizeArchive(ctx, cmd, store)
	}

	p, err := tools.ParseTrendParams(trendArgs(cmd), cfg.Trends.MaxProjects)
	if err != nil {
		return err
	}
	req := tools.TrendRequest(p, os.Stderr)
	criteria := reporter.BuildCriteria(req.Filters)

	got, err := trends.Retrieve(ctx, newService(cfg).Source, criteria, req.MaxProjects)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Retrieved %d projects in %d page(s)\n", len(got.Records), got.Pages)

	if _, err := store.Save(ctx, criteria, got.Cap, got.Records, os.Stdout); err != nil {
		return err
	}
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%d projects archived in %s\n", n, cfg.Archive.DBPath)

	totals, err := store.AgencyTotals(ctx)
	if err != nil {
		return err
	}
	trends.FormatGroups(os.Stdout, "Archive by agency", totals)
	return nil
}

func summarizeArchive(ctx context.Context, cmd *cobra.Command, store *archive.Store) error {
	agency, _ := cmd.Flags().GetString("agency")
	year, _ := cmd.Flags().GetString("fiscal-year")
	org, _ := cmd.Flags().GetString("org")
	limit, _ := cmd.Flags().GetInt("limit")

	records, err := store.Projects(ctx, archive.QueryOptions{
		Agency:     agency,
		FiscalYear: year,
		OrgName:    org,
		Limit:      limit,
	})
	if err != nil {
		return err
	}
	summary := trends.Summarize(trends.Retrieval{Records: records, Cap: len(records)}, "", "")

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return trends.FormatJSON(os.Stdout, summary)
	}
	trends.FormatTable(os.Stdout, summary)
	return nil
}

func init() {
	addTrendFlags(archiveCmd)
	archiveCmd.Flags().Bool("summarize", false, "summarize archived projects instead of fetching")
	archiveCmd.Flags().String("agency", "", "with --summarize, only this agency code")
	archiveCmd.Flags().String("fiscal-year", "", "with --summarize, only this fiscal year")
	archiveCmd.Flags().String("org", "", "with --summarize, only this organization name")
	archiveCmd.Flags().Int("limit", 0, "with --summarize, at most this many projects, most recent first")
	archiveCmd.Flags().Bool("json", false, "with --summarize, output JSON")

	rootCmd.AddCommand(archiveCmd)
}
