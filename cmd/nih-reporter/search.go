// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/nih-reporter/internal/reporter"
	"github.com/pdiddy/nih-reporter/internal/tools"
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords]",
	Short: "Search NIH RePORTER for projects",
	Long: `Search queries RePORTER for projects matching the given filters, newest
award notice first. Positional arguments are joined into the keyword search
over title, abstract and terms. Use --light for the minimal field set.`,
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	a := trendArgs(cmd)
	if len(args) > 0 {
		a["keywords"] = strings.Join(args, " ")
	}
	f := cmd.Flags()
	if v, _ := f.GetStringSlice("orgs"); len(v) > 0 {
		a["org_names"] = v
	}
	if v, _ := f.GetString("pi"); v != "" {
		a["pi_names"] = v
	}
	if v, _ := f.GetStringSlice("project-nums"); len(v) > 0 {
		a["project_nums"] = v
	}
	if v, _ := f.GetInt64("min-amount"); v != 0 {
		a["min_amount"] = v
	}
	if v, _ := f.GetInt64("max-amount"); v != 0 {
		a["max_amount"] = v
	}
	a["limit"], _ = f.GetInt("limit")
	a["offset"], _ = f.GetInt("offset")

	svc := newService(loadConfig())
	search := svc.SearchProjects
	if light, _ := f.GetBool("light"); light {
		search = svc.SearchProjectsLight
	}
	out, err := search(context.Background(), a)
	if err != nil {
		return err
	}
	raw := out.(json.RawMessage)

	if jsonOutput, _ := f.GetBool("json"); jsonOutput {
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err := buf.WriteTo(os.Stdout)
		return err
	}

	var resp reporter.SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("parsing search response: %w", err)
	}
	return formatSearchOutput(&resp)
}

func formatSearchOutput(resp *reporter.SearchResponse) error {
	if len(resp.Results) == 0 {
		fmt.Println("No projects found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-50s  %-30s  %12s  %s\n",
		"Rank", "Project", "Title", "Organization", "Award", "Noticed")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 135))

	for i, p := range resp.Results {
		noticed, _, _ := strings.Cut(p.AwardNoticeDate, "T")
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-50s  %-30s  %12.0f  %s\n",
			i+1, clip(p.ProjectNum, 20), clip(p.ProjectTitle, 50), clip(p.OrgKey(), 30), p.AwardAmount, noticed)
	}

	fmt.Fprintf(os.Stdout, "\n%d of %d projects\n", len(resp.Results), resp.Meta.Total)
	return nil
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	addFilterFlags(searchCmd)
	searchCmd.Flags().StringSlice("orgs", nil, "organization names")
	searchCmd.Flags().String("pi", "", "principal investigator name")
	searchCmd.Flags().StringSlice("project-nums", nil, "project numbers")
	searchCmd.Flags().Int64("min-amount", 0, "minimum award amount")
	searchCmd.Flags().Int64("max-amount", 0, "maximum award amount")
	searchCmd.Flags().Int("limit", 25, "maximum number of results (max 500)")
	searchCmd.Flags().Int("offset", 0, "offset for pagination")
	searchCmd.Flags().Bool("light", false, "request only the minimal field set")
	searchCmd.Flags().Bool("json", false, "output the raw response as JSON")

	rootCmd.AddCommand(searchCmd)
}
