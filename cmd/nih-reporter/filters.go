// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/nih-reporter/internal/tools"
)

// addFilterFlags registers the project filters shared by search, trends
// and archive.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().IntSlice("fiscal-years", nil, "fiscal years (e.g. 2024,2025)")
	cmd.Flags().StringSlice("agencies", nil, "institute/center codes (e.g. NCI,NIDA)")
	cmd.Flags().StringSlice("activity-codes", nil, "activity codes (e.g. R01,P01)")
	cmd.Flags().String("keywords", "", "keywords searched in title, abstract and terms")
	cmd.Flags().String("from", "", "award notice date range start (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "award notice date range end (YYYY-MM-DD)")
}

// addTrendFlags registers the filters plus the retrieval bound used by
// trends and archive.
func addTrendFlags(cmd *cobra.Command) {
	addFilterFlags(cmd)
	cmd.Flags().Int("max-projects", 0, "maximum projects to retrieve (default from trends.max_projects, max 2000)")
}

// trendArgs collects filter flags into tool arguments so they pass through
// the same validation as MCP calls. max_projects is set only when
// --max-projects was given.
func trendArgs(cmd *cobra.Command) tools.Args {
	a := tools.Args{}
	f := cmd.Flags()
	if v, _ := f.GetIntSlice("fiscal-years"); len(v) > 0 {
		a["fiscal_years"] = v
	}
	if v, _ := f.GetStringSlice("agencies"); len(v) > 0 {
		a["agencies"] = v
	}
	if v, _ := f.GetStringSlice("activity-codes"); len(v) > 0 {
		a["activity_codes"] = v
	}
	if v, _ := f.GetString("keywords"); v != "" {
		a["keywords"] = v
	}
	if v, _ := f.GetString("from"); v != "" {
		a["date_from"] = v
	}
	if v, _ := f.GetString("to"); v != "" {
		a["date_to"] = v
	}
	if f.Changed("max-projects") {
		v, _ := f.GetInt("max-projects")
		a["max_projects"] = v
	}
	return a
}
