// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/nih-reporter/pkg/types"
)

// FormatJSON writes the summary as indented JSON.
func FormatJSON(w io.Writer, s *types.TrendSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// FormatTable writes a human-readable rendering of the summary.
func FormatTable(w io.Writer, s *types.TrendSummary) {
	fmt.Fprintf(w, "Projects:      %d\n", s.Summary.TotalProjects)
	fmt.Fprintf(w, "Total funding: $%.2f\n", s.Summary.TotalFunding)
	fmt.Fprintf(w, "Average award: $%.2f\n", s.Summary.AverageAward)
	fmt.Fprintf(w, "Date range:    %s .. %s\n", s.Summary.DateRange.From, s.Summary.DateRange.To)

	FormatGroups(w, "By agency", s.ByAgency)
	FormatGroups(w, "By activity code", s.ByActivityCode)
	FormatGroups(w, "By fiscal year", s.ByFiscalYear)

	fmt.Fprintf(w, "\nTop organizations\n")
	fmt.Fprintf(w, "%-4s  %-45s  %8s  %16s\n", "Rank", "Organization", "Projects", "Funding")
	fmt.Fprintln(w, strings.Repeat("-", 79))
	for i, o := range s.TopOrganizations {
		fmt.Fprintf(w, "%-4d  %-45s  %8d  %16.2f\n", i+1, truncate(o.Name, 45), o.Projects, o.TotalFunding)
	}

	fmt.Fprintf(w, "\nCommon themes\n")
	for _, t := range s.CommonThemes {
		fmt.Fprintf(w, "  %-30s %d\n", t.Word, t.Frequency)
	}

	fmt.Fprintf(w, "\n%s\n", s.Note)
}

// FormatGroups writes one grouping as a titled table in its stored order.
func FormatGroups(w io.Writer, title string, g types.Groups) {
	fmt.Fprintf(w, "\n%s\n", title)
	fmt.Fprintf(w, "%-20s  %8s  %16s\n", "Key", "Projects", "Funding")
	fmt.Fprintln(w, strings.Repeat("-", 48))
	for _, s := range g {
		fmt.Fprintf(w, "%-20s  %8d  %16.2f\n", truncate(s.Key, 20), s.Count, s.Funding)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
