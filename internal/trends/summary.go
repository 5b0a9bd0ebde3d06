// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/nih-reporter/internal/reporter"
	"github.com/pdiddy/nih-reporter/pkg/types"
)

// Request describes one trend analysis.
type Request struct {
	// Filters select the projects. DateFrom and DateTo are echoed in the
	// summary's date range.
	Filters reporter.Filters

	// MaxProjects bounds the retrieval; it is clamped by EffectiveCap.
	// Analyze applies no default: zero or less retrieves nothing, so callers
	// substitute DefaultMaxProjects (or their configured value) when the
	// user named no maximum.
	MaxProjects int

	// Log receives progress lines. Nil discards them.
	Log io.Writer
}

// Analyze retrieves the projects matching req and summarizes them.
func Analyze(ctx context.Context, src Source, req Request) (*types.TrendSummary, error) {
	log := req.Log
	if log == nil {
		log = io.Discard
	}

	got, err := Retrieve(ctx, src, reporter.BuildCriteria(req.Filters), req.MaxProjects)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(log, "trends: retrieved %d projects in %d page(s) (cap %d)\n", len(got.Records), got.Pages, got.Cap)

	return Summarize(got, req.Filters.DateFrom, req.Filters.DateTo), nil
}

// Summarize assembles the summary for an already retrieved set.
// Aggregation and theme mining run concurrently over the read-only records.
func Summarize(got Retrieval, dateFrom, dateTo string) *types.TrendSummary {
	var (
		agg    Aggregates
		themes []types.Theme
		g      errgroup.Group
	)
	g.Go(func() error {
		agg = Aggregate(got.Records)
		return nil
	})
	g.Go(func() error {
		themes = MineThemes(got.Records, ThemeCount)
		return nil
	})
	g.Wait()

	return &types.TrendSummary{
		Summary: types.SummaryBlock{
			TotalProjects: agg.Count,
			TotalFunding:  agg.Funding,
			AverageAward:  agg.Average(),
			DateRange: types.DateRange{
				From: orNotSpecified(dateFrom),
				To:   orNotSpecified(dateTo),
			},
		},
		ByAgency:         nonNil(agg.ByAgency),
		ByActivityCode:   nonNil(agg.ByActivityCode),
		TopOrganizations: TopOrganizations(agg.ByOrganization, TopOrgCount),
		ByFiscalYear:     nonNil(agg.ByFiscalYear),
		CommonThemes:     themes,
		Note:             fmt.Sprintf("Analysis based on %d projects (requested max: %d)", agg.Count, got.Cap),
	}
}

func orNotSpecified(s string) string {
	if s == "" {
		return types.NotSpecified
	}
	return s
}

func nonNil(g types.Groups) types.Groups {
	if g == nil {
		return types.Groups{}
	}
	return g
}
