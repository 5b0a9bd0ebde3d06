// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools implements the RePORTER operations exposed as MCP tools
// and CLI subcommands: argument parsing, the per-tool handlers, a name
// registry and the MCP stdio server.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/pdiddy/nih-reporter/internal/reporter"
	"github.com/pdiddy/nih-reporter/internal/trends"
)

var (
	// ErrInvalidInput marks arguments rejected before any request is sent.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownTool marks a call to a tool name that is not registered.
	ErrUnknownTool = errors.New("unknown tool")
)

const dateFmt = "2006-01-02"

// Source is the RePORTER access a Service needs: typed pages for trend
// analysis and untouched response bodies for the pass-through searches.
// *reporter.Client implements it.
type Source interface {
	trends.Source
	SearchRaw(ctx context.Context, req reporter.SearchRequest) (json.RawMessage, error)
}

// Service runs tool operations against a RePORTER source.
type Service struct {
	Source Source

	// DefaultMaxProjects applies to trend analyses that omit max_projects.
	DefaultMaxProjects int

	// Now is the clock used for recent-award windows. Nil means time.Now.
	Now func() time.Time

	// Log receives progress lines. Nil discards them.
	Log io.Writer
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) log() io.Writer {
	if s.Log == nil {
		return io.Discard
	}
	return s.Log
}

// SearchProjects runs a full-field project search.
func (s *Service) SearchProjects(ctx context.Context, a Args) (any, error) {
	return s.search(ctx, a, reporter.SearchFields)
}

// SearchProjectsLight runs a project search returning minimal fields.
func (s *Service) SearchProjectsLight(ctx context.Context, a Args) (any, error) {
	return s.search(ctx, a, reporter.LightFields)
}

func (s *Service) search(ctx context.Context, a Args, fields []string) (any, error) {
	p, err := ParseSearchParams(a)
	if err != nil {
		return nil, err
	}
	return s.Source.SearchRaw(ctx, reporter.SearchRequest{
		Criteria:      reporter.BuildCriteria(p.Filters()),
		IncludeFields: fields,
		Offset:        p.Offset,
		Limit:         p.Limit,
		SortField:     reporter.SortAwardNoticeDate,
		SortOrder:     reporter.SortDesc,
	})
}

// ProjectDetails fetches one project with the extended field set.
func (s *Service) ProjectDetails(ctx context.Context, a Args) (any, error) {
	p, err := ParseDetailParams(a)
	if err != nil {
		return nil, err
	}
	var f reporter.Filters
	if p.HasProjectNum {
		f.ProjectNums = []string{p.ProjectNum}
	} else {
		f.ApplIDs = []int64{p.ApplID}
	}
	return s.Source.SearchRaw(ctx, reporter.SearchRequest{
		Criteria:      reporter.BuildCriteria(f),
		IncludeFields: reporter.DetailFields,
		Offset:        0,
		Limit:         1,
	})
}

// RecentAwards searches awards noticed within the last n days.
func (s *Service) RecentAwards(ctx context.Context, a Args) (any, error) {
	p, err := ParseRecentParams(a)
	if err != nil {
		return nil, err
	}
	to := s.now()
	from := to.AddDate(0, 0, -p.Days)
	return s.Source.SearchRaw(ctx, reporter.SearchRequest{
		Criteria: reporter.BuildCriteria(reporter.Filters{
			Agencies: p.Agencies,
			DateFrom: from.Format(dateFmt),
			DateTo:   to.Format(dateFmt),
		}),
		IncludeFields: reporter.RecentFields,
		Offset:        0,
		Limit:         p.Limit,
		SortField:     reporter.SortAwardNoticeDate,
		SortOrder:     reporter.SortDesc,
	})
}

// ByInvestigator searches projects by principal investigator name.
func (s *Service) ByInvestigator(ctx context.Context, a Args) (any, error) {
	p, err := ParseInvestigatorParams(a)
	if err != nil {
		return nil, err
	}
	return s.Source.SearchRaw(ctx, reporter.SearchRequest{
		Criteria: reporter.Criteria{
			PINames: []reporter.PIName{{LastName: p.LastName, FirstName: p.FirstName}},
		},
		IncludeFields: reporter.InvestigatorFields,
		Offset:        0,
		Limit:         p.Limit,
		SortField:     reporter.SortProjectStartDate,
		SortOrder:     reporter.SortDesc,
	})
}

// SpendingCategories returns a static reference of common NIH spending
// categories.
func (s *Service) SpendingCategories(_ context.Context, _ Args) (any, error) {
	return spendingCategories, nil
}

// AnalyzeTrends retrieves and summarizes projects matching the filters.
func (s *Service) AnalyzeTrends(ctx context.Context, a Args) (any, error) {
	def := s.DefaultMaxProjects
	if def <= 0 {
		def = trends.DefaultMaxProjects
	}
	p, err := ParseTrendParams(a, def)
	if err != nil {
		return nil, err
	}
	return trends.Analyze(ctx, s.Source, TrendRequest(p, s.log()))
}

// TrendRequest builds a trends.Request from parsed trend arguments.
func TrendRequest(p TrendParams, log io.Writer) trends.Request {
	return trends.Request{
		Filters: reporter.Filters{
			FiscalYears:   p.FiscalYears,
			Agencies:      p.Agencies,
			ActivityCodes: p.ActivityCodes,
			Keywords:      p.Keywords,
			DateFrom:      p.DateFrom,
			DateTo:        p.DateTo,
		},
		MaxProjects: p.MaxProjects,
		Log:         log,
	}
}

// SpendingCategory is one entry of the spending category reference.
type SpendingCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SpendingReference is the get_spending_categories response.
type SpendingReference struct {
	Message       string             `json:"message"`
	Note          string             `json:"note"`
	Examples      []SpendingCategory `json:"examples"`
	Documentation string             `json:"documentation"`
}

var spendingCategories = SpendingReference{
	Message: "Spending categories are used to categorize NIH research projects",
	Note:    "Use spending_categories parameter in search_projects with category IDs",
	Examples: []SpendingCategory{
		{ID: 31, Name: "Aging"},
		{ID: 40, Name: "Alzheimer's Disease"},
		{ID: 132, Name: "Cancer"},
		{ID: 224, Name: "Diabetes"},
		{ID: 284, Name: "HIV/AIDS"},
	},
	Documentation: "See Data Elements PDF for complete list of ~300 categories",
}
