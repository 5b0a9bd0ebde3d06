// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/nih-reporter/internal/reporter"
	"github.com/pdiddy/nih-reporter/pkg/types"
)

// ReportFile is a saved trend analysis. It can be re-rendered later
// without querying RePORTER again.
type ReportFile struct {
	Query   ReportQuery        `yaml:"query"`
	Summary types.TrendSummary `yaml:"summary"`
	SavedAt time.Time          `yaml:"saved_at"`
}

// ReportQuery stores the request parameters in a serializable form.
type ReportQuery struct {
	FiscalYears   []int    `yaml:"fiscal_years,omitempty"`
	Agencies      []string `yaml:"agencies,omitempty"`
	ActivityCodes []string `yaml:"activity_codes,omitempty"`
	Keywords      string   `yaml:"keywords,omitempty"`
	DateFrom      string   `yaml:"date_from,omitempty"`
	DateTo        string   `yaml:"date_to,omitempty"`
	MaxProjects   int      `yaml:"max_projects"`
}

// WriteReportFile saves the request and its summary to a YAML file.
func WriteReportFile(path string, req Request, summary *types.TrendSummary) error {
	rf := ReportFile{
		Query: ReportQuery{
			FiscalYears:   req.Filters.FiscalYears,
			Agencies:      req.Filters.Agencies,
			ActivityCodes: req.Filters.ActivityCodes,
			Keywords:      req.Filters.Keywords,
			DateFrom:      req.Filters.DateFrom,
			DateTo:        req.Filters.DateTo,
			MaxProjects:   req.MaxProjects,
		},
		Summary: *summary,
		SavedAt: time.Now().UTC(),
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling report file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReportFile loads a previously saved report file from disk.
func ReadReportFile(path string) (*ReportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report file: %w", err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing report file: %w", err)
	}
	return &rf, nil
}

// ToRequest converts a stored query back into a Request.
func (q ReportQuery) ToRequest() Request {
	return Request{
		Filters: reporter.Filters{
			FiscalYears:   q.FiscalYears,
			Agencies:      q.Agencies,
			ActivityCodes: q.ActivityCodes,
			Keywords:      q.Keywords,
			DateFrom:      q.DateFrom,
			DateTo:        q.DateTo,
		},
		MaxProjects: q.MaxProjects,
	}
}

// RefreshReportFile re-runs the query stored at path against src and
// rewrites the file with the new summary. The saved query is reused as-is.
func RefreshReportFile(ctx context.Context, src Source, path string, log io.Writer) (*ReportFile, error) {
	old, err := ReadReportFile(path)
	if err != nil {
		return nil, err
	}
	req := old.Query.ToRequest()
	req.Log = log

	summary, err := Analyze(ctx, src, req)
	if err != nil {
		return nil, err
	}
	if err := WriteReportFile(path, req, summary); err != nil {
		return nil, err
	}
	return ReadReportFile(path)
}
