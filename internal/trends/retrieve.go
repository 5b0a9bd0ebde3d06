// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package trends turns a bounded set of RePORTER projects into a compact
// funding summary: grouped counts and totals, a ranked organization list
// and recurring title vocabulary.
package trends

import (
	"context"
	"fmt"

	"github.com/pdiddy/nih-reporter/internal/reporter"
	"github.com/pdiddy/nih-reporter/pkg/types"
)

const (
	// PageSize is the number of records requested per page.
	PageSize = reporter.MaxPageSize

	// MaxRecords is the hard ceiling on records retrieved by one analysis.
	MaxRecords = 2000

	// DefaultMaxProjects applies when the caller does not name a maximum.
	DefaultMaxProjects = 500
)

// Source fetches one page of projects. *reporter.Client implements it.
type Source interface {
	SearchProjects(ctx context.Context, req reporter.SearchRequest) (*reporter.SearchResponse, error)
}

// Retrieval is the outcome of a paginated fetch.
type Retrieval struct {
	// Records holds the projects in the order pages were received.
	Records []types.Project

	// Cap is the effective maximum that bounded the fetch.
	Cap int

	// Pages counts the page requests issued.
	Pages int
}

// EffectiveCap clamps a requested maximum to [0, MaxRecords].
func EffectiveCap(requested int) int {
	if requested <= 0 {
		return 0
	}
	return min(requested, MaxRecords)
}

// Retrieve pages through RePORTER until the effective cap is reached or the
// source runs out of records. An empty page stops immediately; a short page
// is kept and then stops. Any page failure aborts the whole retrieval.
//
// The context is checked before each page. A page already in flight runs to
// completion under the HTTP client timeout.
func Retrieve(ctx context.Context, src Source, criteria reporter.Criteria, maxProjects int) (Retrieval, error) {
	out := Retrieval{Cap: EffectiveCap(maxProjects)}

	offset := 0
	exhausted := false
	for !exhausted && offset < out.Cap {
		if err := ctx.Err(); err != nil {
			return Retrieval{}, err
		}

		limit := min(PageSize, out.Cap-offset)
		resp, err := src.SearchProjects(context.WithoutCancel(ctx), reporter.SearchRequest{
			Criteria:      criteria,
			IncludeFields: reporter.TrendFields,
			Offset:        offset,
			Limit:         limit,
			SortField:     reporter.SortAwardNoticeDate,
			SortOrder:     reporter.SortDesc,
		})
		out.Pages++
		if err != nil {
			return Retrieval{}, fmt.Errorf("fetching page at offset %d: %w", offset, err)
		}

		page := resp.Results
		if len(page) > limit {
			page = page[:limit]
		}
		if len(page) == 0 {
			exhausted = true
			continue
		}
		out.Records = append(out.Records, page...)
		if len(page) < limit {
			exhausted = true
		}
		offset += PageSize
	}

	return out, nil
}
