// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/nih-reporter/internal/trends"
)

// Handler runs one tool call with decoded arguments.
type Handler func(ctx context.Context, args Args) (any, error)

// Tool is a registered operation: its MCP metadata and its handler.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     Handler
}

// Registry maps tool names to tools in registration order.
type Registry struct {
	tools  []Tool
	byName map[string]int
	log    io.Writer
}

// NewRegistry registers the RePORTER tools backed by svc.
func NewRegistry(svc *Service) *Registry {
	r := &Registry{byName: make(map[string]int), log: svc.log()}

	defaultMax := svc.DefaultMaxProjects
	if defaultMax <= 0 {
		defaultMax = trends.DefaultMaxProjects
	}

	r.add(Tool{
		Name: "search_projects",
		Description: `Search for NIH-funded research projects using various criteria.

Supports filtering by fiscal years, agencies, activity codes, organization
names, principal investigator names, project numbers, award amount ranges,
award notice date ranges and keywords in title or abstract.

Returns detailed project information including funding, investigators, and descriptions.`,
		InputSchema: searchSchema(),
		Handler:     svc.SearchProjects,
	})
	r.add(Tool{
		Name: "get_project_details",
		Description: `Get detailed information about a specific NIH project by its project number or application ID.

Returns comprehensive project data: principal investigators, organization,
funding amounts and dates, abstract, public health relevance and study section.`,
		InputSchema: detailSchema(),
		Handler:     svc.ProjectDetails,
	})
	r.add(Tool{
		Name: "search_recent_awards",
		Description: `Search for recently awarded NIH projects within a specified number of days.

Useful for finding the latest funded projects across all NIH institutes.`,
		InputSchema: recentSchema(),
		Handler:     svc.RecentAwards,
	})
	r.add(Tool{
		Name: "search_by_investigator",
		Description: `Search for all projects by a specific principal investigator.

Returns all NIH-funded projects where the person is listed as a PI.`,
		InputSchema: investigatorSchema(),
		Handler:     svc.ByInvestigator,
	})
	r.add(Tool{
		Name: "get_spending_categories",
		Description: `Get available NIH spending categories for categorizing research projects.

Returns example spending category codes and names used by NIH.`,
		InputSchema: object(map[string]any{}),
		Handler:     svc.SpendingCategories,
	})
	r.add(Tool{
		Name: "search_projects_light",
		Description: `Lightweight version of search_projects that returns minimal fields.

Use this when you need to process many results or only need basic project information.
Returns only: ProjectNum, ProjectTitle, AwardAmount, AwardNoticeDate, Organization, PrincipalInvestigators.

Same search criteria as search_projects.`,
		InputSchema: searchSchema(),
		Handler:     svc.SearchProjectsLight,
	})
	r.add(Tool{
		Name: "analyze_research_trends",
		Description: `Analyze trends in NIH-funded research by fetching and summarizing data server-side.

Fetches up to max_projects matching projects (at most 2000) and returns
totals, distribution by agency and activity code, top organizations by
funding, funding by fiscal year and common title themes instead of raw records.`,
		InputSchema: trendSchema(defaultMax),
		Handler:     svc.AnalyzeTrends,
	})
	return r
}

func (r *Registry) add(t Tool) {
	r.byName[t.Name] = len(r.tools)
	r.tools = append(r.tools, t)
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	return r.tools
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Tool{}, false
	}
	return r.tools[i], true
}

// Call decodes raw arguments and runs the named tool. Each call is logged
// with a fresh call ID.
func (r *Registry) Call(ctx context.Context, name string, raw json.RawMessage) (any, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	args, err := DecodeArgs(raw)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	start := time.Now()
	fmt.Fprintf(r.log, "[%s] %s: started\n", id, name)

	out, err := t.Handler(ctx, args)
	if err != nil {
		fmt.Fprintf(r.log, "[%s] %s: failed after %v: %v\n", id, name, time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}
	fmt.Fprintf(r.log, "[%s] %s: done in %v\n", id, name, time.Since(start).Round(time.Millisecond))
	return out, nil
}

// Render formats a tool outcome as the text returned to callers: indented
// JSON on success, "Error: <message>" on failure.
func Render(out any, err error) (text string, isError bool) {
	if err != nil {
		return "Error: " + err.Error(), true
	}
	data, mErr := json.MarshalIndent(out, "", "  ")
	if mErr != nil {
		return "Error: " + mErr.Error(), true
	}
	return string(data), false
}
