// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/nih-reporter/internal/reporter"
	"github.com/pdiddy/nih-reporter/pkg/types"
)

// --- fake source ---

// fakeSource serves pages from a scripted list, or from a pool of
// available records sliced by offset and limit when pages is nil.
type fakeSource struct {
	mu        sync.Mutex
	pages     [][]types.Project
	available int
	failAt    int // 1-based request number that fails; 0 never fails
	onCall    func(n int)
	requests  []reporter.SearchRequest
	ctxErrs   []error
}

func (f *fakeSource) SearchProjects(ctx context.Context, req reporter.SearchRequest) (*reporter.SearchResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	n := len(f.requests)
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall(n)
	}
	f.ctxErrs = append(f.ctxErrs, ctx.Err())

	if f.failAt == n {
		return nil, fmt.Errorf("%w: HTTP 500", reporter.ErrAPI)
	}

	if f.pages != nil {
		if n > len(f.pages) {
			return &reporter.SearchResponse{}, nil
		}
		return &reporter.SearchResponse{Results: f.pages[n-1]}, nil
	}

	end := min(req.Offset+req.Limit, f.available)
	var out []types.Project
	for i := req.Offset; i < end; i++ {
		out = append(out, project(fmt.Sprintf("Project %d", i), 1000, "CA", "R01", "UNIV", 2024))
	}
	return &reporter.SearchResponse{Meta: reporter.Meta{Total: f.available}, Results: out}, nil
}

func (f *fakeSource) limits() []int {
	var out []int
	for _, r := range f.requests {
		out = append(out, r.Limit)
	}
	return out
}

func project(title string, amount float64, agency, activity, org string, year int) types.Project {
	p := types.Project{ProjectTitle: title, AwardAmount: amount, FiscalYear: types.Year(year)}
	if agency != "" {
		p.AgencyIcAdmin = &types.Agency{Code: agency}
	}
	if activity != "" {
		p.ActivityCode = &activity
	}
	if org != "" {
		p.Organization = &types.Organization{OrgName: org}
	}
	return p
}

func fullPage(n int) []types.Project {
	out := make([]types.Project, n)
	for i := range out {
		out[i] = project("Full Page Record", 10, "CA", "R01", "UNIV", 2024)
	}
	return out
}

// --- Retrieve ---

func TestEffectiveCap(t *testing.T) {
	tests := []struct {
		requested, want int
	}{
		{-5, 0},
		{0, 0},
		{1, 1},
		{500, 500},
		{2000, 2000},
		{2001, 2000},
		{100000, 2000},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.requested), func(t *testing.T) {
			assert.Equal(t, tt.want, EffectiveCap(tt.requested))
		})
	}
}

func TestRetrieve_Pagination(t *testing.T) {
	tests := []struct {
		name        string
		available   int
		maxProjects int
		wantRecords int
		wantLimits  []int
	}{
		{"small max is one short request", 10000, 50, 50, []int{50}},
		{"exact page", 10000, 500, 500, []int{500}},
		{"last page trimmed to cap", 10000, 1200, 1200, []int{500, 500, 200}},
		{"hard ceiling", 10000, 5000, 2000, []int{500, 500, 500, 500}},
		{"short page stops", 700, 2000, 700, []int{500, 500}},
		{"exhausted on page boundary", 500, 2000, 500, []int{500, 500}},
		{"no records", 0, 500, 0, []int{500}},
		{"zero max requests nothing", 10000, 0, 0, nil},
		{"negative max requests nothing", 10000, -1, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{available: tt.available}
			got, err := Retrieve(context.Background(), src, reporter.Criteria{}, tt.maxProjects)
			require.NoError(t, err)
			assert.Len(t, got.Records, tt.wantRecords)
			assert.Equal(t, tt.wantLimits, src.limits())
			assert.Equal(t, len(tt.wantLimits), got.Pages)
			assert.LessOrEqual(t, len(got.Records), got.Cap)
		})
	}
}

func TestRetrieve_OversizedPagesTruncatedToCap(t *testing.T) {
	// The source ignores the requested limit and always sends 500 records.
	src := &fakeSource{pages: [][]types.Project{fullPage(500), fullPage(500)}}
	got, err := Retrieve(context.Background(), src, reporter.Criteria{}, 50)
	require.NoError(t, err)
	assert.Len(t, got.Records, 50)
	assert.Len(t, src.requests, 1)
	assert.Equal(t, 50, src.requests[0].Limit)
}

func TestRetrieve_EmptySecondPageStops(t *testing.T) {
	src := &fakeSource{pages: [][]types.Project{fullPage(500), {}, fullPage(500)}}
	got, err := Retrieve(context.Background(), src, reporter.Criteria{}, 2000)
	require.NoError(t, err)
	assert.Len(t, got.Records, 500)
	assert.Len(t, src.requests, 2)
}

func TestRetrieve_RequestShape(t *testing.T) {
	src := &fakeSource{available: 1200}
	criteria := reporter.BuildCriteria(reporter.Filters{Agencies: []string{"NCI"}})
	_, err := Retrieve(context.Background(), src, criteria, 1200)
	require.NoError(t, err)

	require.Len(t, src.requests, 3)
	for i, r := range src.requests {
		assert.Equal(t, i*PageSize, r.Offset)
		assert.Equal(t, reporter.TrendFields, r.IncludeFields)
		assert.Equal(t, "award_notice_date", r.SortField)
		assert.Equal(t, "desc", r.SortOrder)
		assert.Equal(t, []string{"NCI"}, r.Criteria.Agencies)
	}
}

func TestRetrieve_PageFailureAborts(t *testing.T) {
	src := &fakeSource{available: 2000, failAt: 2}
	got, err := Retrieve(context.Background(), src, reporter.Criteria{}, 2000)
	require.Error(t, err)
	assert.True(t, errors.Is(err, reporter.ErrAPI))
	assert.Contains(t, err.Error(), "offset 500")
	assert.Empty(t, got.Records)
	assert.Len(t, src.requests, 2)
}

func TestRetrieve_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{available: 2000}
	_, err := Retrieve(ctx, src, reporter.Criteria{}, 2000)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, src.requests)
}

func TestRetrieve_CancelledBetweenPages(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &fakeSource{available: 2000}
	src.onCall = func(n int) {
		if n == 1 {
			cancel()
		}
	}

	_, err := Retrieve(ctx, src, reporter.Criteria{}, 2000)
	require.ErrorIs(t, err, context.Canceled)
	assert.Len(t, src.requests, 1)
	// The in-flight page does not observe the cancellation.
	assert.NoError(t, src.ctxErrs[0])
}

// --- Aggregate ---

func scenario() []types.Project {
	return []types.Project{
		project("Cancer Imaging Study", 100000, "NCI", "R01", "UNIV A", 2024),
		project("Cancer Prevention Trial", 200000, "NCI", "U01", "UNIV B", 2023),
		project("Diabetes Genomics", 50000, "NIDDK", "R01", "UNIV A", 2024),
	}
}

func TestAggregate_Scenario(t *testing.T) {
	agg := Aggregate(scenario())

	assert.Equal(t, 3, agg.Count)
	assert.Equal(t, 350000.0, agg.Funding)
	assert.InDelta(t, 116666.67, agg.Average(), 0.01)

	assert.Equal(t, types.Groups{
		{Key: "NCI", Count: 2, Funding: 300000},
		{Key: "NIDDK", Count: 1, Funding: 50000},
	}, agg.ByAgency)
	assert.Equal(t, types.Groups{
		{Key: "U01", Count: 1, Funding: 200000},
		{Key: "R01", Count: 2, Funding: 150000},
	}, agg.ByActivityCode)
	assert.Equal(t, types.Groups{
		{Key: "UNIV A", Count: 2, Funding: 150000},
		{Key: "UNIV B", Count: 1, Funding: 200000},
	}, agg.ByOrganization)
	assert.Equal(t, types.Groups{
		{Key: "2023", Count: 1, Funding: 200000},
		{Key: "2024", Count: 2, Funding: 150000},
	}, agg.ByFiscalYear)
}

func TestAggregate_Reconciles(t *testing.T) {
	records := append(scenario(),
		project("", 0, "", "", "", 2022),
		project("Untitled", 75000.5, "CA", "", "UNIV C", 2021),
	)
	records = append(records, types.Project{AwardAmount: 1234})

	agg := Aggregate(records)
	for name, g := range map[string]types.Groups{
		"agency":   agg.ByAgency,
		"activity": agg.ByActivityCode,
		"org":      agg.ByOrganization,
		"year":     agg.ByFiscalYear,
	} {
		count, funding := g.Total()
		assert.Equal(t, agg.Count, count, name)
		assert.InDelta(t, agg.Funding, funding, 1e-6, name)
	}
	assert.Equal(t, len(records), agg.Count)
}

func TestAggregate_UnknownKeys(t *testing.T) {
	empty := ""
	records := []types.Project{
		{AwardAmount: 10},
		{AwardAmount: 20, AgencyIcAdmin: &types.Agency{}, Organization: &types.Organization{}, ActivityCode: &empty},
	}
	agg := Aggregate(records)

	assert.Equal(t, types.Groups{{Key: types.Unknown, Count: 2, Funding: 30}}, agg.ByAgency)
	assert.Equal(t, types.Groups{{Key: types.Unknown, Count: 2, Funding: 30}}, agg.ByOrganization)
	assert.Equal(t, types.Groups{{Key: types.Unknown, Count: 2, Funding: 30}}, agg.ByFiscalYear)
	// An explicit empty activity code is its own key.
	assert.Equal(t, types.Groups{
		{Key: "", Count: 1, Funding: 20},
		{Key: types.Unknown, Count: 1, Funding: 10},
	}, agg.ByActivityCode)
}

func TestAggregate_FiscalYearOrder(t *testing.T) {
	records := []types.Project{
		{FiscalYear: types.Year(2024)},
		{FiscalYear: types.FiscalYear{Value: "FY-X", Set: true}},
		{},
		{FiscalYear: types.Year(999)},
		{FiscalYear: types.Year(2020)},
	}
	agg := Aggregate(records)

	var keys []string
	for _, g := range agg.ByFiscalYear {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"999", "2020", "2024", "FY-X", "Unknown"}, keys)
}

func TestAggregate_FundingTiesKeepFirstSeen(t *testing.T) {
	records := []types.Project{
		project("", 100, "B", "", "", 2024),
		project("", 100, "A", "", "", 2024),
		project("", 300, "C", "", "", 2024),
	}
	agg := Aggregate(records)

	var keys []string
	for _, g := range agg.ByAgency {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"C", "B", "A"}, keys)
}

func TestAggregate_Empty(t *testing.T) {
	agg := Aggregate(nil)
	assert.Zero(t, agg.Count)
	assert.Zero(t, agg.Funding)
	assert.Zero(t, agg.Average())
	assert.Empty(t, agg.ByAgency)
}

// --- TopOrganizations ---

func TestTopOrganizations(t *testing.T) {
	var groups types.Groups
	for i := range 15 {
		groups = append(groups, types.GroupStat{Key: fmt.Sprintf("ORG %02d", i), Count: 1, Funding: float64(i % 5)})
	}

	got := TopOrganizations(groups, TopOrgCount)
	require.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].TotalFunding, got[i].TotalFunding)
	}
	// Funding 4 is held by ORG 04, 09, 14 in first-seen order.
	assert.Equal(t, "ORG 04", got[0].Name)
	assert.Equal(t, "ORG 09", got[1].Name)
	assert.Equal(t, "ORG 14", got[2].Name)
}

func TestTopOrganizations_FewerThanK(t *testing.T) {
	got := TopOrganizations(types.Groups{
		{Key: "A", Count: 2, Funding: 5},
		{Key: "B", Count: 1, Funding: 9},
	}, TopOrgCount)
	assert.Equal(t, []types.OrgRank{
		{Name: "B", Projects: 1, TotalFunding: 9},
		{Name: "A", Projects: 2, TotalFunding: 5},
	}, got)

	assert.Empty(t, TopOrganizations(nil, TopOrgCount))
}

// --- MineThemes ---

func TestTitleTokens(t *testing.T) {
	tests := []struct {
		title string
		want  []string
	}{
		{"Cancer Imaging Study", []string{"cancer", "imaging", "study"}},
		{"The Role of T-Cells in HIV/AIDS", []string{"role", "tcells", "hivaids"}},
		{"A Study, with Mice!", []string{"study", "mice"}},
		{"Could these be from THAT", []string{"these", "that"}},
		{"  Naïve   Café  élan ", []string{"naïve", "café", "élan"}},
		{"COVID-19 (SARS-CoV-2) 2024", []string{"covid19", "sarscov2", "2024"}},
		{"abc abcd", []string{"abcd"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, titleTokens(tt.title))
		})
	}
}

func TestMineThemes_Scenario(t *testing.T) {
	themes := MineThemes(scenario(), ThemeCount)
	require.NotEmpty(t, themes)
	assert.Equal(t, types.Theme{Word: "cancer", Frequency: 2}, themes[0])
	for _, th := range themes[1:] {
		assert.Equal(t, 1, th.Frequency)
	}
	// Single occurrences keep first-occurrence order.
	var words []string
	for _, th := range themes {
		words = append(words, th.Word)
	}
	assert.Equal(t, []string{"cancer", "imaging", "study", "prevention", "trial", "diabetes", "genomics"}, words)
}

func TestMineThemes_TopTwentyFiltered(t *testing.T) {
	var records []types.Project
	for i := range 30 {
		records = append(records, types.Project{
			ProjectTitle: fmt.Sprintf("the and of word%02d with from", i),
		})
	}
	records = append(records, types.Project{ProjectTitle: "word29 word29 word05"})

	themes := MineThemes(records, ThemeCount)
	require.Len(t, themes, 20)
	assert.Equal(t, "word29", themes[0].Word)
	assert.Equal(t, 3, themes[0].Frequency)
	assert.Equal(t, "word05", themes[1].Word)
	for i, th := range themes {
		assert.Greater(t, len([]rune(th.Word)), 3)
		_, stop := stopWords[th.Word]
		assert.False(t, stop, th.Word)
		if i > 0 {
			assert.GreaterOrEqual(t, themes[i-1].Frequency, th.Frequency)
		}
	}
}

func TestMineThemes_CountsAllOccurrences(t *testing.T) {
	records := []types.Project{
		{ProjectTitle: "Brain brain BRAIN imaging"},
		{ProjectTitle: "brain"},
	}
	themes := MineThemes(records, ThemeCount)
	total := 0
	for _, th := range themes {
		total += th.Frequency
	}
	assert.Equal(t, 5, total)
	assert.Equal(t, types.Theme{Word: "brain", Frequency: 4}, themes[0])
}

// --- Analyze ---

func TestAnalyze_Scenario(t *testing.T) {
	src := &fakeSource{pages: [][]types.Project{scenario()}}
	got, err := Analyze(context.Background(), src, Request{
		Filters:     reporter.Filters{Agencies: []string{"NCI", "NIDDK"}, DateFrom: "2024-01-01"},
		MaxProjects: 500,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Summary.TotalProjects)
	assert.Equal(t, 350000.0, got.Summary.TotalFunding)
	assert.InDelta(t, 116666.67, got.Summary.AverageAward, 0.01)
	assert.Equal(t, types.DateRange{From: "2024-01-01", To: types.NotSpecified}, got.Summary.DateRange)
	assert.Equal(t, "NCI", got.ByAgency[0].Key)
	require.Len(t, got.TopOrganizations, 2)
	assert.Equal(t, "UNIV B", got.TopOrganizations[0].Name)
	assert.Equal(t, "cancer", got.CommonThemes[0].Word)
	assert.Equal(t, "Analysis based on 3 projects (requested max: 500)", got.Note)

	require.Len(t, src.requests, 1)
	assert.Equal(t, []string{"NCI", "NIDDK"}, src.requests[0].Criteria.Agencies)
	assert.Equal(t, "2024-01-01", src.requests[0].Criteria.AwardNoticeDate.FromDate)
}

func TestAnalyze_NoteUsesEffectiveCap(t *testing.T) {
	src := &fakeSource{available: 3}
	got, err := Analyze(context.Background(), src, Request{MaxProjects: 9000})
	require.NoError(t, err)
	assert.Equal(t, "Analysis based on 3 projects (requested max: 2000)", got.Note)
}

func TestAnalyze_ZeroMaxProjectsFetchesNothing(t *testing.T) {
	src := &fakeSource{available: 10}
	got, err := Analyze(context.Background(), src, Request{})
	require.NoError(t, err)

	assert.Empty(t, src.requests)
	assert.Zero(t, got.Summary.TotalProjects)
	assert.Equal(t, "Analysis based on 0 projects (requested max: 0)", got.Note)
}

func TestAnalyze_EmptyResult(t *testing.T) {
	src := &fakeSource{available: 0}
	got, err := Analyze(context.Background(), src, Request{MaxProjects: 100})
	require.NoError(t, err)

	assert.Zero(t, got.Summary.TotalProjects)
	assert.Zero(t, got.Summary.TotalFunding)
	assert.Zero(t, got.Summary.AverageAward)
	assert.False(t, math.IsNaN(got.Summary.AverageAward))
	assert.Empty(t, got.ByAgency)
	assert.Empty(t, got.TopOrganizations)
	assert.Empty(t, got.CommonThemes)
	assert.Equal(t, types.DateRange{From: types.NotSpecified, To: types.NotSpecified}, got.Summary.DateRange)
}

func TestAnalyze_RetrievalFailure(t *testing.T) {
	src := &fakeSource{available: 1000, failAt: 1}
	got, err := Analyze(context.Background(), src, Request{MaxProjects: 100})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, reporter.ErrAPI))
}
