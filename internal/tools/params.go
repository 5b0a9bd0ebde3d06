// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pdiddy/nih-reporter/internal/reporter"
)

// Defaults and limits for the pass-through searches.
const (
	defaultSearchLimit       = 25
	defaultRecentDays        = 7
	defaultRecentLimit       = 50
	defaultInvestigatorLimit = 25
)

var validate = newValidator()

// newValidator reports fields by their argument names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// SearchParams are the arguments of search_projects and search_projects_light.
type SearchParams struct {
	FiscalYears   []int    `json:"fiscal_years"`
	Agencies      []string `json:"agencies"`
	ActivityCodes []string `json:"activity_codes"`
	OrgNames      []string `json:"org_names"`
	PIName        string   `json:"pi_names"`
	ProjectNums   []string `json:"project_nums"`
	Keywords      string   `json:"keywords"`
	MinAmount     int64    `json:"min_amount" validate:"gte=0"`
	MaxAmount     int64    `json:"max_amount" validate:"gte=0"`
	DateFrom      string   `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo        string   `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	Limit         int      `json:"limit" validate:"gte=0"`
	Offset        int      `json:"offset" validate:"gte=0"`
}

// Filters returns the criteria filters for the search.
func (p SearchParams) Filters() reporter.Filters {
	return reporter.Filters{
		FiscalYears:   p.FiscalYears,
		Agencies:      p.Agencies,
		ActivityCodes: p.ActivityCodes,
		OrgNames:      p.OrgNames,
		PIName:        p.PIName,
		ProjectNums:   p.ProjectNums,
		Keywords:      p.Keywords,
		MinAmount:     p.MinAmount,
		MaxAmount:     p.MaxAmount,
		DateFrom:      p.DateFrom,
		DateTo:        p.DateTo,
	}
}

// DetailParams select one project by number or application ID.
type DetailParams struct {
	ProjectNum    string
	ApplID        int64
	HasProjectNum bool
	HasApplID     bool
}

// RecentParams are the arguments of search_recent_awards.
type RecentParams struct {
	Days     int      `json:"days" validate:"gte=0"`
	Agencies []string `json:"agencies"`
	Limit    int      `json:"limit" validate:"gte=0"`
}

// InvestigatorParams are the arguments of search_by_investigator.
type InvestigatorParams struct {
	LastName  string `json:"last_name" validate:"required"`
	FirstName string `json:"first_name"`
	Limit     int    `json:"limit" validate:"gte=0"`
}

// TrendParams are the arguments of analyze_research_trends. Filter values
// are passed through unchecked.
type TrendParams struct {
	FiscalYears   []int    `json:"fiscal_years"`
	Agencies      []string `json:"agencies"`
	ActivityCodes []string `json:"activity_codes"`
	Keywords      string   `json:"keywords"`
	DateFrom      string   `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo        string   `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	MaxProjects   int      `json:"max_projects"`
}

// ParseSearchParams reads and validates search arguments.
func ParseSearchParams(a Args) (SearchParams, error) {
	var p SearchParams
	r := argReader{args: a}
	p.FiscalYears = r.intList("fiscal_years")
	p.Agencies = r.stringList("agencies")
	p.ActivityCodes = r.stringList("activity_codes")
	p.OrgNames = r.stringList("org_names")
	p.PIName = r.string("pi_names")
	p.ProjectNums = r.stringList("project_nums")
	p.Keywords = r.string("keywords")
	p.MinAmount = r.int64("min_amount")
	p.MaxAmount = r.int64("max_amount")
	p.DateFrom = r.string("date_from")
	p.DateTo = r.string("date_to")
	p.Limit = r.int("limit", defaultSearchLimit)
	p.Offset = r.int("offset", 0)
	if err := r.check(p); err != nil {
		return SearchParams{}, err
	}
	p.Limit = min(p.Limit, reporter.MaxPageSize)
	return p, nil
}

// ParseDetailParams reads project detail arguments. Exactly one of
// project_num and appl_id must be given.
func ParseDetailParams(a Args) (DetailParams, error) {
	r := argReader{args: a}
	p := DetailParams{
		HasProjectNum: a.Has("project_num"),
		HasApplID:     a.Has("appl_id"),
	}
	p.ProjectNum = r.string("project_num")
	p.ApplID = r.int64("appl_id")
	if r.err != nil {
		return DetailParams{}, r.err
	}

	switch {
	case p.HasProjectNum && p.HasApplID:
		return DetailParams{}, fmt.Errorf("%w: cannot provide both project_num and appl_id, please provide only one", ErrInvalidInput)
	case !p.HasProjectNum && !p.HasApplID:
		return DetailParams{}, fmt.Errorf("%w: either project_num or appl_id must be provided", ErrInvalidInput)
	}
	return p, nil
}

// ParseRecentParams reads and validates recent-award arguments.
func ParseRecentParams(a Args) (RecentParams, error) {
	r := argReader{args: a}
	p := RecentParams{
		Days:     r.int("days", defaultRecentDays),
		Agencies: r.stringList("agencies"),
		Limit:    r.int("limit", defaultRecentLimit),
	}
	if err := r.check(p); err != nil {
		return RecentParams{}, err
	}
	return p, nil
}

// ParseInvestigatorParams reads and validates investigator arguments.
func ParseInvestigatorParams(a Args) (InvestigatorParams, error) {
	r := argReader{args: a}
	p := InvestigatorParams{
		LastName:  r.string("last_name"),
		FirstName: r.string("first_name"),
		Limit:     r.int("limit", defaultInvestigatorLimit),
	}
	if err := r.check(p); err != nil {
		return InvestigatorParams{}, err
	}
	return p, nil
}

// ParseTrendParams reads trend analysis arguments. max_projects defaults
// to defaultMax when absent.
func ParseTrendParams(a Args, defaultMax int) (TrendParams, error) {
	r := argReader{args: a}
	p := TrendParams{
		FiscalYears:   r.intList("fiscal_years"),
		Agencies:      r.stringList("agencies"),
		ActivityCodes: r.stringList("activity_codes"),
		Keywords:      r.string("keywords"),
		DateFrom:      r.string("date_from"),
		DateTo:        r.string("date_to"),
		MaxProjects:   r.int("max_projects", defaultMax),
	}
	if err := r.check(p); err != nil {
		return TrendParams{}, err
	}
	return p, nil
}

// argReader collects the first coercion error so parsers read straight
// through their fields.
type argReader struct {
	args Args
	err  error
}

func (r *argReader) keep(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *argReader) string(key string) string {
	s, err := r.args.String(key)
	r.keep(err)
	return s
}

func (r *argReader) int(key string, def int) int {
	n, err := r.args.Int(key, def)
	r.keep(err)
	return n
}

func (r *argReader) int64(key string) int64 {
	n, err := r.args.Int64(key)
	r.keep(err)
	return n
}

func (r *argReader) intList(key string) []int {
	v, err := r.args.Ints(key)
	r.keep(err)
	return v
}

func (r *argReader) stringList(key string) []string {
	v, err := r.args.Strings(key)
	r.keep(err)
	return v
}

// check returns the first coercion error, then runs struct validation.
func (r *argReader) check(v any) error {
	if r.err != nil {
		return r.err
	}
	if err := validate.Struct(v); err != nil {
		return validationError(err)
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		ve := verrs[0]
		return fmt.Errorf("%w: %s failed %s", ErrInvalidInput, ve.Field(), ve.Tag())
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}
