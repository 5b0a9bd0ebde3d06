// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for nih-reporter.
// Project mirrors one record of the RePORTER projects/search response;
// TrendSummary is the output of the trend-aggregation engine.
package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"go.yaml.in/yaml/v3"
)

// Unknown is the grouping key used when a categorical field is absent.
const Unknown = "Unknown"

// Project is one NIH-funded project (award) as returned by RePORTER.
// Only fields named in a request's include_fields are populated.
type Project struct {
	// ApplID is the application identifier.
	ApplID int64 `json:"appl_id,omitempty" yaml:"appl_id,omitempty"`

	// ProjectNum is the full project number (e.g. "5R01CA123456-05").
	ProjectNum string `json:"project_num,omitempty" yaml:"project_num,omitempty"`

	// FiscalYear is the fiscal year of the award. RePORTER sends an
	// integer; any other raw value is kept verbatim.
	FiscalYear FiscalYear `json:"fiscal_year,omitzero" yaml:"fiscal_year,omitempty"`

	// Organization is the awardee organization.
	Organization *Organization `json:"organization,omitempty" yaml:"organization,omitempty"`

	// PrincipalInvestigators lists the project's PIs.
	PrincipalInvestigators []Investigator `json:"principal_investigators,omitempty" yaml:"principal_investigators,omitempty"`

	// ProgramOfficers lists the NIH program officers.
	ProgramOfficers []Investigator `json:"program_officers,omitempty" yaml:"program_officers,omitempty"`

	// ProjectTitle is the project title; may be empty.
	ProjectTitle string `json:"project_title,omitempty" yaml:"project_title,omitempty"`

	// AbstractText is the project abstract.
	AbstractText string `json:"abstract_text,omitempty" yaml:"abstract_text,omitempty"`

	// PhrText is the public health relevance statement.
	PhrText string `json:"phr_text,omitempty" yaml:"phr_text,omitempty"`

	// AwardAmount is the total award in dollars. A null amount decodes as 0.
	AwardAmount float64 `json:"award_amount,omitempty" yaml:"award_amount,omitempty"`

	// DirectCostAmt and IndirectCostAmt split the award.
	DirectCostAmt   float64 `json:"direct_cost_amt,omitempty" yaml:"direct_cost_amt,omitempty"`
	IndirectCostAmt float64 `json:"indirect_cost_amt,omitempty" yaml:"indirect_cost_amt,omitempty"`

	// AwardNoticeDate, ProjectStartDate and ProjectEndDate are RePORTER
	// timestamps kept as strings (e.g. "2024-06-14T00:00:00").
	AwardNoticeDate  string `json:"award_notice_date,omitempty" yaml:"award_notice_date,omitempty"`
	ProjectStartDate string `json:"project_start_date,omitempty" yaml:"project_start_date,omitempty"`
	ProjectEndDate   string `json:"project_end_date,omitempty" yaml:"project_end_date,omitempty"`

	// AgencyIcAdmin is the administering institute or center.
	AgencyIcAdmin *Agency `json:"agency_ic_admin,omitempty" yaml:"agency_ic_admin,omitempty"`

	// AgencyIcFundings lists the funding institutes and their amounts.
	AgencyIcFundings []AgencyFunding `json:"agency_ic_fundings,omitempty" yaml:"agency_ic_fundings,omitempty"`

	// ActivityCode is the grant type (e.g. "R01"). Nil when RePORTER
	// omitted the field.
	ActivityCode *string `json:"activity_code,omitempty" yaml:"activity_code,omitempty"`

	// FullStudySection describes the reviewing study section.
	FullStudySection *StudySection `json:"full_study_section,omitempty" yaml:"full_study_section,omitempty"`

	// OrganizationType classifies the awardee organization.
	OrganizationType *OrganizationType `json:"organization_type,omitempty" yaml:"organization_type,omitempty"`

	// PrefTerms is RePORTER's semicolon-separated term list.
	PrefTerms string `json:"pref_terms,omitempty" yaml:"pref_terms,omitempty"`

	// SpendingCategoriesDesc lists spending category names.
	SpendingCategoriesDesc string `json:"spending_categories_desc,omitempty" yaml:"spending_categories_desc,omitempty"`
}

// Organization is the awardee organization of a project.
type Organization struct {
	OrgName    string `json:"org_name,omitempty" yaml:"org_name,omitempty"`
	OrgCity    string `json:"org_city,omitempty" yaml:"org_city,omitempty"`
	OrgState   string `json:"org_state,omitempty" yaml:"org_state,omitempty"`
	OrgCountry string `json:"org_country,omitempty" yaml:"org_country,omitempty"`
}

// OrganizationType is the RePORTER organization classification.
type OrganizationType struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
	Code string `json:"code,omitempty" yaml:"code,omitempty"`
}

// Investigator is a principal investigator or program officer.
type Investigator struct {
	ProfileID   int64  `json:"profile_id,omitempty" yaml:"profile_id,omitempty"`
	FirstName   string `json:"first_name,omitempty" yaml:"first_name,omitempty"`
	MiddleName  string `json:"middle_name,omitempty" yaml:"middle_name,omitempty"`
	LastName    string `json:"last_name,omitempty" yaml:"last_name,omitempty"`
	FullName    string `json:"full_name,omitempty" yaml:"full_name,omitempty"`
	IsContactPI bool   `json:"is_contact_pi,omitempty" yaml:"is_contact_pi,omitempty"`
	Email       string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Agency identifies an NIH institute or center.
type Agency struct {
	Code         string `json:"code,omitempty" yaml:"code,omitempty"`
	Abbreviation string `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
}

// AgencyFunding is one institute's share of an award.
type AgencyFunding struct {
	Code         string  `json:"code,omitempty" yaml:"code,omitempty"`
	Abbreviation string  `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
	Name         string  `json:"name,omitempty" yaml:"name,omitempty"`
	FY           int     `json:"fy,omitempty" yaml:"fy,omitempty"`
	TotalCost    float64 `json:"total_cost,omitempty" yaml:"total_cost,omitempty"`
}

// StudySection describes the review panel.
type StudySection struct {
	Name    string `json:"name,omitempty" yaml:"name,omitempty"`
	SRGCode string `json:"srg_code,omitempty" yaml:"srg_code,omitempty"`
	SRGFlex string `json:"srg_flex,omitempty" yaml:"srg_flex,omitempty"`
	SRACode string `json:"sra_designator_code,omitempty" yaml:"sra_designator_code,omitempty"`
	Group   string `json:"group_code,omitempty" yaml:"group_code,omitempty"`
}

// AgencyKey returns the administering agency code, or Unknown when the
// agency object is absent or carries an empty code.
func (p Project) AgencyKey() string {
	if p.AgencyIcAdmin == nil || p.AgencyIcAdmin.Code == "" {
		return Unknown
	}
	return p.AgencyIcAdmin.Code
}

// OrgKey returns the organization name, or Unknown when absent or empty.
func (p Project) OrgKey() string {
	if p.Organization == nil || p.Organization.OrgName == "" {
		return Unknown
	}
	return p.Organization.OrgName
}

// ActivityKey returns the activity code as sent, or Unknown when the field
// was absent. An explicitly empty code is kept as "".
func (p Project) ActivityKey() string {
	if p.ActivityCode == nil {
		return Unknown
	}
	return *p.ActivityCode
}

// FiscalYear holds the raw fiscal_year value. Numbers are kept as their
// decimal text (integral values without a fraction), strings verbatim;
// null or absent leaves it unset.
type FiscalYear struct {
	Value string
	Set   bool
}

// Year returns a FiscalYear for an integer year.
func Year(y int) FiscalYear {
	return FiscalYear{Value: strconv.Itoa(y), Set: true}
}

// Key returns the grouping key for the fiscal year.
func (f FiscalYear) Key() string {
	if !f.Set {
		return Unknown
	}
	return f.Value
}

// Int returns the year as an integer and whether it is numeric.
func (f FiscalYear) Int() (int, bool) {
	if !f.Set {
		return 0, false
	}
	n, err := strconv.Atoi(f.Value)
	return n, err == nil
}

// IsZero lets omitzero and omitempty drop an unset year.
func (f FiscalYear) IsZero() bool { return !f.Set }

// UnmarshalJSON accepts a number, a string or null.
func (f *FiscalYear) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = FiscalYear{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FiscalYear{Value: s, Set: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FiscalYear{Value: numberText(n), Set: true}
	return nil
}

// numberText renders integral numbers without a fraction so 2024 and
// 2024.0 share one key.
func numberText(n json.Number) string {
	if _, err := n.Int64(); err == nil {
		return n.String()
	}
	v, err := n.Float64()
	if err != nil || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
		return n.String()
	}
	return strconv.FormatInt(int64(v), 10)
}

// MarshalJSON writes numeric years as numbers and anything else as a string.
func (f FiscalYear) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	if n, ok := f.Int(); ok {
		return []byte(strconv.Itoa(n)), nil
	}
	return json.Marshal(f.Value)
}

// MarshalYAML writes the year the same way MarshalJSON does.
func (f FiscalYear) MarshalYAML() (any, error) {
	if !f.Set {
		return nil, nil
	}
	if n, ok := f.Int(); ok {
		return n, nil
	}
	return f.Value, nil
}

// UnmarshalYAML reads a year written by MarshalYAML.
func (f *FiscalYear) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*f = FiscalYear{}
		return nil
	}
	*f = FiscalYear{Value: node.Value, Set: true}
	return nil
}
