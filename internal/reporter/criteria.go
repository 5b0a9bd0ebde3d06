// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reporter

// keywordSearchFields is the advanced_text_search field list used for
// keyword filters: title, abstract and terms.
const keywordSearchFields = "projecttitle,abstracttext,terms"

// Award amount bounds injected when the caller gives only one side of the range.
const (
	defaultMinAmount = 0
	defaultMaxAmount = 100000000
)

// Filters is the caller-facing filter set shared by all search operations.
// Zero values mean "no filter".
type Filters struct {
	FiscalYears   []int
	Agencies      []string
	ActivityCodes []string
	OrgNames      []string
	PIName        string
	ProjectNums   []string
	ApplIDs       []int64
	Keywords      string
	MinAmount     int64
	MaxAmount     int64
	DateFrom      string
	DateTo        string
}

// Criteria is the RePORTER criteria object. Empty fields are omitted from
// the request payload.
type Criteria struct {
	FiscalYears        []int           `json:"fiscal_years,omitempty"`
	Agencies           []string        `json:"agencies,omitempty"`
	ActivityCodes      []string        `json:"activity_codes,omitempty"`
	OrgNames           []string        `json:"org_names,omitempty"`
	PINames            []PIName        `json:"pi_names,omitempty"`
	ProjectNums        []string        `json:"project_nums,omitempty"`
	ApplIDs            []int64         `json:"appl_ids,omitempty"`
	AdvancedTextSearch *TextSearch     `json:"advanced_text_search,omitempty"`
	AwardAmountRange   *AmountRange    `json:"award_amount_range,omitempty"`
	AwardNoticeDate    *NoticeDateSpan `json:"award_notice_date,omitempty"`
}

// PIName matches principal investigators by any name or by first/last name.
type PIName struct {
	AnyName   string `json:"any_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// TextSearch is RePORTER's advanced_text_search clause.
type TextSearch struct {
	Operator    string `json:"operator"`
	SearchField string `json:"search_field"`
	SearchText  string `json:"search_text"`
}

// AmountRange bounds the award amount.
type AmountRange struct {
	MinAmount int64 `json:"min_amount"`
	MaxAmount int64 `json:"max_amount"`
}

// NoticeDateSpan bounds the award notice date (YYYY-MM-DD, inclusive).
type NoticeDateSpan struct {
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`
}

// BuildCriteria maps a filter set onto the RePORTER criteria object.
func BuildCriteria(f Filters) Criteria {
	c := Criteria{
		FiscalYears:   f.FiscalYears,
		Agencies:      f.Agencies,
		ActivityCodes: f.ActivityCodes,
		OrgNames:      f.OrgNames,
		ProjectNums:   f.ProjectNums,
		ApplIDs:       f.ApplIDs,
	}

	if f.PIName != "" {
		c.PINames = []PIName{{AnyName: f.PIName}}
	}

	if f.Keywords != "" {
		c.AdvancedTextSearch = &TextSearch{
			Operator:    "and",
			SearchField: keywordSearchFields,
			SearchText:  f.Keywords,
		}
	}

	if f.MinAmount != 0 || f.MaxAmount != 0 {
		r := &AmountRange{MinAmount: defaultMinAmount, MaxAmount: defaultMaxAmount}
		if f.MinAmount != 0 {
			r.MinAmount = f.MinAmount
		}
		if f.MaxAmount != 0 {
			r.MaxAmount = f.MaxAmount
		}
		c.AwardAmountRange = r
	}

	if f.DateFrom != "" || f.DateTo != "" {
		c.AwardNoticeDate = &NoticeDateSpan{FromDate: f.DateFrom, ToDate: f.DateTo}
	}

	return c
}
