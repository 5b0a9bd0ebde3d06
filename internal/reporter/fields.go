// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reporter

// Sort fields.
const (
	SortAwardNoticeDate  = "award_notice_date"
	SortProjectStartDate = "project_start_date"
)

// include_fields lists per operation. RePORTER expects PascalCase names.
var (
	// SearchFields is requested by the full project search.
	SearchFields = []string{
		"ApplId", "ProjectNum", "FiscalYear", "Organization",
		"PrincipalInvestigators", "ProjectTitle", "AwardAmount",
		"AwardNoticeDate", "ProjectStartDate", "ProjectEndDate",
		"AbstractText", "AgencyIcAdmin",
	}

	// LightFields is requested by the lightweight project search.
	LightFields = []string{
		"ProjectNum", "ProjectTitle", "AwardAmount",
		"AwardNoticeDate", "Organization", "PrincipalInvestigators",
	}

	// DetailFields is requested for a single project lookup.
	DetailFields = []string{
		"ApplId", "ProjectNum", "FiscalYear", "Organization",
		"OrganizationType", "PrincipalInvestigators", "ProgramOfficers",
		"ProjectTitle", "AbstractText", "PhrText", "AwardAmount",
		"AwardNoticeDate", "ProjectStartDate", "ProjectEndDate",
		"AgencyIcAdmin", "AgencyIcFundings", "ActivityCode",
		"FullStudySection", "DirectCostAmt", "IndirectCostAmt",
		"PrefTerms", "SpendingCategoriesDesc",
	}

	// RecentFields is requested by the recent-awards search.
	RecentFields = []string{
		"ApplId", "ProjectNum", "FiscalYear", "Organization",
		"PrincipalInvestigators", "ProjectTitle", "AwardAmount",
		"AwardNoticeDate", "AgencyIcAdmin",
	}

	// InvestigatorFields is requested by the investigator search.
	InvestigatorFields = []string{
		"ApplId", "ProjectNum", "FiscalYear", "Organization",
		"PrincipalInvestigators", "ProjectTitle", "AwardAmount",
		"ProjectStartDate", "ProjectEndDate", "AgencyIcAdmin",
	}

	// TrendFields is requested by every page of a trend analysis.
	TrendFields = []string{
		"ProjectNum", "ProjectTitle", "AwardAmount", "AwardNoticeDate",
		"Organization", "AgencyIcAdmin", "ActivityCode", "FiscalYear",
		"PrefTerms",
	}
)
