// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tools

// JSON Schema fragments for tool inputs.

func object(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func stringProp(desc string) map[string]any {
	return map[string]any{"type": "string", "description": desc}
}

func intProp(desc string) map[string]any {
	return map[string]any{"type": "integer", "description": desc}
}

func intPropDefault(desc string, def int) map[string]any {
	return map[string]any{"type": "integer", "description": desc, "default": def}
}

func arrayProp(itemType, desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": itemType},
		"description": desc,
	}
}

func searchSchema() map[string]any {
	return object(map[string]any{
		"fiscal_years":   arrayProp("integer", "Fiscal years to search (e.g., [2024, 2025])"),
		"agencies":       arrayProp("string", "NIH Institute/Center codes (e.g., ['NCI', 'NIDA'])"),
		"activity_codes": arrayProp("string", "Activity codes (e.g., ['R01', 'P01'])"),
		"org_names":      arrayProp("string", "Organization names to search"),
		"pi_names":       stringProp("Principal investigator name"),
		"project_nums":   arrayProp("string", "Specific project numbers"),
		"keywords":       stringProp("Keywords to search in title, abstract, and terms"),
		"min_amount":     intProp("Minimum award amount"),
		"max_amount":     intProp("Maximum award amount"),
		"date_from":      stringProp("Start date for award notice date (YYYY-MM-DD)"),
		"date_to":        stringProp("End date for award notice date (YYYY-MM-DD)"),
		"limit":          intPropDefault("Maximum number of results (default: 25, max: 500)", defaultSearchLimit),
		"offset":         intPropDefault("Offset for pagination (default: 0)", 0),
	})
}

func detailSchema() map[string]any {
	return object(map[string]any{
		"project_num": stringProp("Full project number (e.g., '5R01CA123456-05'). Either project_num or appl_id must be provided, but not both."),
		"appl_id":     intProp("Application ID. Either project_num or appl_id must be provided, but not both."),
	})
}

func recentSchema() map[string]any {
	return object(map[string]any{
		"days":     intPropDefault("Number of days to look back (default: 7)", defaultRecentDays),
		"agencies": arrayProp("string", "Optional: Filter by specific NIH institutes"),
		"limit":    intPropDefault("Maximum number of results (default: 50)", defaultRecentLimit),
	})
}

func investigatorSchema() map[string]any {
	return object(map[string]any{
		"last_name":  stringProp("Last name of the investigator"),
		"first_name": stringProp("First name of the investigator (optional)"),
		"limit":      intPropDefault("Maximum number of results (default: 25)", defaultInvestigatorLimit),
	}, "last_name")
}

func trendSchema(defaultMax int) map[string]any {
	return object(map[string]any{
		"fiscal_years":   arrayProp("integer", "Fiscal years to analyze (e.g., [2024, 2025])"),
		"agencies":       arrayProp("string", "NIH Institute/Center codes (e.g., ['NCI', 'NIDA'])"),
		"activity_codes": arrayProp("string", "Activity codes (e.g., ['R01', 'P01'])"),
		"keywords":       stringProp("Keywords to search in title, abstract, and terms"),
		"date_from":      stringProp("Start date for award notice date (YYYY-MM-DD)"),
		"date_to":        stringProp("End date for award notice date (YYYY-MM-DD)"),
		"max_projects":   intPropDefault("Maximum number of projects to analyze (default: 500, max: 2000)", defaultMax),
	})
}
