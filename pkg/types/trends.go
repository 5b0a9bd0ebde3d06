// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"
)

// NotSpecified is echoed for an absent date bound.
const NotSpecified = "Not specified"

// TrendSummary is the compact result of a trend analysis.
type TrendSummary struct {
	Summary          SummaryBlock `json:"summary" yaml:"summary"`
	ByAgency         Groups       `json:"by_agency" yaml:"by_agency"`
	ByActivityCode   Groups       `json:"by_activity_code" yaml:"by_activity_code"`
	TopOrganizations []OrgRank    `json:"top_organizations" yaml:"top_organizations"`
	ByFiscalYear     Groups       `json:"by_fiscal_year" yaml:"by_fiscal_year"`
	CommonThemes     []Theme      `json:"common_themes" yaml:"common_themes"`
	Note             string       `json:"note" yaml:"note"`
}

// SummaryBlock holds the grand totals.
type SummaryBlock struct {
	TotalProjects int       `json:"total_projects" yaml:"total_projects"`
	TotalFunding  float64   `json:"total_funding" yaml:"total_funding"`
	AverageAward  float64   `json:"average_award" yaml:"average_award"`
	DateRange     DateRange `json:"date_range" yaml:"date_range"`
}

// DateRange echoes the requested award-notice date bounds.
type DateRange struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// GroupStat is the count and funding total for one grouping key.
type GroupStat struct {
	Key     string  `json:"key" yaml:"key"`
	Count   int     `json:"count" yaml:"count"`
	Funding float64 `json:"funding" yaml:"funding"`
}

// Groups is an ordered grouping. It serializes to JSON as an object whose
// keys appear in slice order.
type Groups []GroupStat

// MarshalJSON writes {"KEY": {"count": n, "funding": x}, ...} in order.
func (g Groups) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(struct {
			Count   int     `json:"count"`
			Funding float64 `json:"funding"`
		}{s.Count, s.Funding})
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the object form back, preserving key order.
func (g *Groups) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*g = nil
		return nil
	}
	out := Groups{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		var v struct {
			Count   int     `json:"count"`
			Funding float64 `json:"funding"`
		}
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out = append(out, GroupStat{Key: key, Count: v.Count, Funding: v.Funding})
	}
	*g = out
	return nil
}

// Total returns the summed count and funding across all groups.
func (g Groups) Total() (count int, funding float64) {
	for _, s := range g {
		count += s.Count
		funding += s.Funding
	}
	return count, funding
}

// OrgRank is one entry of the top organizations list.
type OrgRank struct {
	Name         string  `json:"name" yaml:"name"`
	Projects     int     `json:"projects" yaml:"projects"`
	TotalFunding float64 `json:"total_funding" yaml:"total_funding"`
}

// Theme is a frequent title word.
type Theme struct {
	Word      string `json:"word" yaml:"word"`
	Frequency int    `json:"frequency" yaml:"frequency"`
}
