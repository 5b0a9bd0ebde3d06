// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/pdiddy/nih-reporter/pkg/types"
)

// Aggregates holds the grand totals and the four groupings of one
// retrieved set.
type Aggregates struct {
	Count   int
	Funding float64

	// ByAgency and ByActivityCode are ordered by descending funding.
	ByAgency       types.Groups
	ByActivityCode types.Groups

	// ByOrganization is in first-seen order.
	ByOrganization types.Groups

	// ByFiscalYear is ordered by ascending year; non-numeric keys follow.
	ByFiscalYear types.Groups
}

// Average returns the mean award, or 0 for an empty set.
func (a Aggregates) Average() float64 {
	if a.Count == 0 {
		return 0
	}
	return a.Funding / float64(a.Count)
}

// accumulator is an insertion-ordered key to {count, funding} map.
type accumulator struct {
	index  map[string]int
	groups types.Groups
}

func newAccumulator() *accumulator {
	return &accumulator{index: make(map[string]int)}
}

func (a *accumulator) add(key string, amount float64) {
	i, ok := a.index[key]
	if !ok {
		i = len(a.groups)
		a.index[key] = i
		a.groups = append(a.groups, types.GroupStat{Key: key})
	}
	a.groups[i].Count++
	a.groups[i].Funding += amount
}

// Aggregate folds records into totals and groupings in a single pass.
func Aggregate(records []types.Project) Aggregates {
	agency := newAccumulator()
	activity := newAccumulator()
	org := newAccumulator()
	year := newAccumulator()

	var agg Aggregates
	for _, p := range records {
		amount := p.AwardAmount
		agg.Count++
		agg.Funding += amount

		agency.add(p.AgencyKey(), amount)
		activity.add(p.ActivityKey(), amount)
		org.add(p.OrgKey(), amount)
		year.add(p.FiscalYear.Key(), amount)
	}

	agg.ByAgency = byFundingDesc(agency.groups)
	agg.ByActivityCode = byFundingDesc(activity.groups)
	agg.ByOrganization = org.groups
	agg.ByFiscalYear = byYear(year.groups)
	return agg
}

// byFundingDesc sorts groups by descending funding. Equal funding keeps
// first-seen order.
func byFundingDesc(g types.Groups) types.Groups {
	out := slices.Clone(g)
	slices.SortStableFunc(out, func(a, b types.GroupStat) int {
		return cmp.Compare(b.Funding, a.Funding)
	})
	return out
}

// byYear sorts numeric years ascending, then non-numeric keys lexically.
func byYear(g types.Groups) types.Groups {
	out := slices.Clone(g)
	slices.SortStableFunc(out, func(a, b types.GroupStat) int {
		ay, aErr := strconv.Atoi(a.Key)
		by, bErr := strconv.Atoi(b.Key)
		switch {
		case aErr == nil && bErr == nil:
			return cmp.Compare(ay, by)
		case aErr == nil:
			return -1
		case bErr == nil:
			return 1
		default:
			return cmp.Compare(a.Key, b.Key)
		}
	})
	return out
}
