// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"cmp"
	"slices"

	"github.com/pdiddy/nih-reporter/pkg/types"
)

// TopOrgCount is the length of the ranked organization list.
const TopOrgCount = 10

// TopOrganizations returns the k best-funded groups. Ties keep the input
// order, so passing first-seen groups ranks earlier organizations first.
func TopOrganizations(groups types.Groups, k int) []types.OrgRank {
	if k <= 0 {
		return []types.OrgRank{}
	}
	sorted := byFundingDesc(groups)
	n := min(k, len(sorted))

	out := make([]types.OrgRank, 0, n)
	for _, g := range sorted[:n] {
		out = append(out, types.OrgRank{Name: g.Key, Projects: g.Count, TotalFunding: g.Funding})
	}
	return out
}

// rankCounts orders word counts descending, breaking ties by first occurrence.
func rankCounts(words []string, counts map[string]int, k int) []types.Theme {
	ranked := slices.Clone(words)
	slices.SortStableFunc(ranked, func(a, b string) int {
		return cmp.Compare(counts[b], counts[a])
	})
	n := min(k, len(ranked))

	out := make([]types.Theme, 0, n)
	for _, w := range ranked[:n] {
		out = append(out, types.Theme{Word: w, Frequency: counts[w]})
	}
	return out
}
