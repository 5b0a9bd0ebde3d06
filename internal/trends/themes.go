// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package trends

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/nih-reporter/pkg/types"
)

// ThemeCount is the length of the common themes list.
const ThemeCount = 20

// minTokenRunes is exclusive: a token needs more runes than this to count.
const minTokenRunes = 3

var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "from": {}, "as": {}, "is": {}, "was": {},
	"are": {}, "were": {}, "been": {}, "be": {}, "have": {}, "has": {},
	"had": {}, "do": {}, "does": {}, "did": {}, "will": {}, "would": {},
	"could": {}, "should": {}, "may": {}, "might": {}, "can": {},
}

// MineThemes counts qualifying title words across records and returns the
// k most frequent. Equal counts keep first-occurrence order.
func MineThemes(records []types.Project, k int) []types.Theme {
	counts := make(map[string]int)
	var order []string
	for _, p := range records {
		for _, tok := range titleTokens(p.ProjectTitle) {
			if _, seen := counts[tok]; !seen {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}
	if k <= 0 {
		return []types.Theme{}
	}
	return rankCounts(order, counts, k)
}

// titleTokens lower-cases a title, splits it on whitespace, strips
// everything but letters and digits and drops short tokens and stop words.
func titleTokens(title string) []string {
	var out []string
	for _, field := range strings.Fields(strings.ToLower(title)) {
		tok := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsNumber(r) {
				return r
			}
			return -1
		}, field)
		if utf8.RuneCountInString(tok) <= minTokenRunes {
			continue
		}
		if _, stop := stopWords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}
