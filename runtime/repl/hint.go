package repl

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/monkeylang/monkey/runtime/lexer"
)

// maxEdits is the largest edit distance still treated as a typo of keyword
func maxEdits(keyword string) int {
	if len(keyword) <= 3 {
		return 1
	}
	return 2
}

// closestKeyword returns the keyword ident most likely misspells. Exact
// keywords, one-letter identifiers and abbreviations get no suggestion.
func closestKeyword(ident string) (string, bool) {
	if len(ident) < 2 || lexer.LookupIdent(ident) != lexer.IDENTIFIER {
		return "", false
	}

	plausible := func(keyword string, distance int) bool {
		return distance <= maxEdits(keyword) && len(ident) >= len(keyword)-1
	}

	keywords := lexer.Keywords()

	// Missing letters and wrong case: ident is a fuzzy subsequence of the keyword
	ranks := fuzzy.RankFindFold(ident, keywords)
	sort.Sort(ranks)
	for _, rank := range ranks {
		if plausible(rank.Target, rank.Distance) {
			return rank.Target, true
		}
	}

	// Swapped, extra or wrong letters
	lower := strings.ToLower(ident)
	best, bestDistance := "", -1
	for _, keyword := range keywords {
		d := fuzzy.LevenshteinDistance(lower, keyword)
		if plausible(keyword, d) && (bestDistance < 0 || d < bestDistance) {
			best, bestDistance = keyword, d
		}
	}
	return best, bestDistance >= 0
}
