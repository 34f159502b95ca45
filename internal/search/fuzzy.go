package search

import (
	"strings"
	"unicode"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
)

// allowedTypos returns the edit distance tolerated for a query word:
// 1-3 runes = 0, 4-6 runes = 1, 7+ runes = 2.
func allowedTypos(length int) int {
	switch {
	case length <= 3:
		return 0
	case length <= 6:
		return 1
	default:
		return 2
	}
}

// words splits text into lowercase letter/digit runs
func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// typoDistance matches every query word against some title word within its
// typo budget. It returns the summed edit distance, or -1 when any query
// word has no close title word.
func typoDistance(query, title string) int {
	qWords := words(query)
	tWords := words(title)
	if len(qWords) == 0 || len(tWords) == 0 {
		return -1
	}

	total := 0
	for _, q := range qWords {
		budget := allowedTypos(len([]rune(q)))
		if budget == 0 {
			return -1
		}
		best := -1
		for _, t := range tWords {
			d := lfuzzy.LevenshteinDistance(q, t)
			if d <= budget && (best < 0 || d < best) {
				best = d
			}
		}
		if best < 0 {
			return -1
		}
		total += best
	}
	return total
}
