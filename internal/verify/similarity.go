package verify

import (
	"regexp"
	"strings"
)

// Combined volume+page edit distance bounds for treating two citations as
// near-misses of each other. Distance 0 means identical, which is not a
// typo; beyond maxSuggestionDistance the citations are unrelated.
const (
	minSuggestionDistance = 1
	maxSuggestionDistance = 3
)

// citationStringRe splits a "volume reporter page" citation string into
// its parts.
var citationStringRe = regexp.MustCompile(`^(\d{1,4})\s+(.+?)\s+(\d{1,5})$`)

// ParseCitationString splits a citation string of the form
// "123 So. 2d 456"; ok is false when the string has another shape.
func ParseCitationString(s string) (volume, reporter, page string, ok bool) {
	m := citationStringRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", "", "", false
	}
	return m[1], m[2], m[3], true
}

// CitationsSimilar reports whether two citations are plausibly the same
// reference mangled by a typo: identical reporters and a combined
// volume+page edit distance within [1,3].
func CitationsSimilar(vol1, rep1, page1, vol2, rep2, page2 string) bool {
	if normalizeRep(rep1) != normalizeRep(rep2) {
		return false
	}
	d := editDistance(vol1, vol2) + editDistance(page1, page2)
	return d >= minSuggestionDistance && d <= maxSuggestionDistance
}

func normalizeRep(reporter string) string {
	return strings.Join(strings.Fields(reporter), " ")
}

// editDistance is the Levenshtein distance between two short digit strings.
func editDistance(a, b string) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
