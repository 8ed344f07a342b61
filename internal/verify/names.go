package verify

import (
	"regexp"
	"strings"
)

// nameMatchThreshold is the minimum word-overlap ratio, in either
// direction, for a cited party string and a database case name to count as
// the same case.
const nameMatchThreshold = 0.4

var namePunctRe = regexp.MustCompile(`[.,;:'"’()\[\]]`)

// nameStopwords are filler words ignored when comparing case names.
var nameStopwords = map[string]bool{
	"v": true, "vs": true, "the": true, "of": true, "in": true,
	"re": true, "ex": true, "parte": true, "et": true, "al": true,
	"a": true, "an": true, "and": true, "for": true, "on": true,
	"by": true, "no": true, "inc": true, "corp": true,
	"co": true, "ltd": true, "llc": true, "city": true, "state": true,
	"united": true, "states": true, "county": true, "board": true,
	"dept": true, "department": true,
}

// namesMatch checks whether cited party names reasonably match a database
// case name. Overlap is asymmetric on purpose: case names are often
// abbreviated in one direction, so 40% of either side's words appearing in
// the other suffices. Empty normalized sets cannot disprove a match.
func namesMatch(citedParties, dbCaseName string) bool {
	citedWords := normalizeName(citedParties)
	dbWords := normalizeName(dbCaseName)

	if len(citedWords) == 0 || len(dbWords) == 0 {
		return true
	}

	overlap := 0
	for w := range citedWords {
		if dbWords[w] {
			overlap++
		}
	}

	ratioCited := float64(overlap) / float64(len(citedWords))
	ratioDB := float64(overlap) / float64(len(dbWords))
	return ratioCited >= nameMatchThreshold || ratioDB >= nameMatchThreshold
}

func normalizeName(name string) map[string]bool {
	name = strings.ToLower(name)
	name = namePunctRe.ReplaceAllString(name, " ")

	words := make(map[string]bool)
	for _, w := range strings.Fields(name) {
		if len(w) <= 1 || nameStopwords[w] {
			continue
		}
		words[w] = true
	}
	return words
}
