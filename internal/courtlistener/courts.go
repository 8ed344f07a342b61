package courtlistener

import "strings"

// reporterCourts maps normalized reporter abbreviations to the provider's
// court filter identifiers for full-text search. The mapping is coarse:
// it only needs to narrow a quote search to the jurisdiction a reporter
// implies. Unmapped reporters search all courts.
var reporterCourts = map[string]string{
	"U.S.":    "scotus",
	"S. Ct.":  "scotus",
	"L. Ed.":  "scotus",
	"So.":     "fla flaapp ala alaapp miss la laapp",
	"So. 2d":  "fla flaapp ala alaapp miss la laapp",
	"So. 3d":  "fla flaapp ala alaapp miss la laapp",
	"N.E.":    "ill illapp ind indapp mass massapp ny ohio",
	"N.E.2d":  "ill illapp ind indapp mass massapp ny ohio",
	"N.E.3d":  "ill illapp ind indapp mass massapp ny ohio",
	"N.W.":    "mich michapp minn wis iowa neb nd sd",
	"N.W.2d":  "mich michapp minn wis iowa neb nd sd",
	"S.E.":    "ga gactapp nc ncctapp sc va w.va",
	"S.E.2d":  "ga gactapp nc ncctapp sc va w.va",
	"S.W.":    "tex texapp mo moctapp ark ky tenn",
	"S.W.2d":  "tex texapp mo moctapp ark ky tenn",
	"S.W.3d":  "tex texapp mo moctapp ark ky tenn",
	"P.":      "cal calctapp colo kan mont nev or wash utah",
	"P.2d":    "cal calctapp colo kan mont nev or wash utah",
	"P.3d":    "cal calctapp colo kan mont nev or wash utah",
	"A.":      "pa pasuperct nj md conn del me nh ri vt",
	"A.2d":    "pa pasuperct nj md conn del me nh ri vt",
	"A.3d":    "pa pasuperct nj md conn del me nh ri vt",
}

// CourtFilterForReporter returns the provider court filter implied by a
// citation's reporter, or "" when the reporter maps to no specific set.
func CourtFilterForReporter(reporter string) string {
	normalized := strings.Join(strings.Fields(reporter), " ")
	return reporterCourts[normalized]
}
