package extract

import (
	"regexp"
	"strings"

	"github.com/briefcheck/briefcheck/internal/model"
)

// Full citation:  Party v. Party, Volume Reporter Page(, PinCite) (Court Year)
var fullCiteRe = regexp.MustCompile(
	`(?P<parties>` +
		`(?:In\s+re|Ex\s+[Pp]arte)?\s*` + // Optional "In re" / "Ex parte" prefix
		`[A-Z][A-Za-z0-9’'.&,\-\s]+` + // First party
		`\s+v\.?\s+` + // "v." separator
		`[A-Z][A-Za-z0-9’'.&,\-\s]+?` + // Second party
		`)` +
		`,\s*` +
		`(?P<volume>\d{1,4})` +
		`\s+` +
		`(?P<reporter>` + reporterAlternation() + `)` +
		`\s+` +
		`(?P<page>\d{1,5})` +
		`(?:,\s*(?P<pincite>\d{1,5}(?:\s*[-–]\s*\d{1,5})?))?` +
		`\s*` +
		`\(` +
		`(?P<court>[A-Za-z0-9.\s]*?)` +
		`(?P<year>\d{4})` +
		`\)`)

// "In re" style without "v.", e.g. In re Grand Jury Subpoena, 123 F.3d 456 (2d Cir. 2005)
var inReCiteRe = regexp.MustCompile(
	`(?P<parties>` +
		`(?:In\s+re|Ex\s+[Pp]arte)\s+` +
		`[A-Z][A-Za-z0-9’'.&,\-\s]+?` +
		`)` +
		`,\s*` +
		`(?P<volume>\d{1,4})` +
		`\s+` +
		`(?P<reporter>` + reporterAlternation() + `)` +
		`\s+` +
		`(?P<page>\d{1,5})` +
		`(?:,\s*(?P<pincite>\d{1,5}(?:\s*[-–]\s*\d{1,5})?))?` +
		`\s*` +
		`\(` +
		`(?P<court>[A-Za-z0-9.\s]*?)` +
		`(?P<year>\d{4})` +
		`\)`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Common legal abbreviations that end with "." but are NOT sentence boundaries
var legalAbbrevs = map[string]bool{
	"inc": true, "corp": true, "co": true, "ltd": true, "llc": true,
	"llp": true, "lp": true, "no": true, "nos": true,
	"assn": true, "ass'n": true, "assoc": true, "dept": true, "div": true,
	"dist": true, "gov": true, "govt": true,
	"elec": true, "indus": true, "mfg": true, "mgmt": true, "nat'l": true,
	"natl": true, "intl": true, "int'l": true,
	"ins": true, "grp": true, "sys": true, "tech": true, "servs": true,
	"svcs": true, "bros": true, "constr": true,
	"transp": true, "univ": true, "hosp": true, "pharm": true,
	"telecomm": true, "commc'ns": true,
	"st": true, "ave": true, "blvd": true, "dr": true, "jr": true,
	"sr": true, "mr": true, "mrs": true, "ms": true,
	"al": true, // "et al."
}

var vSeparatorRe = regexp.MustCompile(`\s+v\.?\s+`)
var dotBoundaryRe = regexp.MustCompile(`(\w+)\.\s+`)
var semiBoundaryRe = regexp.MustCompile(`;\s+`)

// CitationExtractor extracts case-law citations from brief text
type CitationExtractor struct{}

// NewCitationExtractor creates a new citation extractor
func NewCitationExtractor() *CitationExtractor {
	return &CitationExtractor{}
}

// Extract returns every citation found in text, deduplicated by
// (volume, reporter, page) in first-seen order: the "v." grammar runs over
// the whole text first, then the "In re" grammar, and the first match for
// a key wins regardless of which grammar produced it.
func (e *CitationExtractor) Extract(text string) []model.Citation {
	var citations []model.Citation
	seen := make(map[string]bool)

	for _, re := range []*regexp.Regexp{fullCiteRe, inReCiteRe} {
		names := re.SubexpNames()
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			groups := make(map[string]string, len(names))
			for i, name := range names {
				if name != "" {
					groups[name] = m[i]
				}
			}

			reporter := strings.TrimSpace(groups["reporter"])
			key := groups["volume"] + "|" + reporter + "|" + groups["page"]
			if seen[key] {
				continue
			}
			seen[key] = true

			parties := strings.TrimSpace(groups["parties"])
			parties = whitespaceRe.ReplaceAllString(parties, " ")
			// The party capture is greedy and can swallow preceding
			// sentence text; repair the left boundary.
			parties = trimPartyName(parties)

			citations = append(citations, model.Citation{
				FullText: strings.TrimSpace(m[0]),
				Parties:  parties,
				Volume:   groups["volume"],
				Reporter: reporter,
				Page:     groups["page"],
				PinCite:  groups["pincite"],
				Court:    strings.Trim(strings.TrimSpace(groups["court"]), ",. "),
				Year:     groups["year"],
				Status:   model.CitationPending,
			})
		}
	}

	return citations
}

// trimPartyName cuts excess preceding text from a captured party string by
// walking the ". "-delimited segments before the "v." separator. Segments
// ending in a known legal abbreviation, or of length <= 2 (other than
// "id"), are kept as part of the name; the rightmost true boundary wins,
// and any "; " boundary always counts as a cut point.
func trimPartyName(parties string) string {
	v := vSeparatorRe.FindStringIndex(parties)
	if v == nil {
		return parties
	}
	beforeV := parties[:v[0]]

	bestTrim := -1
	for _, m := range dotBoundaryRe.FindAllStringSubmatchIndex(beforeV, -1) {
		word := strings.ToLower(beforeV[m[2]:m[3]])
		word = strings.TrimRight(word, "'")
		if legalAbbrevs[word] {
			continue
		}
		if len(word) <= 2 && word != "id" {
			continue
		}
		bestTrim = m[1]
	}

	for _, m := range semiBoundaryRe.FindAllStringIndex(beforeV, -1) {
		if m[1] > bestTrim {
			bestTrim = m[1]
		}
	}

	if bestTrim >= 0 {
		return parties[bestTrim:]
	}
	return parties
}
