package heuristics

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/briefcheck/briefcheck/internal/model"
)

// Per-detector minimum word counts. Below the minimum a detector returns
// zero points with an explanatory detail rather than guessing.
const (
	minWordsPunctuation = 100
	minWordsLegalese    = 200
	minWordsSyntax      = 150
	minWordsRecordCites = 300
	minWordsPosture     = 300
	minWordsExplainer   = 100
	minWordsBuzzwords   = 100
	minWordsDashes      = 100
	minWordsLy          = 50
)

// --- malformed citation punctuation ---

var malformedCitePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\s[,;]`),          // Space before comma or semicolon
	regexp.MustCompile(`[,;]{2,}`),        // Doubled separators
	regexp.MustCompile(`\bv\s+\.`),        // "v ." instead of "v."
	regexp.MustCompile(`\bv,\s`),          // "v," instead of "v."
	regexp.MustCompile(`\d,\(`),           // Page jammed against the parenthetical
	regexp.MustCompile(`\.\s*,\s*\d{4}\)`), // ". , 1980)" year glued wrong
}

func malformedCitationPunctuation(in Input) model.CriterionResult {
	const name = "malformed_citations"
	const desc = "Malformed citation punctuation"
	if in.WordCount < minWordsPunctuation {
		return tooShort(name, desc, 5, minWordsPunctuation)
	}

	count := 0
	for _, re := range malformedCitePatterns {
		count += countMatches(re, in.Text)
	}

	points := 0
	switch {
	case count >= 5:
		points = 5
	case count >= 3:
		points = 3
	case count >= 1:
		points = 2
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 5,
		Detail: fmt.Sprintf("%d malformed punctuation pattern(s) found", count),
	}
}

// --- pro se legalese density ---

// detectProSe reports whether the brief's own text identifies a
// self-represented filer, independent of the submitter's assertion.
func detectProSe(lower string) bool {
	for _, marker := range proSeMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func proSeLegaleseDensity(in Input) model.CriterionResult {
	const name = "pro_se_legalese"
	const desc = "Dense legalese in a pro se filing"
	if !in.Flags.ProSe && !detectProSe(in.Lower) {
		return model.CriterionResult{
			Name: name, Description: desc, Points: 0, Max: 15,
			Detail: "Not a pro se filing",
		}
	}
	if in.WordCount < minWordsLegalese {
		return tooShort(name, desc, 15, minWordsLegalese)
	}

	hits := countPhrases(in.Lower, latinPhrases) + countPhrases(in.Lower, complexTerms)
	rate := float64(hits) * 1000 / float64(in.WordCount)

	points := 0
	switch {
	case rate >= 8:
		points = 15
	case rate >= 4:
		points = 12
	case rate >= 2:
		points = 8
	case rate > 0:
		points = 4
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 15,
		Detail: fmt.Sprintf("%.1f Latin/complex terms per 1,000 words (%d total)", rate, hits),
	}
}

// --- unusual syntax uniformity ---

var passiveRe = regexp.MustCompile(`\b(?:is|are|was|were|be|been|being)\s+\w+(?:ed|en)\b`)

func unusualSyntax(in Input) model.CriterionResult {
	const name = "unusual_syntax"
	const desc = "Uniform sentence structure and passive voice"
	if in.WordCount < minWordsSyntax || len(in.Sentences) < 5 {
		return tooShort(name, desc, 10, minWordsSyntax)
	}

	lengths := make([]float64, len(in.Sentences))
	passive := 0
	total := 0.0
	for i, s := range in.Sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		total += lengths[i]
		if passiveRe.MatchString(s) {
			passive++
		}
	}
	mean := total / float64(len(lengths))

	variance := 0.0
	for _, l := range lengths {
		variance += (l - mean) * (l - mean)
	}
	variance /= float64(len(lengths))
	cv := math.Sqrt(variance) / mean

	passiveRatio := float64(passive) / float64(len(in.Sentences))

	points := 0
	var notes []string
	switch {
	case cv < 0.25:
		points += 4
		notes = append(notes, fmt.Sprintf("very uniform sentence lengths (cv %.2f)", cv))
	case cv < 0.35:
		points += 2
		notes = append(notes, fmt.Sprintf("uniform sentence lengths (cv %.2f)", cv))
	}
	switch {
	case passiveRatio > 0.6:
		points += 4
		notes = append(notes, fmt.Sprintf("heavy passive voice (%.0f%%)", passiveRatio*100))
	case passiveRatio > 0.4:
		points += 2
		notes = append(notes, fmt.Sprintf("frequent passive voice (%.0f%%)", passiveRatio*100))
	}
	if mean > 35 {
		points += 2
		notes = append(notes, fmt.Sprintf("long sentences (avg %.0f words)", mean))
	}
	if points > 10 {
		points = 10
	}

	detail := "No syntax uniformity signals"
	if len(notes) > 0 {
		detail = strings.Join(notes, "; ")
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 10, Detail: detail,
	}
}

// --- out-of-jurisdiction citation ratio ---

func outOfJurisdictionRatio(in Input) model.CriterionResult {
	const name = "out_of_jurisdiction"
	const desc = "Citations outside the brief's jurisdiction"
	if in.Flags.AllowOtherState && in.Flags.AllowFederal {
		return model.CriterionResult{
			Name: name, Description: desc, Points: 0, Max: 8,
			Detail: "Skipped: all jurisdictions allowed",
		}
	}
	if len(in.Citations) == 0 || in.Resolver == nil {
		return model.CriterionResult{
			Name: name, Description: desc, Points: 0, Max: 8,
			Detail: "No citations to evaluate",
		}
	}

	out := 0
	for _, c := range in.Citations {
		if in.Resolver.OutOfJurisdiction(c, in.Jurisdiction, in.Flags) {
			out++
		}
	}
	ratio := float64(out) / float64(len(in.Citations))

	points := 0
	switch {
	case ratio >= 0.8:
		points = 8
	case ratio >= 0.6:
		points = 6
	case ratio >= 0.4:
		points = 5
	case ratio >= 0.2:
		points = 3
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 8,
		Detail: fmt.Sprintf("%d of %d citations out of jurisdiction (%.0f%%)", out, len(in.Citations), ratio*100),
	}
}

// --- sparse record citations ---

var recordCiteRe = regexp.MustCompile(`\((?:R|T|App)\.\s*(?:at\s*)?\d|\bR\.\s*at\s*\d|record\s+at\s+\d`)

func sparseRecordCitations(in Input) model.CriterionResult {
	const name = "sparse_record_cites"
	const desc = "Too few citations to the record"
	if in.WordCount < minWordsRecordCites {
		return tooShort(name, desc, 4, minWordsRecordCites)
	}

	actual := countMatches(recordCiteRe, in.Text)
	expected := in.WordCount / 300 // One record cite per 300 words
	if expected == 0 {
		expected = 1
	}
	ratio := float64(actual) / float64(expected)

	points := 0
	switch {
	case ratio >= 1:
		points = 0
	case ratio >= 0.75:
		points = 1
	case ratio >= 0.5:
		points = 2
	case ratio >= 0.25:
		points = 3
	default:
		points = 4
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 4,
		Detail: fmt.Sprintf("%d record cite(s), roughly %d expected for this length", actual, expected),
	}
}

// --- paragraph repetition ---

var contentStopwords = map[string]bool{
	"the": true, "a": true, "an": true, "of": true, "to": true,
	"in": true, "and": true, "or": true, "that": true, "this": true,
	"is": true, "was": true, "for": true, "on": true, "as": true,
	"with": true, "by": true, "at": true, "be": true, "are": true,
	"it": true, "not": true, "has": true, "have": true,
}

func paragraphRepetition(in Input) model.CriterionResult {
	const name = "paragraph_repetition"
	const desc = "Near-duplicate paragraphs"

	var sets []map[string]bool
	for _, p := range in.Paragraphs {
		if len(p) <= 80 {
			continue
		}
		sets = append(sets, contentWords(p))
	}
	if len(sets) < 2 {
		return model.CriterionResult{
			Name: name, Description: desc, Points: 0, Max: 4,
			Detail: "Not enough substantial paragraphs to compare",
		}
	}

	similar := 0
	for i := 0; i < len(sets); i++ {
		for j := i + 1; j < len(sets); j++ {
			if jaccard(sets[i], sets[j]) > 0.5 {
				similar++
			}
		}
	}

	points := 0
	switch {
	case similar >= 3:
		points = 4
	case similar >= 1:
		points = 2
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 4,
		Detail: fmt.Sprintf("%d pair(s) of highly similar paragraphs", similar),
	}
}

func contentWords(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		w = strings.Trim(w, ".,;:!?\"'()[]")
		if len(w) < 3 || contentStopwords[w] {
			continue
		}
		words[w] = true
	}
	return words
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// --- missing procedural posture ---

func missingProceduralPosture(in Input) model.CriterionResult {
	const name = "missing_posture"
	const desc = "Missing procedural posture language"
	if in.WordCount < minWordsPosture {
		return tooShort(name, desc, 4, minWordsPosture)
	}

	matches := 0
	for _, p := range proceduralPhrases {
		if strings.Contains(in.Lower, p) {
			matches++
		}
	}

	points := 0
	switch {
	case matches == 0:
		points = 4
	case matches == 1:
		points = 3
	case matches <= 3:
		points = 2
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 4,
		Detail: fmt.Sprintf("%d of %d procedural phrases present", matches, len(proceduralPhrases)),
	}
}

// --- explainer voice ---

func explainerVoice(in Input) model.CriterionResult {
	const name = "explainer_voice"
	const desc = "Explainer-style phrasing"
	if in.WordCount < minWordsExplainer {
		return tooShort(name, desc, 5, minWordsExplainer)
	}

	count := countPhrases(in.Lower, explainerPhrases)

	points := 0
	switch {
	case count >= 5:
		points = 5
	case count >= 3:
		points = 3
	case count >= 1:
		points = 2
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 5,
		Detail: fmt.Sprintf("%d explainer phrase(s) found", count),
	}
}

// --- unsupported buzzword adjectives ---

// citationShapedRe loosely matches "123 So. 2d 456" without committing to
// the full reporter grammar.
var citationShapedRe = regexp.MustCompile(`\d{1,4}\s+[A-Z][A-Za-z.'\s]{0,25}\d{1,5}`)

const buzzwordCiteWindow = 150

func unsupportedBuzzwords(in Input) model.CriterionResult {
	const name = "unsupported_buzzwords"
	const desc = "Confidence adjectives without nearby authority"
	if in.WordCount < minWordsBuzzwords {
		return tooShort(name, desc, 5, minWordsBuzzwords)
	}

	unsupported := 0
	for _, bw := range buzzwordPhrases {
		for idx := 0; ; {
			rel := strings.Index(in.Lower[idx:], bw)
			if rel < 0 {
				break
			}
			pos := idx + rel
			end := pos + len(bw) + buzzwordCiteWindow
			if end > len(in.Text) {
				end = len(in.Text)
			}
			if !citationShapedRe.MatchString(in.Text[pos+len(bw) : end]) {
				unsupported++
			}
			idx = pos + len(bw)
		}
	}

	points := 0
	switch {
	case unsupported >= 5:
		points = 5
	case unsupported >= 3:
		points = 3
	case unsupported >= 1:
		points = 2
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 5,
		Detail: fmt.Sprintf("%d buzzword(s) with no citation within %d characters", unsupported, buzzwordCiteWindow),
	}
}

// --- dash overuse ---

var dashRe = regexp.MustCompile(`—|–|--`)

func dashOveruse(in Input) model.CriterionResult {
	const name = "dash_overuse"
	const desc = "Excessive em/en-dash usage"
	if in.WordCount < minWordsDashes {
		return tooShort(name, desc, 5, minWordsDashes)
	}

	count := countMatches(dashRe, in.Text)

	points := 0
	switch {
	case count > 15:
		points = 5
	case count > 8:
		points = 3
	case count > 4:
		points = 2
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 5,
		Detail: fmt.Sprintf("%d dash(es) found", count),
	}
}

// --- unnecessary -ly hyphenation ---

var lyHyphenRe = regexp.MustCompile(`\b([A-Za-z]+ly)-[A-Za-z]+`)

func lyHyphenation(in Input) model.CriterionResult {
	const name = "ly_hyphenation"
	const desc = "Hyphenated adverbs"
	if in.WordCount < minWordsLy {
		return tooShort(name, desc, 5, minWordsLy)
	}

	count := 0
	for _, m := range lyHyphenRe.FindAllStringSubmatch(in.Text, -1) {
		if !lyFalsePositives[strings.ToLower(m[1])] {
			count++
		}
	}

	points := 0
	switch {
	case count >= 6:
		points = 5
	case count >= 3:
		points = 3
	case count >= 1:
		points = 1
	}
	return model.CriterionResult{
		Name: name, Description: desc, Points: points, Max: 5,
		Detail: fmt.Sprintf("%d adverb-hyphen compound(s) found", count),
	}
}
