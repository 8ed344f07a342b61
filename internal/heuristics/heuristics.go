// Package heuristics scores stylistic signals of machine-generated prose
// in a legal brief. Every detector is a pure function of the input: same
// text, same result.
package heuristics

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/briefcheck/briefcheck/internal/jurisdiction"
	"github.com/briefcheck/briefcheck/internal/model"
)

// Input is everything the detectors may look at. Text is the whole brief;
// the derived fields are computed once in NewInput so detectors never
// re-tokenize.
type Input struct {
	Text       string
	Lower      string // Text lowercased once
	Words      []string
	Sentences  []string
	Paragraphs []string
	WordCount  int

	Citations    []model.Citation
	Jurisdiction model.Jurisdiction
	Flags        model.Flags
	Resolver     *jurisdiction.Resolver
}

var (
	sentenceSplitRe  = regexp.MustCompile(`[.!?]+\s+`)
	paragraphSplitRe = regexp.MustCompile(`\n\s*\n`)
)

// NewInput tokenizes the brief once for all detectors.
func NewInput(text string, citations []model.Citation, jur model.Jurisdiction, flags model.Flags, resolver *jurisdiction.Resolver) Input {
	words := strings.Fields(text)

	var sentences []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	var paragraphs []string
	for _, p := range paragraphSplitRe.Split(text, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	return Input{
		Text:         text,
		Lower:        strings.ToLower(text),
		Words:        words,
		Sentences:    sentences,
		Paragraphs:   paragraphs,
		WordCount:    len(words),
		Citations:    citations,
		Jurisdiction: jur,
		Flags:        flags,
		Resolver:     resolver,
	}
}

// detector computes one stylistic criterion.
type detector func(Input) model.CriterionResult

// Run evaluates the full detector bank in its fixed order.
func Run(in Input) []model.CriterionResult {
	detectors := []detector{
		malformedCitationPunctuation,
		proSeLegaleseDensity,
		unusualSyntax,
		outOfJurisdictionRatio,
		sparseRecordCitations,
		paragraphRepetition,
		missingProceduralPosture,
		explainerVoice,
		unsupportedBuzzwords,
		dashOveruse,
		lyHyphenation,
	}

	results := make([]model.CriterionResult, 0, len(detectors))
	for _, d := range detectors {
		results = append(results, d(in))
	}
	return results
}

// tooShort builds the zero result used when the text cannot support a
// reliable signal for a detector.
func tooShort(name, description string, max, minWords int) model.CriterionResult {
	return model.CriterionResult{
		Name:        name,
		Description: description,
		Points:      0,
		Max:         max,
		Detail:      fmt.Sprintf("Text too short for a reliable signal (under %d words)", minWords),
	}
}

func countMatches(re *regexp.Regexp, s string) int {
	return len(re.FindAllStringIndex(s, -1))
}

func countPhrases(lower string, phrases []string) int {
	n := 0
	for _, p := range phrases {
		n += strings.Count(lower, p)
	}
	return n
}
