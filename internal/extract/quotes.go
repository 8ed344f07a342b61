package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/briefcheck/briefcheck/internal/model"
)

const (
	minQuoteLen = 40  // Shorter spans are boilerplate, not block quotes
	maxQuoteLen = 500 // Stored quote text is truncated to this
	idWindow    = 80  // Chars after the closing mark scanned for Id./Ibid.
	afterWindow = 300 // Chars after the quote scanned for a following citation
)

var curlyQuoteRe = regexp.MustCompile(`“([^“”]{40,}?)”`)
var straightQuoteRe = regexp.MustCompile(`"([^"]{40,}?)"`)

// Id./Ibid. back-reference following a quote. Intervening text such as a
// record pin cite may sit between the closing mark and the Id.
var idRefRe = regexp.MustCompile(`(?i)\b(?:id|ibid)\.`)

// span is one occurrence of a citation's "volume reporter page" text
type span struct {
	start     int
	end       int
	citeIndex int
}

// QuoteExtractor finds quoted passages and attributes each to a citation
type QuoteExtractor struct{}

// NewQuoteExtractor creates a new quote extractor
func NewQuoteExtractor() *QuoteExtractor {
	return &QuoteExtractor{}
}

// Extract returns the quoted spans of text attributed to citations, in
// document order. Quotes that cannot be attributed to any citation are
// discarded.
func (e *QuoteExtractor) Extract(text string, citations []model.Citation) []model.Quote {
	if len(citations) == 0 {
		return nil
	}

	spans := locateCitationSpans(text, citations)
	matches := findQuoteMatches(text)

	var quotes []model.Quote
	// "Last attributed" is process-local sequential state threaded through
	// the pass; Id. references resolve against it.
	lastAttributed := -1

	for _, m := range matches {
		citeIndex := -1

		// Rule 1: Id./Ibid. right after the closing mark refers to the
		// last citation attributed so far, not the nearest span.
		if lastAttributed >= 0 && isIdReference(text, m.end, spans) {
			citeIndex = lastAttributed
		}

		// Rule 2: nearest citation span within the following window.
		if citeIndex < 0 {
			if idx := nearestSpanAfter(spans, m.end, afterWindow); idx >= 0 {
				citeIndex = idx
				lastAttributed = idx
			}
		}

		// Rule 3: fall back to the nearest span anywhere before the quote.
		if citeIndex < 0 {
			if idx := nearestSpanBefore(spans, m.start); idx >= 0 {
				citeIndex = idx
				lastAttributed = idx
			}
		}

		if citeIndex < 0 {
			continue // No attribution possible; drop the quote
		}

		quoteText := m.text
		if runes := []rune(quoteText); len(runes) > maxQuoteLen {
			quoteText = string(runes[:maxQuoteLen])
		}

		cite := citations[citeIndex]
		quotes = append(quotes, model.Quote{
			Text:      quoteText,
			CiteIndex: citeIndex,
			CiteLabel: cite.Parties + ", " + cite.Label(),
			Status:    model.QuotePending,
		})
	}

	return quotes
}

// quoteMatch is a located quotation with its span in the source text
type quoteMatch struct {
	start int
	end   int
	text  string
}

func findQuoteMatches(text string) []quoteMatch {
	var matches []quoteMatch
	for _, re := range []*regexp.Regexp{curlyQuoteRe, straightQuoteRe} {
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			matches = append(matches, quoteMatch{
				start: loc[0],
				end:   loc[1],
				text:  strings.TrimSpace(text[loc[2]:loc[3]]),
			})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].start < matches[j].start })
	return matches
}

// locateCitationSpans records every occurrence of each citation's
// "volume reporter page" text, sorted by position. Whitespace inside the
// label is matched loosely so citations wrapped across lines still locate.
func locateCitationSpans(text string, citations []model.Citation) []span {
	var spans []span
	for i, cite := range citations {
		parts := strings.Fields(cite.Label())
		for p, part := range parts {
			parts[p] = regexp.QuoteMeta(part)
		}
		re, err := regexp.Compile(strings.Join(parts, `\s+`))
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllStringIndex(text, -1) {
			spans = append(spans, span{start: loc[0], end: loc[1], citeIndex: i})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	return spans
}

// isIdReference reports whether an Id./Ibid. back-reference appears within
// the window after a quote's closing mark. The window is cut short at the
// first full citation that starts inside it: an Id. beyond a new citation
// refers to that citation, not to the quote.
func isIdReference(text string, from int, spans []span) bool {
	to := from + idWindow
	if to > len(text) {
		to = len(text)
	}
	for _, s := range spans {
		if s.start >= from && s.start < to {
			to = s.start
			break
		}
	}
	return idRefRe.MatchString(text[from:to])
}

func nearestSpanAfter(spans []span, from, window int) int {
	for _, s := range spans {
		if s.start >= from && s.start <= from+window {
			return s.citeIndex
		}
	}
	return -1
}

func nearestSpanBefore(spans []span, before int) int {
	best := -1
	for _, s := range spans {
		if s.start >= before {
			break
		}
		best = s.citeIndex
	}
	return best
}
