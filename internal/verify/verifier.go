package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/briefcheck/briefcheck/internal/courtlistener"
	"github.com/briefcheck/briefcheck/internal/model"
	"github.com/briefcheck/briefcheck/internal/worker"
)

// LookupService is the case-law provider abstraction. Implemented by
// courtlistener.Client; tests supply fakes.
type LookupService interface {
	LookupCitation(ctx context.Context, citeText string) ([]courtlistener.LookupResult, error)
	Search(ctx context.Context, query, court string) ([]courtlistener.SearchResult, error)
}

// PhraseSearcher is the fallback web search used when a quoted passage is
// absent from the provider. May be nil to disable the fallback.
type PhraseSearcher interface {
	SearchPhrase(ctx context.Context, phrase string) (found bool, source string, err error)
}

// quotePhraseWords is how many leading words of a quote form the search
// phrase.
const quotePhraseWords = 12

// Verifier checks citations and quotes against the case-law provider.
// Calls are strictly sequential: every provider request first waits on the
// shared throttle. A failed item never aborts the batch; failures become
// per-item statuses.
type Verifier struct {
	provider LookupService
	throttle *worker.Throttle
	web      PhraseSearcher
}

// NewVerifier creates a verifier. web may be nil.
func NewVerifier(provider LookupService, throttle *worker.Throttle, web PhraseSearcher) *Verifier {
	return &Verifier{provider: provider, throttle: throttle, web: web}
}

// VerifyCitation resolves a single citation's status, detail, matched case
// name and did-you-mean suggestion in place.
func (v *Verifier) VerifyCitation(ctx context.Context, cite *model.Citation) {
	if err := v.throttle.Wait(ctx); err != nil {
		cite.Status = model.CitationError
		cite.Detail = fmt.Sprintf("Verification aborted: %v", err)
		return
	}

	results, err := v.provider.LookupCitation(ctx, cite.Label())
	if err != nil {
		cite.Status = model.CitationError
		if errors.Is(err, courtlistener.ErrRateLimited) {
			cite.Detail = "Rate limited — try again later"
		} else {
			cite.Detail = fmt.Sprintf("API request failed: %v", err)
		}
		return
	}

	if len(results) == 0 {
		cite.Status = model.CitationNotFound
		cite.Detail = "No results from citation lookup"
		v.findSuggestion(ctx, cite)
		return
	}

	var matched *courtlistener.LookupResult
	for i := range results {
		switch results[i].Status {
		case courtlistener.StatusFound, courtlistener.StatusAmbiguous:
			matched = &results[i]
		case courtlistener.StatusNotFound:
			cite.Status = model.CitationNotFound
			cite.Detail = "Citation not found in the case-law database"
			v.findSuggestion(ctx, cite)
			return
		case courtlistener.StatusBadReporter:
			// Terminal: the provider cannot parse this reporter, so a
			// fuzzy search would be meaningless.
			cite.Status = model.CitationUnrecognized
			cite.Detail = results[i].ErrorMessage
			if cite.Detail == "" {
				cite.Detail = "Unrecognized reporter"
			}
			return
		}
		if matched != nil {
			break
		}
	}

	if matched == nil {
		cite.Status = model.CitationNotFound
		cite.Detail = "No valid match in API response"
		v.findSuggestion(ctx, cite)
		return
	}

	if len(matched.Clusters) == 0 {
		cite.Status = model.CitationVerified
		cite.Detail = "Citation found (no case name to cross-check)"
		return
	}

	caseName := courtlistener.StripHTML(matched.Clusters[0].CaseName)
	cite.MatchedCaseName = caseName

	if caseName != "" && !namesMatch(cite.Parties, caseName) {
		cite.Status = model.CitationMismatch
		cite.Detail = fmt.Sprintf("Citation exists but name differs: %q", caseName)
		v.findSuggestion(ctx, cite)
		return
	}

	cite.Status = model.CitationVerified
	cite.Detail = fmt.Sprintf("Matches: %q", caseName)
}

// findSuggestion runs one rate-limited fuzzy search by party name and
// records the closest same-reporter citation whose combined volume+page
// edit distance falls in the near-miss window.
func (v *Verifier) findSuggestion(ctx context.Context, cite *model.Citation) {
	if err := v.throttle.Wait(ctx); err != nil {
		return
	}
	results, err := v.provider.Search(ctx, cite.Parties, "")
	if err != nil {
		return // Suggestion search is best-effort
	}

	bestDistance := maxSuggestionDistance + 1
	var bestCite, bestCase string

	for _, result := range results {
		for _, citeStr := range result.Citation {
			vol, rep, page, ok := ParseCitationString(citeStr)
			if !ok || normalizeRep(rep) != normalizeRep(cite.Reporter) {
				continue
			}
			d := editDistance(cite.Volume, vol) + editDistance(cite.Page, page)
			if d >= minSuggestionDistance && d < bestDistance {
				bestDistance = d
				bestCite = citeStr
				bestCase = result.CaseName
			}
		}
	}

	if bestCite != "" {
		cite.Suggestion = bestCite
		cite.Detail += fmt.Sprintf(" Did you mean: %q (%s)?", bestCite, bestCase)
	}
}

// VerifyQuote resolves a quote's status in place against its attributed
// citation: provider search restricted to the reporter's jurisdiction,
// then unfiltered, then the web fallback.
func (v *Verifier) VerifyQuote(ctx context.Context, quote *model.Quote, cite model.Citation) {
	phrase := quotePhrase(quote.Text)
	if phrase == "" {
		quote.Status = model.QuoteNotFound
		quote.Detail = "Quote too short to search"
		return
	}

	wantCite := normalizeRep(cite.Label())
	var elsewhereCase, elsewhereCite string

	courts := []string{courtlistener.CourtFilterForReporter(cite.Reporter), ""}
	if courts[0] == "" {
		courts = courts[1:] // No jurisdiction filter to try first
	}

	for _, court := range courts {
		if err := v.throttle.Wait(ctx); err != nil {
			quote.Status = model.QuoteNotFound
			quote.Detail = fmt.Sprintf("Verification aborted: %v", err)
			return
		}
		results, err := v.provider.Search(ctx, `"`+phrase+`"`, court)
		if err != nil {
			continue // Degrade to the next attempt
		}

		for _, result := range results {
			for _, citeStr := range result.Citation {
				if normalizeRep(citeStr) == wantCite {
					quote.Status = model.QuoteVerified
					quote.FoundIn = result.CaseName
					quote.FoundCite = citeStr
					quote.Detail = "Quote found in the cited case"
					return
				}
				if elsewhereCase == "" {
					elsewhereCase = result.CaseName
					elsewhereCite = citeStr
				}
			}
		}
	}

	if elsewhereCase != "" {
		quote.Status = model.QuoteFoundElsewhere
		quote.FoundIn = elsewhereCase
		quote.FoundCite = elsewhereCite
		quote.Detail = fmt.Sprintf("Quote found in %q (%s), not the cited case", elsewhereCase, elsewhereCite)
		return
	}

	if v.web != nil {
		if found, source, err := v.web.SearchPhrase(ctx, phrase); err == nil && found {
			quote.Status = model.QuoteFoundElsewhere
			quote.FoundIn = source
			quote.Detail = fmt.Sprintf("Quote not in the case-law database but found on the web (%s)", source)
			return
		}
	}

	quote.Status = model.QuoteNotFound
	quote.Detail = "Quote not found in the cited case or anywhere else searched"
}

// quotePhrase returns the first words of a quote as a search phrase.
func quotePhrase(text string) string {
	words := strings.Fields(text)
	if len(words) > quotePhraseWords {
		words = words[:quotePhraseWords]
	}
	return strings.Join(words, " ")
}
