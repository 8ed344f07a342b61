package score

import (
	"fmt"

	"github.com/briefcheck/briefcheck/internal/model"
	"github.com/briefcheck/briefcheck/internal/verify"
)

// Human-error adjustment points. Negative values pull the AI score down:
// a near-miss citation is far more consistent with a typo than with a
// fabricated authority.
const (
	ptsNotFoundWithSuggestion   = -10
	ptsMismatchSimilar          = -5
	ptsMismatchDissimilar       = 3
	ptsQuoteElsewhereSimilar    = -5
	ptsQuoteElsewhereDissimilar = 5
	ptsQuoteNotFound            = 5
)

// Reclassifier re-examines verification failures and separates probable
// human mistakes (transposed digits, wrong page) from AI indicators
// (authorities that do not exist anywhere near the cited spot).
type Reclassifier struct{}

// NewReclassifier creates a new reclassifier
func NewReclassifier() *Reclassifier {
	return &Reclassifier{}
}

// Reclassify walks every failed citation and quote and produces the signed
// score adjustment.
func (r *Reclassifier) Reclassify(citations []model.Citation, quotes []model.Quote) model.HumanErrorAdjustment {
	var items []model.HumanErrorItem

	for _, c := range citations {
		switch c.Status {
		case model.CitationNotFound:
			items = append(items, r.notFoundItem(c))
		case model.CitationMismatch:
			if c.Suggestion != "" {
				items = append(items, r.mismatchItem(c))
			}
		}
	}

	for _, q := range quotes {
		switch q.Status {
		case model.QuoteFoundElsewhere:
			items = append(items, r.quoteElsewhereItem(q, citations))
		case model.QuoteNotFound:
			items = append(items, model.HumanErrorItem{
				Description:    fmt.Sprintf("Quote attributed to %s found nowhere", q.CiteLabel),
				Classification: model.ClassificationAiIndicator,
				Points:         ptsQuoteNotFound,
			})
		}
	}

	adjustment := 0
	for _, it := range items {
		adjustment += it.Points
	}
	return model.HumanErrorAdjustment{Items: items, Adjustment: adjustment}
}

// notFoundItem: a not-found citation with a near-miss suggestion reads as
// a typo; with no suggestion it stays an AI indicator (already scored by
// the aggregator, so zero incremental points).
func (r *Reclassifier) notFoundItem(c model.Citation) model.HumanErrorItem {
	if c.Suggestion != "" {
		return model.HumanErrorItem{
			Description:    fmt.Sprintf("%s not found, but %q is a near miss — likely a typo", c.Label(), c.Suggestion),
			Classification: model.ClassificationHumanError,
			Points:         ptsNotFoundWithSuggestion,
		}
	}
	return model.HumanErrorItem{
		Description:    fmt.Sprintf("%s not found and nothing similar exists", c.Label()),
		Classification: model.ClassificationAiIndicator,
		Points:         0,
	}
}

func (r *Reclassifier) mismatchItem(c model.Citation) model.HumanErrorItem {
	if citationSimilarToSuggestion(c) {
		return model.HumanErrorItem{
			Description:    fmt.Sprintf("%s resolves to a different case, but %q is a near miss — likely a typo", c.Label(), c.Suggestion),
			Classification: model.ClassificationHumanError,
			Points:         ptsMismatchSimilar,
		}
	}
	return model.HumanErrorItem{
		Description:    fmt.Sprintf("%s resolves to a different case and the suggestion %q is unrelated", c.Label(), c.Suggestion),
		Classification: model.ClassificationAiIndicator,
		Points:         ptsMismatchDissimilar,
	}
}

func (r *Reclassifier) quoteElsewhereItem(q model.Quote, citations []model.Citation) model.HumanErrorItem {
	if q.CiteIndex >= 0 && q.CiteIndex < len(citations) && q.FoundCite != "" {
		attributed := citations[q.CiteIndex]
		if vol, rep, page, ok := verify.ParseCitationString(q.FoundCite); ok {
			if verify.CitationsSimilar(attributed.Volume, attributed.Reporter, attributed.Page, vol, rep, page) {
				return model.HumanErrorItem{
					Description:    fmt.Sprintf("Quote found under %q, a near miss of %s — likely a citation typo", q.FoundCite, attributed.Label()),
					Classification: model.ClassificationHumanError,
					Points:         ptsQuoteElsewhereSimilar,
				}
			}
		}
	}
	return model.HumanErrorItem{
		Description:    fmt.Sprintf("Quote attributed to %s actually appears in %q", q.CiteLabel, q.FoundIn),
		Classification: model.ClassificationAiIndicator,
		Points:         ptsQuoteElsewhereDissimilar,
	}
}

// citationSimilarToSuggestion applies the near-miss test between a
// citation and its suggestion string.
func citationSimilarToSuggestion(c model.Citation) bool {
	vol, rep, page, ok := verify.ParseCitationString(c.Suggestion)
	if !ok {
		return false
	}
	return verify.CitationsSimilar(c.Volume, c.Reporter, c.Page, vol, rep, page)
}
