// Package score combines citation-verification outcomes with the
// stylistic heuristics bank into a single 0–100 AI-generation score.
package score

import (
	"fmt"

	"github.com/briefcheck/briefcheck/internal/model"
)

// Scorer aggregates criteria into an AiScore
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate combines the verification-derived criteria with the stylistic
// criteria. Criteria order is stable: mismatches, not-founds, then the
// heuristics bank in its fixed order. The total is capped at 100;
// auto-flagging is independent of the total.
func (s *Scorer) Calculate(citations []model.Citation, stylistic []model.CriterionResult) model.AiScore {
	criteria := make([]model.CriterionResult, 0, len(stylistic)+2)
	criteria = append(criteria, s.mismatchCriterion(citations))
	criteria = append(criteria, s.notFoundCriterion(citations))
	criteria = append(criteria, stylistic...)

	total := 0
	autoFlagged := false
	for _, c := range criteria {
		total += c.Points
		if c.AutoFlag {
			autoFlagged = true
		}
	}
	if total > 100 {
		total = 100
	}

	return model.AiScore{
		TotalScore:  total,
		AutoFlagged: autoFlagged,
		Label:       model.ScoreLabel(total),
		Criteria:    criteria,
	}
}

// mismatchCriterion scores citations that exist under a different case
// name. Any mismatch at all auto-flags the brief.
func (s *Scorer) mismatchCriterion(citations []model.Citation) model.CriterionResult {
	count := countStatus(citations, model.CitationMismatch)

	points := 0
	switch {
	case count >= 2:
		points = 10
	case count == 1:
		points = 5
	}
	return model.CriterionResult{
		Name:        "citation_mismatches",
		Description: "Citations pointing at a differently named case",
		Points:      points,
		Max:         10,
		Detail:      fmt.Sprintf("%d mismatched citation(s)", count),
		AutoFlag:    count > 0,
	}
}

// notFoundCriterion scores citations absent from the case-law database,
// the classic fabricated-authority signal. Any not-found auto-flags.
func (s *Scorer) notFoundCriterion(citations []model.Citation) model.CriterionResult {
	count := countStatus(citations, model.CitationNotFound)

	points := 0
	switch {
	case count >= 2:
		points = 20
	case count == 1:
		points = 10
	}
	return model.CriterionResult{
		Name:        "citations_not_found",
		Description: "Citations absent from the case-law database",
		Points:      points,
		Max:         20,
		Detail:      fmt.Sprintf("%d citation(s) not found", count),
		AutoFlag:    count > 0,
	}
}

func countStatus(citations []model.Citation, status model.CitationStatus) int {
	n := 0
	for _, c := range citations {
		if c.Status == status {
			n++
		}
	}
	return n
}
