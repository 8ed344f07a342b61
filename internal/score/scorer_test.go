package score

import (
	"strings"
	"testing"

	"github.com/briefcheck/briefcheck/internal/model"
)

func cite(status model.CitationStatus) model.Citation {
	return model.Citation{
		Parties:  "Smith v. Jones",
		Volume:   "123",
		Reporter: "So. 2d",
		Page:     "456",
		Status:   status,
	}
}

func TestCalculate_CleanBriefScoresZero(t *testing.T) {
	s := NewScorer()
	citations := []model.Citation{cite(model.CitationVerified), cite(model.CitationVerified)}

	result := s.Calculate(citations, nil)

	if result.TotalScore != 0 {
		t.Errorf("total = %d, want 0", result.TotalScore)
	}
	if result.AutoFlagged {
		t.Error("clean brief should not be auto-flagged")
	}
	if result.Label != "Not AI generated" {
		t.Errorf("label = %q", result.Label)
	}
}

func TestCalculate_SingleNotFoundAutoFlags(t *testing.T) {
	s := NewScorer()
	citations := []model.Citation{cite(model.CitationVerified), cite(model.CitationNotFound)}

	result := s.Calculate(citations, nil)

	if result.TotalScore != 10 {
		t.Errorf("total = %d, want 10 for one not-found citation", result.TotalScore)
	}
	if !result.AutoFlagged {
		t.Error("a not-found citation must auto-flag regardless of total")
	}
	if result.Label != "Low chance of AI generation" {
		t.Errorf("label = %q", result.Label)
	}
}

func TestCalculate_MismatchBands(t *testing.T) {
	s := NewScorer()
	cases := []struct {
		mismatches int
		want       int
	}{
		{0, 0}, {1, 5}, {2, 10}, {3, 10},
	}
	for _, c := range cases {
		var citations []model.Citation
		for i := 0; i < c.mismatches; i++ {
			citations = append(citations, cite(model.CitationMismatch))
		}
		result := s.Calculate(citations, nil)
		if result.TotalScore != c.want {
			t.Errorf("%d mismatches: total = %d, want %d", c.mismatches, result.TotalScore, c.want)
		}
		if (c.mismatches > 0) != result.AutoFlagged {
			t.Errorf("%d mismatches: auto-flagged = %v", c.mismatches, result.AutoFlagged)
		}
	}
}

func TestCalculate_TotalCappedAt100(t *testing.T) {
	s := NewScorer()
	var citations []model.Citation
	for i := 0; i < 5; i++ {
		citations = append(citations, cite(model.CitationNotFound))
	}
	stylistic := []model.CriterionResult{
		{Name: "a", Points: 50, Max: 50},
		{Name: "b", Points: 50, Max: 50},
	}

	result := s.Calculate(citations, stylistic)

	if result.TotalScore != 100 {
		t.Errorf("total = %d, want capped at 100", result.TotalScore)
	}
	if result.Label != "High chance that entire brief was AI generated" {
		t.Errorf("label = %q", result.Label)
	}
}

func TestCalculate_CriteriaOrderStable(t *testing.T) {
	s := NewScorer()
	stylistic := []model.CriterionResult{{Name: "explainer_voice"}}

	result := s.Calculate(nil, stylistic)

	if len(result.Criteria) != 3 {
		t.Fatalf("got %d criteria, want 3", len(result.Criteria))
	}
	if result.Criteria[0].Name != "citation_mismatches" ||
		result.Criteria[1].Name != "citations_not_found" ||
		result.Criteria[2].Name != "explainer_voice" {
		t.Errorf("criteria order: %s, %s, %s",
			result.Criteria[0].Name, result.Criteria[1].Name, result.Criteria[2].Name)
	}
}

func TestScoreLabelBands(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, "Not AI generated"},
		{1, "Low chance of AI generation"},
		{10, "Low chance of AI generation"},
		{11, "Moderate chance of some AI generation"},
		{30, "Moderate chance of some AI generation"},
		{31, "High chance of some AI generation"},
		{50, "High chance of some AI generation"},
		{51, "Moderate chance that entire brief was AI generated"},
		{80, "Moderate chance that entire brief was AI generated"},
		{81, "High chance that entire brief was AI generated"},
		{100, "High chance that entire brief was AI generated"},
	}
	for _, c := range cases {
		if got := model.ScoreLabel(c.score); got != c.want {
			t.Errorf("ScoreLabel(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestReclassify_NotFoundWithSuggestionIsHumanError(t *testing.T) {
	r := NewReclassifier()
	c := cite(model.CitationNotFound)
	c.Volume = "213"
	c.Suggestion = "123 So. 2d 456" // Transposed volume

	adj := r.Reclassify([]model.Citation{c}, nil)

	if len(adj.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(adj.Items))
	}
	if adj.Items[0].Classification != model.ClassificationHumanError {
		t.Errorf("classification = %q, want human_error", adj.Items[0].Classification)
	}
	if adj.Adjustment != -10 {
		t.Errorf("adjustment = %d, want -10", adj.Adjustment)
	}
}

func TestReclassify_NotFoundWithoutSuggestionIsAiIndicator(t *testing.T) {
	r := NewReclassifier()
	c := cite(model.CitationNotFound)

	adj := r.Reclassify([]model.Citation{c}, nil)

	if len(adj.Items) != 1 {
		t.Fatalf("got %d items, want 1", len(adj.Items))
	}
	if adj.Items[0].Classification != model.ClassificationAiIndicator {
		t.Errorf("classification = %q, want ai_indicator", adj.Items[0].Classification)
	}
	if adj.Adjustment != 0 {
		t.Errorf("adjustment = %d, want 0 — already scored by the aggregator", adj.Adjustment)
	}
}

func TestReclassify_MismatchSimilarityDecides(t *testing.T) {
	r := NewReclassifier()

	similar := cite(model.CitationMismatch)
	similar.Suggestion = "123 So. 2d 457" // One digit off

	dissimilar := cite(model.CitationMismatch)
	dissimilar.Suggestion = "987 So. 2d 111"

	adj := r.Reclassify([]model.Citation{similar, dissimilar}, nil)

	if len(adj.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(adj.Items))
	}
	if adj.Items[0].Classification != model.ClassificationHumanError || adj.Items[0].Points != -5 {
		t.Errorf("similar mismatch: %q %d, want human_error -5", adj.Items[0].Classification, adj.Items[0].Points)
	}
	if adj.Items[1].Classification != model.ClassificationAiIndicator || adj.Items[1].Points != 3 {
		t.Errorf("dissimilar mismatch: %q %d, want ai_indicator +3", adj.Items[1].Classification, adj.Items[1].Points)
	}
	if adj.Adjustment != -2 {
		t.Errorf("adjustment = %d, want -2", adj.Adjustment)
	}
}

func TestReclassify_MismatchWithoutSuggestionProducesNoItem(t *testing.T) {
	r := NewReclassifier()
	adj := r.Reclassify([]model.Citation{cite(model.CitationMismatch)}, nil)
	if len(adj.Items) != 0 {
		t.Errorf("got %d items, want 0", len(adj.Items))
	}
}

func TestReclassify_Quotes(t *testing.T) {
	r := NewReclassifier()
	citations := []model.Citation{cite(model.CitationVerified)}

	quotes := []model.Quote{
		{Status: model.QuoteFoundElsewhere, CiteIndex: 0, FoundCite: "123 So. 2d 457", FoundIn: "Smith v. Jones"},
		{Status: model.QuoteFoundElsewhere, CiteIndex: 0, FoundCite: "789 F.3d 12", FoundIn: "Doe v. Roe"},
		{Status: model.QuoteNotFound, CiteIndex: 0, CiteLabel: "Smith v. Jones, 123 So. 2d 456"},
		{Status: model.QuoteVerified, CiteIndex: 0},
	}

	adj := r.Reclassify(citations, quotes)

	if len(adj.Items) != 3 {
		t.Fatalf("got %d items, want 3 (verified quotes produce none)", len(adj.Items))
	}
	if adj.Items[0].Points != -5 || adj.Items[0].Classification != model.ClassificationHumanError {
		t.Errorf("near-miss quote: %d %q", adj.Items[0].Points, adj.Items[0].Classification)
	}
	if adj.Items[1].Points != 5 || adj.Items[1].Classification != model.ClassificationAiIndicator {
		t.Errorf("foreign quote: %d %q", adj.Items[1].Points, adj.Items[1].Classification)
	}
	if adj.Items[2].Points != 5 {
		t.Errorf("missing quote: %d, want +5", adj.Items[2].Points)
	}
	if adj.Adjustment != 5 {
		t.Errorf("adjustment = %d, want 5", adj.Adjustment)
	}
}

func TestAdjustmentApplyClamps(t *testing.T) {
	low := model.HumanErrorAdjustment{Adjustment: -30}
	if got := low.Apply(10); got != 0 {
		t.Errorf("Apply(10) with -30 = %d, want 0", got)
	}
	high := model.HumanErrorAdjustment{Adjustment: 50}
	if got := high.Apply(80); got != 100 {
		t.Errorf("Apply(80) with +50 = %d, want 100", got)
	}
}

func TestReclassifyDescriptionsMentionSuggestion(t *testing.T) {
	r := NewReclassifier()
	c := cite(model.CitationNotFound)
	c.Suggestion = "123 So. 2d 457"

	adj := r.Reclassify([]model.Citation{c}, nil)
	if !strings.Contains(adj.Items[0].Description, "123 So. 2d 457") {
		t.Errorf("description = %q, want it to name the suggestion", adj.Items[0].Description)
	}
}
