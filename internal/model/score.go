package model

// CriterionResult is the immutable outcome of one scoring criterion
type CriterionResult struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Points      int    `json:"points"`
	Max         int    `json:"max"`
	Detail      string `json:"detail"`
	AutoFlag    bool   `json:"auto_flag,omitempty"` // Forces the brief to be flagged regardless of total
}

// AiScore is the combined AI-generation score for a brief
type AiScore struct {
	TotalScore  int               `json:"total_score"`  // Sum of criterion points, capped at 100
	AutoFlagged bool              `json:"auto_flagged"` // OR of individual auto flags
	Label       string            `json:"label"`        // Qualitative band for TotalScore
	Criteria    []CriterionResult `json:"criteria"`
}

// ScoreLabel maps a 0–100 score to its qualitative band.
func ScoreLabel(score int) string {
	switch {
	case score == 0:
		return "Not AI generated"
	case score <= 10:
		return "Low chance of AI generation"
	case score <= 30:
		return "Moderate chance of some AI generation"
	case score <= 50:
		return "High chance of some AI generation"
	case score <= 80:
		return "Moderate chance that entire brief was AI generated"
	default:
		return "High chance that entire brief was AI generated"
	}
}

// ClampScore bounds a score to the valid [0,100] range.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Classification separates probable human mistakes from AI indicators
type Classification string

const (
	ClassificationHumanError  Classification = "human_error"
	ClassificationAiIndicator Classification = "ai_indicator"
)

// HumanErrorItem is one re-examined finding
type HumanErrorItem struct {
	Description    string         `json:"description"`
	Classification Classification `json:"classification"`
	Points         int            `json:"points"` // Signed; negative reduces the AI score
}

// HumanErrorAdjustment is the result of the human-error re-classification
// pass. Adjustment is the signed sum of item points; callers apply it to
// the base score and clamp to [0,100].
type HumanErrorAdjustment struct {
	Items      []HumanErrorItem `json:"items"`
	Adjustment int              `json:"adjustment"`
}

// Apply returns the base score adjusted and clamped to [0,100].
func (h HumanErrorAdjustment) Apply(baseScore int) int {
	return ClampScore(baseScore + h.Adjustment)
}
