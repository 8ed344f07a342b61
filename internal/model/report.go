package model

import "time"

// Flags are the caller-supplied analysis options
type Flags struct {
	ProSe           bool `json:"pro_se"`            // Drafter asserted to be pro se
	AllowOtherState bool `json:"allow_other_state"` // Other states' law may properly be raised
	AllowFederal    bool `json:"allow_federal"`     // Federal law may properly be raised
}

// Report is the complete analysis result for one brief
type Report struct {
	Source     string    `json:"source,omitempty"` // File name or upload label
	AnalyzedAt time.Time `json:"analyzed_at"`
	Flags      Flags     `json:"flags"`

	Jurisdiction Jurisdiction `json:"jurisdiction"`
	Citations    []Citation   `json:"citations"`
	Quotes       []Quote      `json:"quotes"`

	Score         AiScore              `json:"score"`
	HumanError    HumanErrorAdjustment `json:"human_error"`
	AdjustedScore int                  `json:"adjusted_score"` // Score.TotalScore + HumanError.Adjustment, clamped
	AdjustedLabel string               `json:"adjusted_label"`

	LLM *LLMSummary `json:"llm,omitempty"` // Optional plain-language summary; never affects scoring
}

// CountStatus returns how many citations carry the given status.
func (r *Report) CountStatus(status CitationStatus) int {
	n := 0
	for _, c := range r.Citations {
		if c.Status == status {
			n++
		}
	}
	return n
}

// LLMSummary is an optional generated explanation of the report.
// CRITICAL: it never affects scoring and is clearly separated.
type LLMSummary struct {
	Enabled   bool     `json:"enabled"`
	Provider  string   `json:"provider,omitempty"`
	Model     string   `json:"model,omitempty"`
	SummaryMD string   `json:"summary_md,omitempty"`
	Warnings  []string `json:"warnings,omitempty"` // e.g. citations invented by the model
}
