package llm

import (
	"strings"
	"testing"

	"github.com/briefcheck/briefcheck/internal/model"
)

func testReport() model.Report {
	return model.Report{
		Citations: []model.Citation{
			{Parties: "Smith v. Jones", Volume: "123", Reporter: "So. 2d", Page: "456",
				Status: model.CitationVerified},
			{Parties: "Invented v. Authority", Volume: "999", Reporter: "So. 2d", Page: "888",
				Status: model.CitationNotFound},
		},
		Score: model.AiScore{
			TotalScore:  10,
			AutoFlagged: true,
			Label:       model.ScoreLabel(10),
			Criteria: []model.CriterionResult{
				{Description: "Citations absent from the case-law database",
					Points: 10, Max: 20, Detail: "1 citation(s) not found", AutoFlag: true},
			},
		},
		AdjustedScore: 10,
		AdjustedLabel: model.ScoreLabel(10),
	}
}

func TestBuildPrompt(t *testing.T) {
	report := testReport()
	prompt := BuildPrompt(report, []string{"123 So. 2d 456", "999 So. 2d 888"})

	for _, want := range []string{
		"123 So. 2d 456",
		"999 So. 2d 888",
		"Citations checked: 2",
		"not found: 1",
		"AUTO-FLAGGED",
		"DO NOT invent",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildPrompt_NoCitations(t *testing.T) {
	prompt := BuildPrompt(model.Report{}, nil)
	if !strings.Contains(prompt, "(No citations were extracted)") {
		t.Error("prompt should state that no citations were extracted")
	}
}

func TestBuildPrompt_TruncatesAllowlist(t *testing.T) {
	var allowed []string
	for i := 0; i < 30; i++ {
		allowed = append(allowed, "123 So. 2d 456")
	}
	prompt := BuildPrompt(model.Report{}, allowed)
	if !strings.Contains(prompt, "... and 10 more citations") {
		t.Error("long allowlists should be truncated")
	}
}

func TestExtractCitations(t *testing.T) {
	text := `Two of three citations were verified. The citation 999 So. 2d 888
could not be found, while 123 So. 2d 456 matched its case name. The
checker flagged 999 So. 2d 888 for review.`

	got := extractCitations(text)
	if len(got) != 2 {
		t.Fatalf("got %v, want 2 unique citations", got)
	}
	if !contains(got, "999 So. 2d 888") || !contains(got, "123 So. 2d 456") {
		t.Errorf("got %v", got)
	}
}

func TestExtractCitations_IgnoresPlainNumbers(t *testing.T) {
	got := extractCitations("The score was 10 out of 100 across 13 criteria.")
	if len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

func TestNewProvider(t *testing.T) {
	if p, err := NewProvider(Config{}); p != nil || err != nil {
		t.Errorf("empty provider: got (%v, %v), want (nil, nil)", p, err)
	}

	if _, err := NewProvider(Config{Provider: "guessbot"}); err == nil {
		t.Error("unknown provider should error")
	}

	if _, err := NewProvider(Config{Provider: "openai"}); err == nil {
		t.Error("openai without API key should error")
	}

	p, err := NewProvider(Config{Provider: "ollama", Model: "llama3.1:8b"})
	if err != nil || p == nil || p.Name() != "ollama" {
		t.Errorf("ollama provider: (%v, %v)", p, err)
	}

	p, err = NewProvider(Config{Provider: "claude", APIKey: "k"})
	if err != nil || p.Name() != "anthropic" {
		t.Errorf("claude alias: (%v, %v)", p, err)
	}
}

func TestConfigFromModel(t *testing.T) {
	cfg := ConfigFromModel(model.LLMConfig{
		Provider: "openai", Model: "gpt-4o-mini", APIKey: "k",
		Timeout: 45, MaxTokens: 500,
	})
	if cfg.Provider != "openai" || cfg.Model != "gpt-4o-mini" || cfg.Timeout != 45 || cfg.MaxTokens != 500 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}
