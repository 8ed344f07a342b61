package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/briefcheck/briefcheck/internal/model"
)

// Summarizer turns an analysis report into a plain-language summary.
// It never changes the report or its scores; invented citations in the
// model's output are surfaced as warnings, not errors.
type Summarizer struct {
	provider Provider
	config   Config
}

// NewSummarizer creates a summarizer from configuration. Returns an error
// when the configured provider cannot be constructed; a config with no
// provider yields a disabled summarizer.
func NewSummarizer(config Config) (*Summarizer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}
	return &Summarizer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured.
func (s *Summarizer) IsEnabled() bool {
	return s != nil && s.provider != nil
}

// GenerateSummary produces the optional report summary. The citation
// allowlist is exactly the citations extracted from the brief; anything
// else the model mentions is recorded as a warning.
func (s *Summarizer) GenerateSummary(ctx context.Context, report model.Report) (*model.LLMSummary, error) {
	if !s.IsEnabled() {
		return nil, nil
	}

	allowed := make([]string, 0, len(report.Citations))
	for _, c := range report.Citations {
		allowed = append(allowed, c.Label())
	}

	resp, err := s.provider.Summarize(ctx, SummarizeRequest{
		Report:           report,
		AllowedCitations: allowed,
		Model:            s.config.Model,
		MaxTokens:        s.config.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("generate summary: %w", err)
	}

	var warnings []string
	for _, cited := range resp.CitedCitations {
		if !citationAllowed(cited, allowed) {
			warnings = append(warnings, fmt.Sprintf("summary mentions %q, which is not in the brief", cited))
		}
	}

	return &model.LLMSummary{
		Enabled:   true,
		Provider:  s.provider.Name(),
		Model:     resp.Model,
		SummaryMD: resp.Summary,
		Warnings:  warnings,
	}, nil
}

// citationAllowed tolerates partial matches: the model may quote a longer
// span around an allowed citation, or drop a pin cite from one.
func citationAllowed(cited string, allowed []string) bool {
	for _, a := range allowed {
		if cited == a || strings.Contains(cited, a) || strings.Contains(a, cited) {
			return true
		}
	}
	return false
}
