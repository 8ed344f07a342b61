package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/briefcheck/briefcheck/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Summarize generates a plain-language summary of an analysis report
	Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// SummarizeRequest contains the input for LLM summarization
type SummarizeRequest struct {
	// Report is the analysis report to summarize
	Report model.Report

	// AllowedCitations is the strict allowlist of citations the LLM may
	// reference: exactly the citations extracted from the brief. Anything
	// else in the output is treated as invented.
	AllowedCitations []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// SummarizeResponse contains the LLM's summary output
type SummarizeResponse struct {
	// Summary is the generated summary text
	Summary string

	// CitedCitations are the citation-shaped strings found in the summary
	CitedCitations []string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1000,
	}
}

// BuildPrompt constructs the default summarization prompt. The model is
// told to describe verification outcomes, never to vouch for any case's
// existence beyond what the report says.
func BuildPrompt(report model.Report, allowedCitations []string) string {
	prompt := fmt.Sprintf(`You are summarizing a legal-brief citation verification report. The report describes what an automated checker found - it NEVER establishes truth beyond its own lookups.

CRITICAL RULES:
1. You may ONLY reference citations from this list:
%s

2. DO NOT invent, correct, or cite any other case or citation.
3. Describe verification OUTCOMES, not legal merit. Use phrases like:
   - "X of Y citations were verified against the case-law database..."
   - "One citation could not be found..."
   - "The quoted passage appears in a different case..."
4. Never say a case "is real" or "is fake" - only report what the lookups showed.

Report Summary:
- Citations checked: %d
- Verified: %d, not found: %d, name mismatches: %d
- AI generation score: %d/100 (%s)
- Score after human-error adjustment: %d/100 (%s)
`, joinCitations(allowedCitations),
		len(report.Citations),
		report.CountStatus(model.CitationVerified),
		report.CountStatus(model.CitationNotFound),
		report.CountStatus(model.CitationMismatch),
		report.Score.TotalScore, report.Score.Label,
		report.AdjustedScore, report.AdjustedLabel)

	if report.Score.AutoFlagged {
		prompt += "- The brief was AUTO-FLAGGED for manual review\n"
	}

	// Top scoring criteria give the model something concrete to explain.
	added := 0
	for _, c := range report.Score.Criteria {
		if c.Points == 0 {
			continue
		}
		prompt += fmt.Sprintf("- %s: %s (%d pts)\n", c.Description, c.Detail, c.Points)
		if added++; added >= 3 {
			break
		}
	}

	prompt += "\nProvide a 3-4 sentence summary for a non-lawyer, focusing on what was and was not verified."
	return prompt
}

func joinCitations(citations []string) string {
	if len(citations) == 0 {
		return "(No citations were extracted)"
	}
	result := ""
	for i, c := range citations {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			result += fmt.Sprintf("\n... and %d more citations", len(citations)-20)
			break
		}
		result += fmt.Sprintf("\n- %s", c)
	}
	return result
}

// citationShapedRe loosely matches "123 So. 2d 456" style strings in
// generated text.
var citationShapedRe = regexp.MustCompile(`\b\d{1,4}\s+[A-Z][0-9A-Za-z.'\s]{0,25}\d{1,5}\b`)

// extractCitations pulls citation-shaped substrings out of generated text
// so the summarizer can check them against the allowlist.
func extractCitations(text string) []string {
	matches := citationShapedRe.FindAllString(text, -1)

	seen := make(map[string]bool)
	var unique []string
	for _, m := range matches {
		m = strings.Join(strings.Fields(m), " ")
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// Generation settings shared by all providers.
const (
	llmTemperature   = 0.3
	defaultMaxTokens = 1000
)

// resolve returns the first non-empty value.
func resolve(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveTokens returns the first positive value, else the default budget.
func resolveTokens(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return defaultMaxTokens
}

// clientTimeout converts the configured timeout in seconds, falling back
// when unset.
func clientTimeout(seconds int, fallback time.Duration) time.Duration {
	if seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return fallback
}
