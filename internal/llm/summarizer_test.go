package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeLLM scripts a provider response.
type fakeLLM struct {
	summary string
	err     error
	lastReq SummarizeRequest
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) IsAvailable(ctx context.Context) bool { return true }

func (f *fakeLLM) Summarize(ctx context.Context, req SummarizeRequest) (*SummarizeResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &SummarizeResponse{
		Summary:        f.summary,
		CitedCitations: extractCitations(f.summary),
		Model:          "fake-model",
		TokensUsed:     42,
	}, nil
}

func TestGenerateSummary(t *testing.T) {
	fake := &fakeLLM{summary: "One citation, 999 So. 2d 888, could not be found in the database."}
	s := &Summarizer{provider: fake, config: DefaultConfig()}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}

	if !summary.Enabled || summary.Provider != "fake" || summary.Model != "fake-model" {
		t.Errorf("summary metadata: %+v", summary)
	}
	if len(summary.Warnings) != 0 {
		t.Errorf("warnings = %v, want none for an allowed citation", summary.Warnings)
	}

	// The allowlist handed to the provider is the report's citations.
	if len(fake.lastReq.AllowedCitations) != 2 {
		t.Errorf("allowlist = %v", fake.lastReq.AllowedCitations)
	}
}

func TestGenerateSummary_InventedCitationWarns(t *testing.T) {
	fake := &fakeLLM{summary: "The brief should have cited 111 U.S. 222 instead."}
	s := &Summarizer{provider: fake, config: DefaultConfig()}

	summary, err := s.GenerateSummary(context.Background(), testReport())
	if err != nil {
		t.Fatalf("GenerateSummary: %v", err)
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "111 U.S. 222") {
		t.Errorf("warnings = %v, want one naming the invented citation", summary.Warnings)
	}
}

func TestGenerateSummary_ProviderErrorPropagates(t *testing.T) {
	fake := &fakeLLM{err: errors.New("model offline")}
	s := &Summarizer{provider: fake, config: DefaultConfig()}

	if _, err := s.GenerateSummary(context.Background(), testReport()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSummarizer_Disabled(t *testing.T) {
	s, err := NewSummarizer(Config{})
	if err != nil {
		t.Fatalf("NewSummarizer: %v", err)
	}
	if s.IsEnabled() {
		t.Error("summarizer with no provider should be disabled")
	}
	summary, err := s.GenerateSummary(context.Background(), testReport())
	if summary != nil || err != nil {
		t.Errorf("disabled summarizer: (%v, %v), want (nil, nil)", summary, err)
	}
}

func TestCitationAllowed(t *testing.T) {
	allowed := []string{"123 So. 2d 456"}
	cases := []struct {
		cited string
		want  bool
	}{
		{"123 So. 2d 456", true},
		{"123 So. 2d 456, 458", true},  // Longer span around the citation
		{"123 So. 2d 45", true},        // Partial echo of the allowed entry
		{"999 So. 2d 888", false},
	}
	for _, c := range cases {
		if got := citationAllowed(c.cited, allowed); got != c.want {
			t.Errorf("citationAllowed(%q) = %v, want %v", c.cited, got, c.want)
		}
	}
}
