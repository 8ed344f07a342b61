// Package pipeline orchestrates the complete analysis of one brief:
// extraction, jurisdiction resolution, sequential verification against the
// case-law provider, scoring, and the human-error adjustment.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briefcheck/briefcheck/internal/cache"
	"github.com/briefcheck/briefcheck/internal/courtlistener"
	"github.com/briefcheck/briefcheck/internal/extract"
	"github.com/briefcheck/briefcheck/internal/heuristics"
	"github.com/briefcheck/briefcheck/internal/jurisdiction"
	"github.com/briefcheck/briefcheck/internal/llm"
	"github.com/briefcheck/briefcheck/internal/model"
	"github.com/briefcheck/briefcheck/internal/score"
	"github.com/briefcheck/briefcheck/internal/verify"
	"github.com/briefcheck/briefcheck/internal/websearch"
	"github.com/briefcheck/briefcheck/internal/worker"
)

// Event is one progress notification emitted while a brief is analyzed.
// Streaming consumers (the web UI) forward these as they arrive; batch
// consumers ignore them.
type Event struct {
	Type       string                      `json:"type"` // result, quote_phase, quote_result, done, error
	Index      int                         `json:"index"`
	Total      int                         `json:"total,omitempty"`
	Citation   *model.Citation             `json:"citation,omitempty"`
	Quote      *model.Quote                `json:"quote,omitempty"`
	Score      *model.AiScore              `json:"ai_score,omitempty"`
	HumanError *model.HumanErrorAdjustment `json:"human_error,omitempty"`
}

const (
	EventResult      = "result"
	EventQuotePhase  = "quote_phase"
	EventQuoteResult = "quote_result"
	EventDone        = "done"
	EventError       = "error"
)

// MarshalJSON emits the exact wire shape for each event type. Per-item
// events always carry their index, including index zero; phase and terminal
// events never carry one.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventResult:
		return json.Marshal(struct {
			Type     string          `json:"type"`
			Index    int             `json:"index"`
			Citation *model.Citation `json:"citation"`
		}{e.Type, e.Index, e.Citation})
	case EventQuotePhase:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Total int    `json:"total"`
		}{e.Type, e.Total})
	case EventQuoteResult:
		return json.Marshal(struct {
			Type  string       `json:"type"`
			Index int          `json:"index"`
			Quote *model.Quote `json:"quote"`
		}{e.Type, e.Index, e.Quote})
	case EventDone:
		return json.Marshal(struct {
			Type       string                      `json:"type"`
			Score      *model.AiScore              `json:"ai_score"`
			HumanError *model.HumanErrorAdjustment `json:"human_error"`
		}{e.Type, e.Score, e.HumanError})
	}
	return json.Marshal(struct {
		Type string `json:"type"`
	}{e.Type})
}

// EmitFunc receives progress events. May be nil.
type EmitFunc func(Event)

// Analyzer runs the full pipeline over brief text
type Analyzer struct {
	citations    *extract.CitationExtractor
	quotes       *extract.QuoteExtractor
	resolver     *jurisdiction.Resolver
	verifier     *verify.Verifier
	scorer       *score.Scorer
	reclassifier *score.Reclassifier
	summarizer   *llm.Summarizer // Optional; nil when disabled
	config       *model.Config
}

// NewAnalyzer wires the pipeline from configuration: one shared provider
// client, one shared throttle, and the optional web fallback and LLM
// summarizer.
func NewAnalyzer(cfg *model.Config) *Analyzer {
	var responseCache cache.Cache
	if cfg.Cache.Enabled {
		responseCache = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}

	provider := courtlistener.NewClient(cfg.Provider, responseCache)
	throttle := worker.NewThrottle(cfg.Provider.RequestDelay)
	web := websearch.NewSearcher(cfg.Provider.HTTPProxy, cfg.Provider.HTTPSProxy, cfg.Provider.NoProxy)

	var summarizer *llm.Summarizer
	if cfg.LLM.Provider != "" {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize LLM provider: %v\n", err)
		} else {
			summarizer = s
		}
	}

	return &Analyzer{
		citations:    extract.NewCitationExtractor(),
		quotes:       extract.NewQuoteExtractor(),
		resolver:     jurisdiction.NewResolver(cfg.Jurisdiction),
		verifier:     verify.NewVerifier(provider, throttle, web),
		scorer:       score.NewScorer(),
		reclassifier: score.NewReclassifier(),
		summarizer:   summarizer,
		config:       cfg,
	}
}

// Extract parses citations and quotes without contacting the provider.
// Used by list-only mode and by the web upload preview.
func (a *Analyzer) Extract(text string) ([]model.Citation, []model.Quote, model.Jurisdiction) {
	citations := a.citations.Extract(text)
	quotes := a.quotes.Extract(text, citations)
	jur := a.resolver.Resolve(text)
	return citations, quotes, jur
}

// Analyze runs the full pipeline. The brief text is used for extraction
// and heuristics only; it is never stored on the returned report.
func (a *Analyzer) Analyze(ctx context.Context, text, source string, flags model.Flags, emit EmitFunc) (*model.Report, error) {
	if emit == nil {
		emit = func(Event) {}
	}

	citations, quotes, jur := a.Extract(text)

	// Phase 1: citation verification, strictly sequential.
	for i := range citations {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("analysis canceled: %w", err)
		}
		a.verifier.VerifyCitation(ctx, &citations[i])
		emit(Event{Type: EventResult, Index: i, Citation: &citations[i]})
	}

	// Score before quote verification: quotes feed only the human-error
	// adjustment, never the aggregate.
	stylistic := heuristics.Run(heuristics.NewInput(text, citations, jur, flags, a.resolver))
	aiScore := a.scorer.Calculate(citations, stylistic)

	// Phase 2: quote verification.
	if len(quotes) > 0 {
		emit(Event{Type: EventQuotePhase, Total: len(quotes)})
		for i := range quotes {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("analysis canceled: %w", err)
			}
			if ci := quotes[i].CiteIndex; ci >= 0 && ci < len(citations) {
				a.verifier.VerifyQuote(ctx, &quotes[i], citations[ci])
			} else {
				quotes[i].Status = model.QuoteNotFound
				quotes[i].Detail = "Could not resolve attributed citation"
			}
			emit(Event{Type: EventQuoteResult, Index: i, Quote: &quotes[i]})
		}
	}

	humanError := a.reclassifier.Reclassify(citations, quotes)
	adjusted := humanError.Apply(aiScore.TotalScore)

	report := &model.Report{
		Source:        source,
		AnalyzedAt:    time.Now().UTC(),
		Flags:         flags,
		Jurisdiction:  jur,
		Citations:     citations,
		Quotes:        quotes,
		Score:         aiScore,
		HumanError:    humanError,
		AdjustedScore: adjusted,
		AdjustedLabel: model.ScoreLabel(adjusted),
	}

	// LLM summary runs after scoring and never affects it.
	if a.summarizer != nil && a.summarizer.IsEnabled() {
		summary, err := a.summarizer.GenerateSummary(ctx, *report)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: LLM summary generation failed: %v\n", err)
		} else if summary != nil {
			report.LLM = summary
		}
	}

	emit(Event{Type: EventDone, Score: &report.Score, HumanError: &report.HumanError})
	return report, nil
}
