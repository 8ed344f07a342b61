// Package report renders analysis results for people (ANSI console) and
// machines (CSV).
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/briefcheck/briefcheck/internal/model"
)

const (
	ansiReset  = "\033[0m"
	ansiBold   = "\033[1m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiGray   = "\033[90m"
)

// Renderer writes human-readable reports
type Renderer struct {
	w     io.Writer
	color bool
}

// NewRenderer creates a renderer. With color disabled the ANSI codes are
// omitted entirely.
func NewRenderer(w io.Writer, color bool) *Renderer {
	return &Renderer{w: w, color: color}
}

func (r *Renderer) paint(code, s string) string {
	if !r.color {
		return s
	}
	return code + s + ansiReset
}

// statusOrder puts problems before successes.
var statusOrder = []model.CitationStatus{
	model.CitationNotFound,
	model.CitationMismatch,
	model.CitationUnrecognized,
	model.CitationError,
	model.CitationVerified,
}

func (r *Renderer) statusLabel(status model.CitationStatus) string {
	switch status {
	case model.CitationVerified:
		return r.paint(ansiGreen, "VERIFIED")
	case model.CitationMismatch:
		return r.paint(ansiYellow, "NAME MISMATCH")
	case model.CitationNotFound:
		return r.paint(ansiRed, "NOT FOUND")
	case model.CitationUnrecognized:
		return r.paint(ansiGray, "UNRECOGNIZED REPORTER")
	case model.CitationError:
		return r.paint(ansiRed, "ERROR")
	default:
		return r.paint(ansiGray, "PENDING")
	}
}

// Render writes the full report: citations grouped by status, quote
// results, the AI score breakdown, and the human-error adjustment.
func (r *Renderer) Render(rep *model.Report) {
	rule := strings.Repeat("=", 70)

	fmt.Fprintf(r.w, "\n%s\n", rule)
	fmt.Fprintf(r.w, "%s\n", r.paint(ansiBold, "  CITATION VERIFICATION REPORT"))
	fmt.Fprintf(r.w, "%s\n\n", rule)

	if len(rep.Citations) == 0 {
		fmt.Fprintf(r.w, "  No case citations found in the document.\n\n")
		return
	}

	groups := make(map[model.CitationStatus][]model.Citation)
	for _, c := range rep.Citations {
		groups[c.Status] = append(groups[c.Status], c)
	}

	for _, status := range statusOrder {
		group := groups[status]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(r.w, "  %s (%d)\n", r.statusLabel(status), len(group))
		fmt.Fprintf(r.w, "  %s\n", strings.Repeat("-", 50))
		for _, c := range group {
			fmt.Fprintf(r.w, "    %s\n", c.Parties)
			fmt.Fprintf(r.w, "    %s (%s %s)\n", c.Label(), c.Court, c.Year)
			if c.Detail != "" {
				fmt.Fprintf(r.w, "    -> %s\n", c.Detail)
			}
			fmt.Fprintln(r.w)
		}
	}

	r.renderQuotes(rep.Quotes)
	r.renderSummary(rep)
	r.renderScore(rep)

	if rep.LLM != nil && rep.LLM.SummaryMD != "" {
		fmt.Fprintf(r.w, "%s\n", rule)
		fmt.Fprintf(r.w, "%s\n\n", r.paint(ansiBold, "  PLAIN-LANGUAGE SUMMARY (LLM, not part of the score)"))
		fmt.Fprintf(r.w, "%s\n\n", rep.LLM.SummaryMD)
	}
}

func (r *Renderer) renderQuotes(quotes []model.Quote) {
	if len(quotes) == 0 {
		return
	}
	fmt.Fprintf(r.w, "  %s (%d)\n", r.paint(ansiBold, "QUOTATIONS"), len(quotes))
	fmt.Fprintf(r.w, "  %s\n", strings.Repeat("-", 50))
	for _, q := range quotes {
		label := r.paint(ansiGray, strings.ToUpper(string(q.Status)))
		switch q.Status {
		case model.QuoteVerified:
			label = r.paint(ansiGreen, "VERIFIED")
		case model.QuoteFoundElsewhere:
			label = r.paint(ansiYellow, "FOUND ELSEWHERE")
		case model.QuoteNotFound:
			label = r.paint(ansiRed, "NOT FOUND")
		}
		fmt.Fprintf(r.w, "    [%s] %s\n", label, truncate(q.Text, 100))
		fmt.Fprintf(r.w, "    attributed to %s\n", q.CiteLabel)
		if q.Detail != "" {
			fmt.Fprintf(r.w, "    -> %s\n", q.Detail)
		}
		fmt.Fprintln(r.w)
	}
}

func (r *Renderer) renderSummary(rep *model.Report) {
	rule := strings.Repeat("=", 70)
	notFound := rep.CountStatus(model.CitationNotFound)
	mismatch := rep.CountStatus(model.CitationMismatch)

	fmt.Fprintf(r.w, "%s\n", rule)
	fmt.Fprintf(r.w, "  SUMMARY: %d citations checked\n", len(rep.Citations))
	fmt.Fprintf(r.w, "    %s\n", r.paint(ansiGreen, fmt.Sprintf("Verified:     %d", rep.CountStatus(model.CitationVerified))))
	fmt.Fprintf(r.w, "    %s\n", r.paint(ansiRed, fmt.Sprintf("Not found:    %d", notFound)))
	fmt.Fprintf(r.w, "    %s\n", r.paint(ansiYellow, fmt.Sprintf("Mismatched:   %d", mismatch)))
	fmt.Fprintf(r.w, "    %s\n", r.paint(ansiGray, fmt.Sprintf("Unrecognized: %d", rep.CountStatus(model.CitationUnrecognized))))
	if errs := rep.CountStatus(model.CitationError); errs > 0 {
		fmt.Fprintf(r.w, "    %s\n", r.paint(ansiRed, fmt.Sprintf("Errors:       %d", errs)))
	}
	fmt.Fprintf(r.w, "%s\n\n", rule)

	if notFound > 0 || mismatch > 0 {
		fmt.Fprintf(r.w, "  %s\n", r.paint(ansiRed+ansiBold,
			fmt.Sprintf("WARNING: %d citation(s) could not be verified.", notFound+mismatch)))
		fmt.Fprintf(r.w, "  These may be AI-generated / hallucinated case citations.\n\n")
	}
}

func (r *Renderer) renderScore(rep *model.Report) {
	fmt.Fprintf(r.w, "  %s\n", r.paint(ansiBold, "AI GENERATION SCORE"))
	fmt.Fprintf(r.w, "  %s\n", strings.Repeat("-", 50))
	for _, c := range rep.Score.Criteria {
		marker := " "
		if c.Points > 0 {
			marker = "+"
		}
		flag := ""
		if c.AutoFlag {
			flag = r.paint(ansiRed, " [AUTO-FLAG]")
		}
		fmt.Fprintf(r.w, "   %s %2d/%-2d %s%s\n", marker, c.Points, c.Max, c.Description, flag)
		if c.Points > 0 && c.Detail != "" {
			fmt.Fprintf(r.w, "           %s\n", r.paint(ansiGray, c.Detail))
		}
	}
	fmt.Fprintln(r.w)

	fmt.Fprintf(r.w, "    Total:    %d/100  %s\n", rep.Score.TotalScore, rep.Score.Label)
	if rep.Score.AutoFlagged {
		fmt.Fprintf(r.w, "    %s\n", r.paint(ansiRed+ansiBold, "AUTO-FLAGGED for manual review"))
	}

	if len(rep.HumanError.Items) > 0 {
		fmt.Fprintf(r.w, "\n  %s\n", r.paint(ansiBold, "HUMAN ERROR ADJUSTMENT"))
		fmt.Fprintf(r.w, "  %s\n", strings.Repeat("-", 50))
		for _, it := range rep.HumanError.Items {
			fmt.Fprintf(r.w, "    %+d  [%s] %s\n", it.Points, it.Classification, it.Description)
		}
		fmt.Fprintf(r.w, "\n    Adjusted: %d/100  %s\n", rep.AdjustedScore, rep.AdjustedLabel)
	}
	fmt.Fprintln(r.w)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
