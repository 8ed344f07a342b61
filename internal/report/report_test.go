package report

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/briefcheck/briefcheck/internal/model"
)

func sampleReport() *model.Report {
	citations := []model.Citation{
		{
			Parties: "Smith v. Jones", Volume: "123", Reporter: "So. 2d", Page: "456",
			Court: "Fla", Year: "1980", Status: model.CitationVerified,
			MatchedCaseName: "Smith v. Jones", Detail: `Matches: "Smith v. Jones"`,
		},
		{
			Parties: "Invented v. Authority", Volume: "999", Reporter: "So. 2d", Page: "888",
			Court: "Fla", Year: "2005", Status: model.CitationNotFound,
			Detail: "Citation not found in the case-law database", Suggestion: "998 So. 2d 888",
		},
	}
	quotes := []model.Quote{
		{
			Text: "the lower tribunal must conduct a meaningful inquiry before denying such a motion",
			CiteIndex: 0, CiteLabel: "Smith v. Jones, 123 So. 2d 456",
			Status: model.QuoteVerified, Detail: "Quote found in the cited case",
		},
	}
	return &model.Report{
		Source:    "brief.txt",
		Citations: citations,
		Quotes:    quotes,
		Score: model.AiScore{
			TotalScore:  10,
			AutoFlagged: true,
			Label:       model.ScoreLabel(10),
			Criteria: []model.CriterionResult{
				{Name: "citations_not_found", Description: "Citations absent from the case-law database",
					Points: 10, Max: 20, Detail: "1 citation(s) not found", AutoFlag: true},
			},
		},
		HumanError: model.HumanErrorAdjustment{
			Items: []model.HumanErrorItem{{
				Description:    "999 So. 2d 888 not found, but a near miss exists",
				Classification: model.ClassificationHumanError,
				Points:         -10,
			}},
			Adjustment: -10,
		},
		AdjustedScore: 0,
		AdjustedLabel: model.ScoreLabel(0),
	}
}

func TestRender_GroupsAndSummary(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, false).Render(sampleReport())
	out := buf.String()

	// Problems before successes.
	notFoundIdx := strings.Index(out, "NOT FOUND")
	verifiedIdx := strings.Index(out, "VERIFIED")
	if notFoundIdx < 0 || verifiedIdx < 0 || notFoundIdx > verifiedIdx {
		t.Errorf("expected NOT FOUND group before VERIFIED group:\n%s", out)
	}

	for _, want := range []string{
		"SUMMARY: 2 citations checked",
		"Verified:     1",
		"Not found:    1",
		"WARNING: 1 citation(s) could not be verified.",
		"AI GENERATION SCORE",
		"AUTO-FLAGGED",
		"HUMAN ERROR ADJUSTMENT",
		"Adjusted: 0/100",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestRender_NoColorHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, false).Render(sampleReport())
	if strings.Contains(buf.String(), "\033[") {
		t.Error("color disabled but ANSI escapes present")
	}
}

func TestRender_ColorHasEscapes(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, true).Render(sampleReport())
	if !strings.Contains(buf.String(), ansiGreen) {
		t.Error("color enabled but no ANSI escapes present")
	}
}

func TestRender_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	NewRenderer(&buf, false).Render(&model.Report{})
	if !strings.Contains(buf.String(), "No case citations found") {
		t.Errorf("unexpected empty-report output:\n%s", buf.String())
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	sections := strings.SplitN(buf.String(), "\nQUOTATION VERIFICATION", 2)
	if len(sections) != 2 {
		t.Fatalf("missing quotation section:\n%s", buf.String())
	}

	rd := csv.NewReader(strings.NewReader(strings.TrimSpace(sections[0])))
	rows, err := rd.ReadAll()
	if err != nil {
		t.Fatalf("read citation section: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2 citations", len(rows))
	}
	if rows[0][0] != "Citation" || rows[0][10] != "Suggestion" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "123 So. 2d 456" {
		t.Errorf("citation column = %q", rows[1][0])
	}
	if rows[2][7] != "not_found" || rows[2][10] != "998 So. 2d 888" {
		t.Errorf("not-found row = %v", rows[2])
	}
}

func TestWriteCSV_NoQuotesOmitsSection(t *testing.T) {
	rep := sampleReport()
	rep.Quotes = nil

	var buf bytes.Buffer
	if err := WriteCSV(&buf, rep); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if strings.Contains(buf.String(), "QUOTATION VERIFICATION") {
		t.Error("quotation section present without quotes")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 100); got != "short" {
		t.Errorf("truncate(short) = %q", got)
	}
	long := strings.Repeat("x", 150)
	if got := truncate(long, 100); len([]rune(got)) != 103 || !strings.HasSuffix(got, "...") {
		t.Errorf("truncate long = %d runes", len([]rune(got)))
	}
}
