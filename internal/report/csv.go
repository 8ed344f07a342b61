package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/briefcheck/briefcheck/internal/model"
)

// WriteCSV writes the verification results as CSV: a citation section
// followed, when quotes were checked, by a quotation section separated by
// a blank row.
func WriteCSV(w io.Writer, rep *model.Report) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Citation", "Parties", "Volume", "Reporter", "Page",
		"Court", "Year", "Status", "Matched Case Name", "Detail", "Suggestion",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, c := range rep.Citations {
		row := []string{
			c.Label(),
			c.Parties,
			c.Volume,
			c.Reporter,
			c.Page,
			c.Court,
			c.Year,
			string(c.Status),
			c.MatchedCaseName,
			c.Detail,
			c.Suggestion,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if len(rep.Quotes) > 0 {
		_ = cw.Write([]string{})
		_ = cw.Write([]string{"QUOTATION VERIFICATION"})
		_ = cw.Write([]string{
			"Quoted Text (first 100 chars)", "Attributed Citation",
			"Status", "Found In", "Detail",
		})
		for _, q := range rep.Quotes {
			row := []string{
				truncate(q.Text, 100),
				q.CiteLabel,
				string(q.Status),
				q.FoundIn,
				q.Detail,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv quote row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
