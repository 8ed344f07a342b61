package extract

import "strings"

// Reporter abbreviation patterns, grouped by tier. Each entry is a regex
// fragment with escaped periods and optional internal spacing. Order is
// significant: the alternation tries earlier fragments first, and longer
// variants of the same reporter precede shorter ones.

var federalSupremeReporters = []string{
	`U\.S\.`,
	`S\.\s?Ct\.`,
	`L\.\s?Ed\.(?:\s?2d)?`,
}

var federalCircuitDistrictReporters = []string{
	`F\.4th`,
	`F\.3d`,
	`F\.2d`,
	`F\.`,
	`F\.\s?Supp\.\s?3d`,
	`F\.\s?Supp\.\s?2d`,
	`F\.\s?Supp\.`,
	`F\.\s?App[’']x`,
	`B\.R\.`,
	`Fed\.\s?Cl\.`,
	`M\.J\.`,
	`Vet\.\s?App\.`,
}

var regionalReporters = []string{
	`N\.E\.3d`, `N\.E\.2d`, `N\.E\.`,
	`N\.W\.2d`, `N\.W\.`,
	`S\.E\.2d`, `S\.E\.`,
	`S\.W\.3d`, `S\.W\.2d`, `S\.W\.`,
	`So\.\s?3d`, `So\.\s?2d`, `So\.`,
	`P\.3d`, `P\.2d`, `P\.`,
	`A\.3d`, `A\.2d`, `A\.`,
}

var stateReporters = []string{
	`Cal\.\s?Rptr\.\s?3d`, `Cal\.\s?Rptr\.\s?2d`, `Cal\.\s?Rptr\.`,
	`N\.Y\.S\.3d`, `N\.Y\.S\.2d`, `N\.Y\.S\.`,
	`Ill\.\s?Dec\.`,
	`Ill\.\s?2d`,
	`Wis\.\s?2d`,
	`Mich\.\s?App\.`,
	`Ohio\s?St\.\s?3d`, `Ohio\s?St\.\s?2d`,
	`Pa\.\s?Super\.`,
	`Wash\.\s?2d`, `Wash\.\s?App\.`,
	`Mass\.\s?App\.\s?Ct\.`,
}

// reporterAlternation builds the precedence-ordered alternation used by
// both citation grammars: Supreme, then Circuit/District, then Regional,
// then State reporters.
func reporterAlternation() string {
	all := make([]string, 0,
		len(federalSupremeReporters)+len(federalCircuitDistrictReporters)+
			len(regionalReporters)+len(stateReporters))
	all = append(all, federalSupremeReporters...)
	all = append(all, federalCircuitDistrictReporters...)
	all = append(all, regionalReporters...)
	all = append(all, stateReporters...)
	return "(?:" + strings.Join(all, "|") + ")"
}

// NormalizeReporter collapses internal whitespace so "So.  2d" and "So. 2d"
// compare equal across extraction and provider responses.
func NormalizeReporter(reporter string) string {
	return strings.Join(strings.Fields(reporter), " ")
}

// IsSupremeReporter reports whether the reporter belongs to the U.S.
// Supreme Court tier (U.S., S. Ct., L. Ed.).
func IsSupremeReporter(reporter string) bool {
	r := NormalizeReporter(reporter)
	return r == "U.S." || strings.HasPrefix(r, "S. Ct") || strings.HasPrefix(r, "S.Ct") ||
		strings.HasPrefix(r, "L. Ed") || strings.HasPrefix(r, "L.Ed")
}

// IsFederalReporter reports whether the reporter covers federal circuit,
// district, or specialty courts.
func IsFederalReporter(reporter string) bool {
	r := NormalizeReporter(reporter)
	for _, prefix := range []string{"F.", "B.R.", "Fed. Cl.", "Fed.Cl.", "M.J.", "Vet. App.", "Vet.App."} {
		if strings.HasPrefix(r, prefix) {
			return true
		}
	}
	return false
}
