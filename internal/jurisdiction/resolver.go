package jurisdiction

import (
	"regexp"
	"strings"

	"github.com/briefcheck/briefcheck/internal/extract"
	"github.com/briefcheck/briefcheck/internal/model"
)

// headerWindow is how much of the document is treated as the caption/header.
const headerWindow = 2000

var circuitNames = []string{
	"First Circuit", "Second Circuit", "Third Circuit", "Fourth Circuit",
	"Fifth Circuit", "Sixth Circuit", "Seventh Circuit", "Eighth Circuit",
	"Ninth Circuit", "Tenth Circuit", "Eleventh Circuit",
	"D.C. Circuit", "Federal Circuit",
}

var stateNames = []string{
	"Alabama", "Alaska", "Arizona", "Arkansas", "California", "Colorado",
	"Connecticut", "Delaware", "Florida", "Georgia", "Hawaii", "Idaho",
	"Illinois", "Indiana", "Iowa", "Kansas", "Kentucky", "Louisiana",
	"Maine", "Maryland", "Massachusetts", "Michigan", "Minnesota",
	"Mississippi", "Missouri", "Montana", "Nebraska", "Nevada",
	"New Hampshire", "New Jersey", "New Mexico", "New York",
	"North Carolina", "North Dakota", "Ohio", "Oklahoma", "Oregon",
	"Pennsylvania", "Rhode Island", "South Carolina", "South Dakota",
	"Tennessee", "Texas", "Utah", "Vermont", "Virginia", "Washington",
	"West Virginia", "Wisconsin", "Wyoming",
}

// stateAbbrevs maps citation-court abbreviation prefixes to state names.
// Used to classify a citation's trailing parenthetical, e.g. "Fla. 3d DCA".
var stateAbbrevs = map[string]string{
	"Ala.": "Alabama", "Alaska": "Alaska", "Ariz.": "Arizona",
	"Ark.": "Arkansas", "Cal.": "California", "Colo.": "Colorado",
	"Conn.": "Connecticut", "Del.": "Delaware", "Fla.": "Florida",
	"Ga.": "Georgia", "Haw.": "Hawaii", "Idaho": "Idaho",
	"Ill.": "Illinois", "Ind.": "Indiana", "Iowa": "Iowa",
	"Kan.": "Kansas", "Ky.": "Kentucky", "La.": "Louisiana",
	"Me.": "Maine", "Md.": "Maryland", "Mass.": "Massachusetts",
	"Mich.": "Michigan", "Minn.": "Minnesota", "Miss.": "Mississippi",
	"Mo.": "Missouri", "Mont.": "Montana", "Neb.": "Nebraska",
	"Nev.": "Nevada", "N.H.": "New Hampshire", "N.J.": "New Jersey",
	"N.M.": "New Mexico", "N.Y.": "New York", "N.C.": "North Carolina",
	"N.D.": "North Dakota", "Ohio": "Ohio", "Okla.": "Oklahoma",
	"Or.": "Oregon", "Pa.": "Pennsylvania", "R.I.": "Rhode Island",
	"S.C.": "South Carolina", "S.D.": "South Dakota", "Tenn.": "Tennessee",
	"Tex.": "Texas", "Utah": "Utah", "Vt.": "Vermont", "Va.": "Virginia",
	"Wash.": "Washington", "W. Va.": "West Virginia", "Wis.": "Wisconsin",
	"Wyo.": "Wyoming",
}

// federalCircuitRe matches circuit identifiers in citation parentheticals,
// e.g. "11th Cir.", "2d Cir.", "D.C. Cir.", "Fed. Cir.".
var federalCircuitRe = regexp.MustCompile(`(?:\d{1,2}(?:st|d|th)|D\.C\.|Fed\.)\s*Cir\b`)

// federalDistrictRe matches district-court identifiers, e.g. "S.D. Fla.",
// "N.D. Cal.", "D. Mass.", plus bankruptcy and claims courts.
var federalDistrictRe = regexp.MustCompile(`\b(?:[NSEMW]\.?\s?D\.|D\.)\s+[A-Z]|\bBankr\.|\bFed\.\s?Cl\b`)

// Resolver infers the brief's home jurisdiction and classifies citations
// against it.
type Resolver struct {
	homeState   string
	homeCircuit string
}

// NewResolver creates a resolver with the injected default jurisdiction,
// assumed when the document header identifies no court.
func NewResolver(cfg model.JurisdictionConfig) *Resolver {
	return &Resolver{homeState: cfg.HomeState, homeCircuit: cfg.HomeCircuit}
}

// Resolve scans the document header for court-identifying phrases. The
// cascade is: federal circuit, federal district + state, state supreme
// court, state appellate court, U.S. Supreme Court; first match wins.
func (r *Resolver) Resolve(text string) model.Jurisdiction {
	header := text
	if len(header) > headerWindow {
		header = header[:headerWindow]
	}

	// Federal circuit
	for _, circuit := range circuitNames {
		if phrase := "Court of Appeals for the " + circuit; containsFold(header, phrase) {
			return model.Jurisdiction{
				Type:      model.JurisdictionFederalCircuit,
				Circuit:   circuit,
				CourtName: "United States " + phrase,
			}
		}
	}

	// Federal district: "... District of <State>"
	for _, state := range stateNames {
		if containsFold(header, "District of "+state) {
			return model.Jurisdiction{
				Type:      model.JurisdictionFederalDistrict,
				State:     state,
				CourtName: "United States District Court, District of " + state,
			}
		}
	}

	// State supreme court
	for _, state := range stateNames {
		for _, phrase := range []string{"Supreme Court of " + state, state + " Supreme Court"} {
			if containsFold(header, phrase) {
				return model.Jurisdiction{
					Type:      model.JurisdictionState,
					State:     state,
					CourtName: phrase,
				}
			}
		}
	}

	// State appellate court
	for _, state := range stateNames {
		for _, phrase := range []string{
			state + " District Court of Appeal",
			"District Court of Appeal of " + state,
			"Court of Appeals of " + state,
			state + " Court of Appeals",
			"Appellate Court of " + state,
		} {
			if containsFold(header, phrase) {
				return model.Jurisdiction{
					Type:      model.JurisdictionState,
					State:     state,
					CourtName: phrase,
				}
			}
		}
	}

	// U.S. Supreme Court
	if containsFold(header, "Supreme Court of the United States") {
		return model.Jurisdiction{
			Type:      model.JurisdictionSCOTUS,
			CourtName: "Supreme Court of the United States",
		}
	}

	// Nothing matched: assume the configured home jurisdiction.
	return model.Jurisdiction{
		Type:    model.JurisdictionState,
		State:   r.homeState,
		Circuit: r.homeCircuit,
	}
}

// OutOfJurisdiction classifies a citation against the resolved home
// jurisdiction. The home state's courts and the U.S. Supreme Court are
// always in-jurisdiction; any other federal court is out unless
// allowFederal; any other state's courts are out unless allowOtherState.
// Court strings that cannot be mapped are conservatively in-jurisdiction.
func (r *Resolver) OutOfJurisdiction(cite model.Citation, home model.Jurisdiction, flags model.Flags) bool {
	homeState := home.State
	if homeState == "" {
		homeState = r.homeState
	}

	// The U.S. Supreme Court binds everyone.
	if extract.IsSupremeReporter(cite.Reporter) || strings.TrimSpace(cite.Court) == "U.S." {
		return false
	}

	court := strings.TrimSpace(cite.Court)

	// Federal circuit and district courts, including the home circuit.
	if federalCircuitRe.MatchString(court) || federalDistrictRe.MatchString(court) ||
		extract.IsFederalReporter(cite.Reporter) {
		return !flags.AllowFederal
	}

	if state := courtState(court); state != "" {
		if state == homeState {
			return false
		}
		return !flags.AllowOtherState
	}

	// Unmappable court strings are treated as in-jurisdiction.
	return false
}

// courtState maps a citation's court abbreviation to a state name, or ""
// when it cannot be mapped. Extraction trims the trailing period from bare
// abbreviations ("Fla." becomes "Fla"), so prefixes are also tried against
// the court string with a period restored.
func courtState(court string) string {
	padded := court + "."
	// Longer abbreviations first so "W. Va." is not read as "Va.".
	if strings.HasPrefix(padded, "W. Va.") || strings.HasPrefix(padded, "W.Va.") {
		return "West Virginia"
	}
	for abbrev, state := range stateAbbrevs {
		if strings.HasPrefix(court, abbrev) || strings.HasPrefix(padded, abbrev) {
			return state
		}
	}
	// Some state reporters omit the parenthetical abbreviation and spell
	// the state out.
	for _, state := range stateNames {
		if strings.HasPrefix(court, state) {
			return state
		}
	}
	return ""
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
