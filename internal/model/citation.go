package model

// CitationStatus is the verification outcome for a citation
type CitationStatus string

const (
	CitationPending      CitationStatus = "pending"      // Not yet checked
	CitationVerified     CitationStatus = "verified"     // Exists and name matches
	CitationMismatch     CitationStatus = "mismatch"     // Exists but name differs
	CitationNotFound     CitationStatus = "not_found"    // Absent from the provider database
	CitationUnrecognized CitationStatus = "unrecognized" // Reporter the provider cannot parse
	CitationError        CitationStatus = "error"        // Transport failure or malformed response
)

// Citation is a parsed case-law reference extracted from a brief.
// Status, MatchedCaseName, Detail and Suggestion are written exactly once
// by the verification pass; everything else is set at extraction time.
type Citation struct {
	FullText string `json:"full_text"` // The matched citation text as it appeared
	Parties  string `json:"parties"`   // Normalized party names
	Volume   string `json:"volume"`
	Reporter string `json:"reporter"` // Canonical reporter abbreviation
	Page     string `json:"page"`
	PinCite  string `json:"pin_cite,omitempty"`
	Court    string `json:"court,omitempty"`
	Year     string `json:"year,omitempty"`

	Status          CitationStatus `json:"status"`
	MatchedCaseName string         `json:"matched_case_name,omitempty"`
	Detail          string         `json:"detail,omitempty"`
	Suggestion      string         `json:"suggestion,omitempty"` // "Did you mean" alternate citation
}

// Key returns the identity used for deduplication. Citations sharing
// (volume, reporter, page) are the same physical reference.
func (c Citation) Key() string {
	return c.Volume + " " + c.Reporter + " " + c.Page
}

// Label returns the display form "volume reporter page".
func (c Citation) Label() string {
	return c.Volume + " " + c.Reporter + " " + c.Page
}

// QuoteStatus is the verification outcome for a quoted passage
type QuoteStatus string

const (
	QuotePending        QuoteStatus = "pending"
	QuoteVerified       QuoteStatus = "verified"        // Found under the cited case
	QuoteFoundElsewhere QuoteStatus = "found_elsewhere" // Found, but in a different case
	QuoteNotFound       QuoteStatus = "not_found"       // Not found anywhere
)

// Quote is a quoted span attributed to a citation. CiteIndex is a
// back-reference into the run's citation list, not ownership.
type Quote struct {
	Text      string `json:"text"`       // At most 500 characters
	CiteIndex int    `json:"cite_index"` // Index of the attributed citation
	CiteLabel string `json:"cite_label"` // Display string of the attributed citation

	Status    QuoteStatus `json:"status"`
	FoundIn   string      `json:"found_in,omitempty"`   // Case name the text was actually found in
	FoundCite string      `json:"found_cite,omitempty"` // Citation string the text was actually found under
	Detail    string      `json:"detail,omitempty"`
}

// JurisdictionType classifies the court a brief is filed in
type JurisdictionType string

const (
	JurisdictionFederalCircuit  JurisdictionType = "federal_circuit"
	JurisdictionFederalDistrict JurisdictionType = "federal_district"
	JurisdictionState           JurisdictionType = "state"
	JurisdictionSCOTUS          JurisdictionType = "scotus"
	JurisdictionNone            JurisdictionType = "none"
)

// Jurisdiction is the brief's home jurisdiction, derived once from the
// document header and read-only afterward.
type Jurisdiction struct {
	Type      JurisdictionType `json:"type"`
	Circuit   string           `json:"circuit,omitempty"` // e.g. "Eleventh Circuit"
	State     string           `json:"state,omitempty"`   // e.g. "Florida"
	CourtName string           `json:"court_name,omitempty"`
}
