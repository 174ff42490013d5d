// Package document defines the tax-document data model shared by the
// verification and computation layers: document types, the per-form typed
// field variants produced by the document-understanding service, and the
// verification metadata stored alongside each document.
package document

import (
	"strings"
	"time"
)

// Type identifies the kind of tax form a document was classified as.
type Type string

const (
	// Source documents (used to prepare returns).
	TypeW2       Type = "W2"
	TypeW2G      Type = "W2_G"
	Type1099INT  Type = "1099_INT"
	Type1099DIV  Type = "1099_DIV"
	Type1099B    Type = "1099_B"
	Type1099NEC  Type = "1099_NEC"
	Type1099MISC Type = "1099_MISC"
	Type1099R    Type = "1099_R"
	Type1099G    Type = "1099_G"
	Type1099K    Type = "1099_K"
	Type1098     Type = "1098"
	Type1098T    Type = "1098_T"
	Type1098E    Type = "1098_E"
	Type5498     Type = "5498"
	TypeK1       Type = "K1"

	// Completed returns (collected for review, not aggregated).
	Type1040        Type = "1040"
	Type1040SR      Type = "1040_SR"
	Type1040NR      Type = "1040_NR"
	Type1040X       Type = "1040_X"
	TypeScheduleA   Type = "SCHEDULE_A"
	TypeScheduleB   Type = "SCHEDULE_B"
	TypeScheduleC   Type = "SCHEDULE_C"
	TypeScheduleD   Type = "SCHEDULE_D"
	TypeScheduleE   Type = "SCHEDULE_E"
	TypeScheduleSE  Type = "SCHEDULE_SE"
	TypeStateReturn Type = "STATE_RETURN"

	TypeUnknown Type = "UNKNOWN"
)

var knownTypes = map[Type]bool{
	TypeW2: true, TypeW2G: true,
	Type1099INT: true, Type1099DIV: true, Type1099B: true,
	Type1099NEC: true, Type1099MISC: true, Type1099R: true,
	Type1099G: true, Type1099K: true,
	Type1098: true, Type1098T: true, Type1098E: true,
	Type5498: true, TypeK1: true,
	Type1040: true, Type1040SR: true, Type1040NR: true, Type1040X: true,
	TypeScheduleA: true, TypeScheduleB: true, TypeScheduleC: true,
	TypeScheduleD: true, TypeScheduleE: true, TypeScheduleSE: true,
	TypeStateReturn: true,
	TypeUnknown:     true,
}

// ParseType maps an external type string onto the fixed enumeration.
// Anything unrecognized becomes TypeUnknown rather than an error.
func ParseType(s string) Type {
	normalized := strings.TrimSpace(s)
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	t := Type(strings.ToUpper(normalized))
	if knownTypes[t] {
		return t
	}
	return TypeUnknown
}

// Severity classifies a verification issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is a single finding from field verification.
type Issue struct {
	Field    string   `json:"field"`
	Value    float64  `json:"value,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// VerificationResult is the outcome of cross-checking a document's extracted
// fields against its source text and internal arithmetic.
type VerificationResult struct {
	Verified       bool     `json:"verified"`
	Confidence     float64  `json:"confidence"`
	Issues         []Issue  `json:"issues"`
	VerifiedFields []string `json:"verified_fields,omitempty"`
}

// HasErrors reports whether any issue carries error severity.
func (r VerificationResult) HasErrors() bool {
	for _, i := range r.Issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// TaxDocument is one processed tax form. The raw text and content hash are
// immutable once stored; the verification and review fields may be recomputed.
type TaxDocument struct {
	ID                       string              `json:"id"`
	TaxYear                  int                 `json:"tax_year"`
	Type                     Type                `json:"document_type"`
	IssuerName               string              `json:"issuer_name"`
	IssuerEIN                string              `json:"issuer_ein,omitempty"`
	RawText                  string              `json:"raw_text"`
	Fields                   Fields              `json:"-"`
	ContentHash              string              `json:"content_hash"`
	ClassificationConfidence float64             `json:"classification_confidence"`
	Verification             *VerificationResult `json:"verification,omitempty"`
	CombinedConfidence       float64             `json:"combined_confidence"`
	NeedsReview              bool                `json:"needs_review"`
	CreatedAt                time.Time           `json:"created_at"`
	UpdatedAt                time.Time           `json:"updated_at"`
}

// Clone returns a copy safe to hand to another caller. Fields values are
// treated as immutable and shared.
func (d *TaxDocument) Clone() *TaxDocument {
	cp := *d
	if d.Verification != nil {
		v := *d.Verification
		v.Issues = append([]Issue(nil), d.Verification.Issues...)
		v.VerifiedFields = append([]string(nil), d.Verification.VerifiedFields...)
		cp.Verification = &v
	}
	return &cp
}
