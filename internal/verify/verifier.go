// Package verify cross-checks extracted document fields against the source
// text and against arithmetic the form itself implies, and scores how much
// the extraction can be trusted.
package verify

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/castlemilk/taxdoc/internal/document"
	"github.com/castlemilk/taxdoc/internal/rules"
)

const (
	// presenceFloor is the amount below which a value missing from the
	// source text is not flagged.
	presenceFloor = 100

	ssWageTolerance   = 0.10 // box 3 may exceed box 1 by this much before it is an error
	ssTaxTolerance    = 0.05
	medicareTolerance = 0.10 // wider than SS to absorb additional Medicare withholding
	proceedsTolerance = 1.0  // dollars
)

// Extraction verifies extracted fields against the document's raw text and
// runs per-form arithmetic checks. The result's confidence is the share of
// non-null fields that were confirmed in the source, reduced by one for each
// error-level issue; a document with no non-null fields scores 0.5.
func Extraction(fields document.Fields, rawText string) *document.VerificationResult {
	result := &document.VerificationResult{
		Issues:         []document.Issue{},
		VerifiedFields: []string{},
	}
	if fields == nil {
		result.Verified = true
		result.Confidence = 0.5
		return result
	}

	searchText := strings.ReplaceAll(rawText, ",", "")
	for _, field := range fields.NumericFields() {
		if field.Value <= 0 {
			continue
		}
		if appearsIn(field.Value, searchText) || field.Value <= presenceFloor {
			result.VerifiedFields = append(result.VerifiedFields, field.Name)
			continue
		}
		result.Issues = append(result.Issues, document.Issue{
			Field:    field.Name,
			Value:    field.Value,
			Message:  "value not found in source document",
			Severity: document.SeverityWarning,
		})
	}

	switch f := fields.(type) {
	case *document.W2Fields:
		result.Issues = append(result.Issues, checkW2(f)...)
	case *document.BrokerageFields:
		result.Issues = append(result.Issues, checkBrokerage(f)...)
	}

	errors := 0
	for _, issue := range result.Issues {
		if issue.Severity == document.SeverityError {
			errors++
		}
	}
	if nonNull := fields.NonNullCount(); nonNull > 0 {
		result.Confidence = math.Max(0, float64(len(result.VerifiedFields)-errors)/float64(nonNull))
	} else {
		result.Confidence = 0.5
	}
	result.Verified = errors == 0
	return result
}

// appearsIn reports whether the amount occurs in the comma-stripped source
// text under any of its common renderings.
func appearsIn(value float64, searchText string) bool {
	var formats []string
	if value == math.Trunc(value) {
		formats = append(formats, strconv.FormatInt(int64(value), 10))
	} else {
		formats = append(formats, strconv.FormatFloat(value, 'f', -1, 64))
	}
	formats = append(formats, fmt.Sprintf("%.2f", value))
	for _, format := range formats {
		if strings.Contains(searchText, format) {
			return true
		}
	}
	return false
}

// checkW2 validates the payroll arithmetic a W-2 implies.
func checkW2(f *document.W2Fields) []document.Issue {
	var issues []document.Issue

	wages := document.Float(f.Wages)
	ssWages := document.Float(f.SocialSecurityWages)
	if wages > 0 && ssWages > wages*(1+ssWageTolerance) {
		issues = append(issues, document.Issue{
			Field:    "box_3",
			Value:    ssWages,
			Message:  fmt.Sprintf("social security wages (%.2f) exceed total wages (%.2f)", ssWages, wages),
			Severity: document.SeverityError,
		})
	}

	if ssWages > 0 {
		ssTax := document.Float(f.SocialSecurityTax)
		expected := ssWages * rules.SocialSecurityRate
		if math.Abs(ssTax-expected) > expected*ssTaxTolerance {
			issues = append(issues, document.Issue{
				Field:    "box_4",
				Value:    ssTax,
				Message:  fmt.Sprintf("social security tax (%.2f) does not match %.1f%% of SS wages (expected ~%.2f)", ssTax, rules.SocialSecurityRate*100, expected),
				Severity: document.SeverityWarning,
			})
		}
	}

	if medicareWages := document.Float(f.MedicareWages); medicareWages > 0 {
		medicareTax := document.Float(f.MedicareTax)
		expected := medicareWages * rules.MedicareRate
		if math.Abs(medicareTax-expected) > expected*medicareTolerance {
			issues = append(issues, document.Issue{
				Field:    "box_6",
				Value:    medicareTax,
				Message:  fmt.Sprintf("medicare tax (%.2f) differs from expected %.2f%% (expected ~%.2f)", medicareTax, rules.MedicareRate*100, expected),
				Severity: document.SeverityWarning,
			})
		}
	}

	return issues
}

// checkBrokerage validates that the declared 1099-B summary matches its own
// transaction rows.
func checkBrokerage(f *document.BrokerageFields) []document.Issue {
	if len(f.Transactions) == 0 {
		return nil
	}
	var calculated float64
	for _, tx := range f.Transactions {
		calculated += document.Float(tx.Proceeds)
	}
	reported := document.Float(f.Summary.TotalProceeds)
	if math.Abs(calculated-reported) > proceedsTolerance {
		return []document.Issue{{
			Field:    "summary.total_proceeds",
			Value:    reported,
			Message:  fmt.Sprintf("summary proceeds (%.2f) do not match transaction total (%.2f)", reported, calculated),
			Severity: document.SeverityError,
		}}
	}
	return nil
}
