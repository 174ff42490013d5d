package tax

import "github.com/castlemilk/taxdoc/internal/document"

// IncomeSummary totals income by category across a year's documents.
// QualifiedDividends is a subset of OrdinaryDividends, not a separate stream.
type IncomeSummary struct {
	Wages              float64 `json:"wages"`
	Interest           float64 `json:"interest"`
	OrdinaryDividends  float64 `json:"dividends_ordinary"`
	QualifiedDividends float64 `json:"dividends_qualified"`
	ShortTermGains     float64 `json:"capital_gains_short"`
	LongTermGains      float64 `json:"capital_gains_long"`
	Other              float64 `json:"other"`
}

// Total returns total income for tax purposes. Qualified dividends are
// excluded because they are already counted inside ordinary dividends.
func (s IncomeSummary) Total() float64 {
	return s.Wages + s.Interest + s.OrdinaryDividends +
		s.ShortTermGains + s.LongTermGains + s.Other
}

// WithholdingSummary totals tax already withheld across a year's documents.
type WithholdingSummary struct {
	Federal        float64 `json:"federal"`
	State          float64 `json:"state"`
	SocialSecurity float64 `json:"social_security"`
	Medicare       float64 `json:"medicare"`
}

// Aggregate walks a document set and accumulates income and withholding.
// Documents without extracted fields and types outside the supported income
// forms contribute nothing.
func Aggregate(docs []*document.TaxDocument) (IncomeSummary, WithholdingSummary) {
	var income IncomeSummary
	var withholding WithholdingSummary

	for _, doc := range docs {
		if doc.Fields == nil {
			continue
		}
		switch fields := doc.Fields.(type) {
		case *document.W2Fields:
			income.Wages += document.Float(fields.Wages)
			withholding.Federal += document.Float(fields.FederalTaxWithheld)
			withholding.State += document.Float(fields.StateIncomeTax)
			withholding.SocialSecurity += document.Float(fields.SocialSecurityTax)
			withholding.Medicare += document.Float(fields.MedicareTax)

		case *document.InterestFields:
			income.Interest += document.Float(fields.InterestIncome)
			withholding.Federal += document.Float(fields.FederalTaxWithheld)

		case *document.DividendFields:
			income.OrdinaryDividends += document.Float(fields.OrdinaryDividends)
			income.QualifiedDividends += document.Float(fields.QualifiedDividends)
			withholding.Federal += document.Float(fields.FederalTaxWithheld)

		case *document.BrokerageFields:
			income.ShortTermGains += document.Float(fields.Summary.ShortTermGainLoss)
			income.LongTermGains += document.Float(fields.Summary.LongTermGainLoss)
			withholding.Federal += document.Float(fields.FederalTaxWithheld)

		case *document.MiscIncomeFields:
			// 1099-NEC reports in box 1, 1099-MISC other income in box 7.
			amount := document.Float(fields.Compensation)
			if amount == 0 {
				amount = document.Float(fields.OtherIncome)
			}
			income.Other += amount
		}
	}

	return income, withholding
}
