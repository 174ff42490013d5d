package tax

import (
	"math"

	"github.com/castlemilk/taxdoc/internal/rules"
)

// Estimate is the federal liability breakdown for one year's aggregated
// income.
type Estimate struct {
	TotalIncome           float64 `json:"total_income"`
	StandardDeduction     float64 `json:"standard_deduction"`
	TaxableIncome         float64 `json:"taxable_income"`
	TaxableOrdinaryIncome float64 `json:"taxable_ordinary_income"`
	OrdinaryIncomeTax     float64 `json:"ordinary_income_tax"`
	CapitalGainsIncome    float64 `json:"capital_gains_income"`
	CapitalGainsTax       float64 `json:"capital_gains_tax"`
	TotalTax              float64 `json:"total_tax"`
	EffectiveRate         float64 `json:"effective_rate"`
	MarginalRate          float64 `json:"marginal_rate"`
}

// EstimateLiability computes estimated federal tax for the income summary
// under a filing status.
//
// Qualified dividends and long-term gains are carved out of taxable income
// and taxed under the preferential schedule, capped so the carve-out never
// exceeds taxable income when the standard deduction shelters part of it.
// The preferential slice is taxed from the bottom of its own schedule rather
// than stacked on top of ordinary income, which understates tax for filers
// with both high ordinary income and large gains.
func EstimateLiability(income IncomeSummary, status rules.FilingStatus, catalog *rules.Catalog) Estimate {
	totalIncome := income.Total()
	deduction := catalog.StandardDeduction(status)
	taxable := math.Max(0, totalIncome-deduction)

	preferential := math.Min(income.QualifiedDividends+income.LongTermGains, taxable)
	ordinary := taxable - preferential

	ordinaryTable := catalog.OrdinaryBrackets(status)
	ordinaryTax := BracketTax(ordinary, ordinaryTable)
	gainsTax := BracketTax(preferential, catalog.CapitalGainsBrackets(status))
	total := ordinaryTax + gainsTax

	return Estimate{
		TotalIncome:           totalIncome,
		StandardDeduction:     deduction,
		TaxableIncome:         taxable,
		TaxableOrdinaryIncome: ordinary,
		OrdinaryIncomeTax:     ordinaryTax,
		CapitalGainsIncome:    preferential,
		CapitalGainsTax:       gainsTax,
		TotalTax:              total,
		EffectiveRate:         EffectiveRate(total, totalIncome),
		MarginalRate:          MarginalRate(ordinary, ordinaryTable),
	}
}
