package tax

import (
	"math"

	"github.com/castlemilk/taxdoc/internal/rules"
)

// FICABreakdown itemizes payroll taxes on wages and self-employment income.
type FICABreakdown struct {
	SocialSecurityWages float64 `json:"social_security_wages"`
	SocialSecurityTax   float64 `json:"social_security_tax"`
	MedicareWages       float64 `json:"medicare_wages"`
	MedicareTax         float64 `json:"medicare_tax"`

	AdditionalMedicareThreshold float64 `json:"additional_medicare_threshold"`
	AdditionalMedicareTax       float64 `json:"additional_medicare_tax"`

	SelfEmploymentTax float64 `json:"self_employment_tax"`
	Total             float64 `json:"total"`
}

// FICA computes Social Security and Medicare taxes. Social Security applies
// only up to the year's wage base; the additional Medicare rate applies to
// wages over the filing status threshold. Self-employment income is taxed at
// both the employee and employer rates on its net earnings portion, with the
// Social Security share capped by wage base left over after W-2 wages.
func FICA(wages, selfEmploymentIncome float64, status rules.FilingStatus, catalog *rules.Catalog) FICABreakdown {
	ssWages := math.Min(wages, catalog.SSWageBase)
	threshold := rules.AdditionalMedicareThreshold(status)

	b := FICABreakdown{
		SocialSecurityWages:         ssWages,
		SocialSecurityTax:           ssWages * rules.SocialSecurityRate,
		MedicareWages:               wages,
		MedicareTax:                 wages * rules.MedicareRate,
		AdditionalMedicareThreshold: threshold,
	}
	if wages > threshold {
		b.AdditionalMedicareTax = (wages - threshold) * rules.AdditionalMedicareRate
	}
	if selfEmploymentIncome > 0 {
		netEarnings := selfEmploymentIncome * rules.SENetEarningsFactor
		ssPortion := math.Min(netEarnings, math.Max(0, catalog.SSWageBase-wages))
		b.SelfEmploymentTax = ssPortion*rules.SocialSecurityRate*2 +
			netEarnings*rules.MedicareRate*2
	}
	b.Total = b.SocialSecurityTax + b.MedicareTax + b.AdditionalMedicareTax + b.SelfEmploymentTax
	return b
}
