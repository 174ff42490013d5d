package verify

import (
	"fmt"

	"github.com/castlemilk/taxdoc/internal/document"
)

const (
	maxPlausibleEffectiveRate = 0.40
	minPlausibleEffectiveRate = 0.05
	lowRateIncomeFloor        = 50000
)

// EstimateCheck is a plausibility read on a computed liability.
type EstimateCheck struct {
	Verified      bool             `json:"verified"`
	EffectiveRate float64          `json:"effective_rate"`
	Issues        []document.Issue `json:"issues"`
}

// CheckEstimate sanity-checks a computed tax amount against its income. A
// negative effective rate is an error; a rate above the top federal bracket,
// or implausibly low for a substantial income, is a warning.
func CheckEstimate(income, tax float64) EstimateCheck {
	check := EstimateCheck{Verified: true, Issues: []document.Issue{}}
	if income <= 0 {
		return check
	}
	rate := tax / income
	check.EffectiveRate = rate

	switch {
	case rate < 0:
		check.Issues = append(check.Issues, document.Issue{
			Message:  "negative effective tax rate",
			Severity: document.SeverityError,
		})
		check.Verified = false
	case rate > maxPlausibleEffectiveRate:
		check.Issues = append(check.Issues, document.Issue{
			Message:  fmt.Sprintf("effective rate (%.1f%%) exceeds maximum plausible federal rate", rate*100),
			Severity: document.SeverityWarning,
		})
	case rate < minPlausibleEffectiveRate && income > lowRateIncomeFloor:
		check.Issues = append(check.Issues, document.Issue{
			Message:  fmt.Sprintf("effective rate (%.1f%%) seems too low for income of $%.0f", rate*100, income),
			Severity: document.SeverityWarning,
		})
	}
	return check
}
