// Package tax implements the deterministic computation side of the engine:
// progressive bracket math, document income aggregation, liability
// estimation, payroll taxes, and wash sale detection.
package tax

import (
	"math"

	"github.com/castlemilk/taxdoc/internal/rules"
)

// BracketTax applies a progressive rate table to an income amount. Income at
// or below zero is taxed at zero.
func BracketTax(income float64, table rules.BracketTable) float64 {
	if income <= 0 {
		return 0
	}
	tax := 0.0
	remaining := income
	prev := 0.0
	for _, bracket := range table {
		if remaining <= 0 {
			break
		}
		span := remaining
		if !math.IsInf(bracket.UpTo, 1) {
			span = math.Min(remaining, bracket.UpTo-prev)
		}
		tax += span * bracket.Rate
		remaining -= span
		prev = bracket.UpTo
	}
	return tax
}

// MarginalRate returns the rate that would apply to the next dollar of
// ordinary income at the given taxable income.
func MarginalRate(income float64, table rules.BracketTable) float64 {
	if len(table) == 0 {
		return 0
	}
	for _, bracket := range table {
		if income < bracket.UpTo {
			return bracket.Rate
		}
	}
	return table[len(table)-1].Rate
}

// EffectiveRate returns total tax over total income, or zero for non-positive
// income.
func EffectiveRate(tax, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return tax / income
}
