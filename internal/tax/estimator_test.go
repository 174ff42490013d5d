package tax

import (
	"math"
	"testing"

	"github.com/castlemilk/taxdoc/internal/rules"
)

func TestEstimateLiabilityWagesOnly(t *testing.T) {
	catalog := rules.Builtin().ForYear(2024)
	income := IncomeSummary{Wages: 100000}

	est := EstimateLiability(income, rules.Single, catalog)

	if est.TotalIncome != 100000 {
		t.Fatalf("TotalIncome = %v, want 100000", est.TotalIncome)
	}
	if est.StandardDeduction != 14600 {
		t.Fatalf("StandardDeduction = %v, want 14600", est.StandardDeduction)
	}
	if est.TaxableIncome != 85400 {
		t.Fatalf("TaxableIncome = %v, want 85400", est.TaxableIncome)
	}
	// 1160 + 4266 + (85400-47150)*0.22
	if math.Abs(est.OrdinaryIncomeTax-13841) > 0.01 {
		t.Fatalf("OrdinaryIncomeTax = %v, want 13841", est.OrdinaryIncomeTax)
	}
	if est.CapitalGainsTax != 0 || est.CapitalGainsIncome != 0 {
		t.Fatalf("unexpected capital gains component: %+v", est)
	}
	if est.TotalTax != est.OrdinaryIncomeTax {
		t.Fatalf("TotalTax = %v, want %v", est.TotalTax, est.OrdinaryIncomeTax)
	}
}

func TestEstimateLiabilityQualifiedDividendsNotDoubleCounted(t *testing.T) {
	catalog := rules.Builtin().ForYear(2024)
	income := IncomeSummary{
		Wages:              50000,
		OrdinaryDividends:  10000,
		QualifiedDividends: 10000,
	}

	est := EstimateLiability(income, rules.Single, catalog)

	// Qualified dividends are a subset of ordinary dividends.
	if est.TotalIncome != 60000 {
		t.Fatalf("TotalIncome = %v, want 60000", est.TotalIncome)
	}
	if est.CapitalGainsIncome != 10000 {
		t.Fatalf("CapitalGainsIncome = %v, want 10000", est.CapitalGainsIncome)
	}
	if est.TaxableOrdinaryIncome != 35400 {
		t.Fatalf("TaxableOrdinaryIncome = %v, want 35400", est.TaxableOrdinaryIncome)
	}
}

func TestEstimateLiabilityPreferentialCappedByDeduction(t *testing.T) {
	catalog := rules.Builtin().ForYear(2024)
	income := IncomeSummary{
		OrdinaryDividends:  8000,
		QualifiedDividends: 8000,
	}

	est := EstimateLiability(income, rules.Single, catalog)

	// The standard deduction shelters all income, so nothing is taxed at
	// either schedule.
	if est.TaxableIncome != 0 {
		t.Fatalf("TaxableIncome = %v, want 0", est.TaxableIncome)
	}
	if est.CapitalGainsIncome != 0 {
		t.Fatalf("CapitalGainsIncome = %v, want 0", est.CapitalGainsIncome)
	}
	if est.TotalTax != 0 {
		t.Fatalf("TotalTax = %v, want 0", est.TotalTax)
	}
}

func TestEstimateLiabilityLongTermGainsAtZeroRate(t *testing.T) {
	catalog := rules.Builtin().ForYear(2024)
	income := IncomeSummary{Wages: 60000, LongTermGains: 20000}

	est := EstimateLiability(income, rules.Single, catalog)

	if est.TaxableIncome != 65400 {
		t.Fatalf("TaxableIncome = %v, want 65400", est.TaxableIncome)
	}
	if est.CapitalGainsIncome != 20000 {
		t.Fatalf("CapitalGainsIncome = %v, want 20000", est.CapitalGainsIncome)
	}
	// The 20k preferential slice sits below the 47,025 zero-rate ceiling.
	if est.CapitalGainsTax != 0 {
		t.Fatalf("CapitalGainsTax = %v, want 0", est.CapitalGainsTax)
	}
	// 1160 + (45400-11600)*0.12
	if math.Abs(est.OrdinaryIncomeTax-5216) > 0.01 {
		t.Fatalf("OrdinaryIncomeTax = %v, want 5216", est.OrdinaryIncomeTax)
	}
}

func TestEstimateLiabilityLargeGainsHitFifteenPercent(t *testing.T) {
	catalog := rules.Builtin().ForYear(2024)
	income := IncomeSummary{LongTermGains: 100000}

	est := EstimateLiability(income, rules.Single, catalog)

	// taxable = 85400, all preferential: 47025 at 0% + 38375 at 15%
	want := 38375 * 0.15
	if math.Abs(est.CapitalGainsTax-want) > 0.01 {
		t.Fatalf("CapitalGainsTax = %v, want %v", est.CapitalGainsTax, want)
	}
	if est.OrdinaryIncomeTax != 0 {
		t.Fatalf("OrdinaryIncomeTax = %v, want 0", est.OrdinaryIncomeTax)
	}
}

func TestEstimateLiabilityShortTermGainsAreOrdinary(t *testing.T) {
	catalog := rules.Builtin().ForYear(2024)
	withGains := EstimateLiability(IncomeSummary{Wages: 50000, ShortTermGains: 10000}, rules.Single, catalog)
	withWages := EstimateLiability(IncomeSummary{Wages: 60000}, rules.Single, catalog)

	if withGains.TotalTax != withWages.TotalTax {
		t.Fatalf("short-term gains taxed %v, same wages taxed %v", withGains.TotalTax, withWages.TotalTax)
	}
}
