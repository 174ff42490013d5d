// Package rules holds the versioned federal tax rule catalog: bracket
// tables, standard deductions, contribution limits, and payroll tax rates.
package rules

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// FilingStatus identifies the federal filing status a rule lookup applies to.
type FilingStatus string

const (
	Single                FilingStatus = "single"
	MarriedFilingJointly  FilingStatus = "married_filing_jointly"
	MarriedFilingSeparate FilingStatus = "married_filing_separately"
	HeadOfHousehold       FilingStatus = "head_of_household"
)

// ParseFilingStatus maps free-form status strings onto a known filing status.
// Unrecognized input falls back to single.
func ParseFilingStatus(s string) FilingStatus {
	status, _ := filingStatus(s)
	return status
}

func filingStatus(s string) (FilingStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", "_")
	normalized = strings.ReplaceAll(normalized, " ", "_")
	switch normalized {
	case "single":
		return Single, true
	case "married_filing_jointly", "mfj", "married_joint", "joint":
		return MarriedFilingJointly, true
	case "married_filing_separately", "married_filing_separate", "mfs", "married_separate":
		return MarriedFilingSeparate, true
	case "head_of_household", "hoh":
		return HeadOfHousehold, true
	default:
		return Single, false
	}
}

// Payroll tax rates. These are set by statute and have been stable across the
// supported years, so they live here rather than in per-year catalogs.
const (
	SocialSecurityRate     = 0.062
	MedicareRate           = 0.0145
	AdditionalMedicareRate = 0.009

	// Net earnings factor applied to self-employment income before SE tax.
	SENetEarningsFactor = 0.9235
)

// AdditionalMedicareThreshold returns the wage threshold above which the
// additional Medicare rate applies.
func AdditionalMedicareThreshold(status FilingStatus) float64 {
	if status == MarriedFilingJointly {
		return 250000
	}
	return 200000
}

// Bracket is one rung of a progressive rate table. UpTo is the upper bound of
// the bracket's income span; the top bracket uses +Inf.
type Bracket struct {
	UpTo float64
	Rate float64
}

// BracketTable is an ordered progressive rate schedule for one filing status.
type BracketTable []Bracket

// Validate checks that the table is non-empty, strictly increasing, and
// capped by an unbounded top bracket.
func (t BracketTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("empty bracket table")
	}
	prev := 0.0
	for i, b := range t {
		if b.Rate < 0 || b.Rate > 1 {
			return fmt.Errorf("bracket %d: rate %v out of range", i, b.Rate)
		}
		if b.UpTo <= prev {
			return fmt.Errorf("bracket %d: threshold %v not above %v", i, b.UpTo, prev)
		}
		prev = b.UpTo
	}
	if !math.IsInf(t[len(t)-1].UpTo, 1) {
		return fmt.Errorf("top bracket must be unbounded")
	}
	return nil
}

// ContributionLimit caps a tax-advantaged account type for one year.
// CatchUp of zero means the account has no catch-up provision.
type ContributionLimit struct {
	Base       float64
	CatchUp    float64
	CatchUpAge int
}

// Catalog bundles every rule that varies by tax year.
type Catalog struct {
	Year                       int
	Ordinary                   map[FilingStatus]BracketTable
	CapitalGains               map[FilingStatus]BracketTable
	StandardDeductions         map[FilingStatus]float64
	AdditionalDeductionSingle  float64 // extra standard deduction per 65+/blind condition, single or HoH
	AdditionalDeductionMarried float64 // same, for married statuses
	ContributionLimits         map[string]ContributionLimit
	SSWageBase                 float64
}

// Validate checks internal consistency of the catalog.
func (c *Catalog) Validate() error {
	if c.Year < 2000 || c.Year > 2100 {
		return fmt.Errorf("implausible tax year %d", c.Year)
	}
	// Single is the fallback status, so every rule map must cover it.
	if _, ok := c.Ordinary[Single]; !ok {
		return fmt.Errorf("missing ordinary brackets for single")
	}
	if _, ok := c.CapitalGains[Single]; !ok {
		return fmt.Errorf("missing capital gains brackets for single")
	}
	if _, ok := c.StandardDeductions[Single]; !ok {
		return fmt.Errorf("missing standard deduction for single")
	}
	for status, table := range c.Ordinary {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("ordinary brackets for %s: %w", status, err)
		}
	}
	for status, table := range c.CapitalGains {
		if err := table.Validate(); err != nil {
			return fmt.Errorf("capital gains brackets for %s: %w", status, err)
		}
	}
	for status, d := range c.StandardDeductions {
		if d < 0 {
			return fmt.Errorf("negative standard deduction for %s", status)
		}
	}
	if c.SSWageBase <= 0 {
		return fmt.Errorf("social security wage base must be positive")
	}
	return nil
}

// statusOrFallback resolves a filing status against a rule map, falling back
// to single when the status has no entry.
func statusOrFallback[V any](m map[FilingStatus]V, status FilingStatus) V {
	if v, ok := m[status]; ok {
		return v
	}
	return m[Single]
}

// OrdinaryBrackets returns the ordinary income schedule for a filing status.
func (c *Catalog) OrdinaryBrackets(status FilingStatus) BracketTable {
	return statusOrFallback(c.Ordinary, status)
}

// CapitalGainsBrackets returns the long-term gains schedule for a filing status.
func (c *Catalog) CapitalGainsBrackets(status FilingStatus) BracketTable {
	return statusOrFallback(c.CapitalGains, status)
}

// StandardDeduction returns the base standard deduction for a filing status.
func (c *Catalog) StandardDeduction(status FilingStatus) float64 {
	return statusOrFallback(c.StandardDeductions, status)
}

// StandardDeductionWith returns the standard deduction including the extra
// amounts for age 65+ and blindness. Each condition adds one increment per
// qualifying person; conditions counts qualifying conditions across both
// spouses for joint filers.
func (c *Catalog) StandardDeductionWith(status FilingStatus, conditions int) float64 {
	base := c.StandardDeduction(status)
	if conditions <= 0 {
		return base
	}
	increment := c.AdditionalDeductionSingle
	if status == MarriedFilingJointly || status == MarriedFilingSeparate {
		increment = c.AdditionalDeductionMarried
	}
	return base + float64(conditions)*increment
}

// MaxContribution returns the contribution cap for an account type given the
// taxpayer's age at year end. Unknown account types are an error.
func (c *Catalog) MaxContribution(accountType string, age int) (float64, error) {
	key := strings.ToLower(strings.TrimSpace(accountType))
	limit, ok := c.ContributionLimits[key]
	if !ok {
		known := make([]string, 0, len(c.ContributionLimits))
		for k := range c.ContributionLimits {
			known = append(known, k)
		}
		sort.Strings(known)
		return 0, fmt.Errorf("unknown account type %q (known: %s)", accountType, strings.Join(known, ", "))
	}
	amount := limit.Base
	if limit.CatchUp > 0 && age >= limit.CatchUpAge {
		amount += limit.CatchUp
	}
	return amount, nil
}

// Set is a collection of catalogs keyed by year with nearest-year fallback.
type Set struct {
	catalogs map[int]*Catalog
}

// NewSet builds a rule set from the given catalogs. At least one catalog is
// required and each must validate.
func NewSet(catalogs ...*Catalog) (*Set, error) {
	if len(catalogs) == 0 {
		return nil, fmt.Errorf("at least one catalog required")
	}
	s := &Set{catalogs: make(map[int]*Catalog, len(catalogs))}
	for _, c := range catalogs {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("catalog %d: %w", c.Year, err)
		}
		s.catalogs[c.Year] = c
	}
	return s, nil
}

// Builtin returns a rule set with the compiled-in catalogs.
func Builtin() *Set {
	s, err := NewSet(catalog2024(), catalog2025())
	if err != nil {
		panic(err) // built-in data is validated by tests
	}
	return s
}

// Add inserts or replaces the catalog for its year.
func (s *Set) Add(c *Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.catalogs[c.Year] = c
	return nil
}

// Years returns the years with catalogs, ascending.
func (s *Set) Years() []int {
	years := make([]int, 0, len(s.catalogs))
	for y := range s.catalogs {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// ForYear returns the catalog for the requested year, or the nearest
// available year when there is no exact match. Ties resolve to the later
// year.
func (s *Set) ForYear(year int) *Catalog {
	if c, ok := s.catalogs[year]; ok {
		return c
	}
	var best *Catalog
	bestDist := math.MaxInt
	for y, c := range s.catalogs {
		dist := y - year
		if dist < 0 {
			dist = -dist
		}
		if dist < bestDist || (dist == bestDist && best != nil && y > best.Year) {
			best = c
			bestDist = dist
		}
	}
	return best
}
