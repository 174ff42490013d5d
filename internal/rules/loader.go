package rules

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// catalogFile is the YAML shape of a rule catalog override. Sections left
// empty inherit from the built-in catalog for the same year; a file for a
// year with no built-in catalog must supply every section.
type catalogFile struct {
	Year         int                       `yaml:"year"`
	Ordinary     map[string][]bracketEntry `yaml:"ordinary"`
	CapitalGains map[string][]bracketEntry `yaml:"capital_gains"`

	StandardDeductions         map[string]float64 `yaml:"standard_deductions"`
	AdditionalDeductionSingle  *float64           `yaml:"additional_deduction_single"`
	AdditionalDeductionMarried *float64           `yaml:"additional_deduction_married"`

	ContributionLimits map[string]limitEntry `yaml:"contribution_limits"`
	SSWageBase         *float64              `yaml:"ss_wage_base"`
}

// bracketEntry is one rung in a YAML rate table. A missing or zero up_to
// marks the unbounded top bracket.
type bracketEntry struct {
	UpTo float64 `yaml:"up_to"`
	Rate float64 `yaml:"rate"`
}

type limitEntry struct {
	Base       float64 `yaml:"base"`
	CatchUp    float64 `yaml:"catch_up"`
	CatchUpAge int     `yaml:"catch_up_age"`
}

func toBracketTable(entries []bracketEntry) BracketTable {
	table := make(BracketTable, len(entries))
	for i, e := range entries {
		upTo := e.UpTo
		if upTo == 0 {
			upTo = math.Inf(1)
		}
		table[i] = Bracket{UpTo: upTo, Rate: e.Rate}
	}
	return table
}

// toStatusTables rejects unrecognized status keys: the single-filer fallback
// is for lookups, not for authoring mistakes in a rules file.
func toStatusTables(m map[string][]bracketEntry) (map[FilingStatus]BracketTable, error) {
	out := make(map[FilingStatus]BracketTable, len(m))
	for status, entries := range m {
		st, ok := filingStatus(status)
		if !ok {
			return nil, fmt.Errorf("unknown filing status %q", status)
		}
		out[st] = toBracketTable(entries)
	}
	return out, nil
}

// LoadCatalogFile parses a federal rule catalog from a YAML file and merges
// it over the matching built-in catalog when one exists.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if file.Year == 0 {
		return nil, fmt.Errorf("%s: missing year", filepath.Base(path))
	}

	catalog := &Catalog{
		Year:               file.Year,
		Ordinary:           map[FilingStatus]BracketTable{},
		CapitalGains:       map[FilingStatus]BracketTable{},
		StandardDeductions: map[FilingStatus]float64{},
		ContributionLimits: map[string]ContributionLimit{},
	}
	if base := Builtin().catalogs[file.Year]; base != nil {
		*catalog = *base
	}

	if len(file.Ordinary) > 0 {
		tables, err := toStatusTables(file.Ordinary)
		if err != nil {
			return nil, fmt.Errorf("%s: ordinary: %w", filepath.Base(path), err)
		}
		catalog.Ordinary = tables
	}
	if len(file.CapitalGains) > 0 {
		tables, err := toStatusTables(file.CapitalGains)
		if err != nil {
			return nil, fmt.Errorf("%s: capital_gains: %w", filepath.Base(path), err)
		}
		catalog.CapitalGains = tables
	}
	if len(file.StandardDeductions) > 0 {
		deductions := make(map[FilingStatus]float64, len(file.StandardDeductions))
		for status, amount := range file.StandardDeductions {
			st, ok := filingStatus(status)
			if !ok {
				return nil, fmt.Errorf("%s: standard_deductions: unknown filing status %q", filepath.Base(path), status)
			}
			deductions[st] = amount
		}
		catalog.StandardDeductions = deductions
	}
	if file.AdditionalDeductionSingle != nil {
		catalog.AdditionalDeductionSingle = *file.AdditionalDeductionSingle
	}
	if file.AdditionalDeductionMarried != nil {
		catalog.AdditionalDeductionMarried = *file.AdditionalDeductionMarried
	}
	if len(file.ContributionLimits) > 0 {
		limits := make(map[string]ContributionLimit, len(file.ContributionLimits))
		for account, entry := range file.ContributionLimits {
			limits[account] = ContributionLimit(entry)
		}
		catalog.ContributionLimits = limits
	}
	if file.SSWageBase != nil {
		catalog.SSWageBase = *file.SSWageBase
	}

	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return catalog, nil
}

// LoadDir loads every federal_<year>.yaml file in dir into a set layered
// over the built-in catalogs. A missing directory yields the builtins alone.
func LoadDir(dir string) (*Set, error) {
	set := Builtin()
	matches, err := filepath.Glob(filepath.Join(dir, "federal_*.yaml"))
	if err != nil {
		return nil, err
	}
	for _, path := range matches {
		catalog, err := LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		if err := set.Add(catalog); err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}
	return set, nil
}
