package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func writeRules(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCatalogFileOverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	path := writeRules(t, dir, "federal_2024.yaml", `
year: 2024
standard_deductions:
  single: 15500
  married_filing_jointly: 31000
  married_filing_separately: 15500
  head_of_household: 23000
`)

	catalog, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := catalog.StandardDeduction(Single); got != 15500 {
		t.Fatalf("overridden deduction = %v, want 15500", got)
	}
	// Sections absent from the file inherit the builtin values.
	if got := catalog.SSWageBase; got != 168600 {
		t.Fatalf("SSWageBase = %v, want builtin 168600", got)
	}
	if got, err := catalog.MaxContribution("401k", 30); err != nil || got != 23000 {
		t.Fatalf("401k limit = %v err=%v, want builtin 23000", got, err)
	}
}

func TestLoadCatalogFileBracketOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeRules(t, dir, "federal_2024.yaml", `
year: 2024
ordinary:
  single:
    - {up_to: 20000, rate: 0.10}
    - {up_to: 80000, rate: 0.20}
    - {rate: 0.30}
  married_filing_jointly:
    - {up_to: 40000, rate: 0.10}
    - {up_to: 160000, rate: 0.20}
    - {rate: 0.30}
`)

	catalog, err := LoadCatalogFile(path)
	if err != nil {
		t.Fatal(err)
	}
	table := catalog.OrdinaryBrackets(Single)
	if len(table) != 3 {
		t.Fatalf("bracket count = %d, want 3", len(table))
	}
	if table[0].UpTo != 20000 || table[2].Rate != 0.30 {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestLoadCatalogFileRejectsInvalidTable(t *testing.T) {
	dir := t.TempDir()
	path := writeRules(t, dir, "federal_2024.yaml", `
year: 2024
ordinary:
  single:
    - {up_to: 80000, rate: 0.20}
    - {up_to: 20000, rate: 0.10}
    - {rate: 0.30}
`)
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("expected validation error for non-increasing thresholds")
	}
}

func TestLoadCatalogFileRejectsUnknownStatusKey(t *testing.T) {
	dir := t.TempDir()
	path := writeRules(t, dir, "federal_2024.yaml", `
year: 2024
ordinary:
  singel:
    - {up_to: 20000, rate: 0.10}
    - {rate: 0.30}
`)
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("expected error for misspelled filing status key")
	}

	path = writeRules(t, dir, "federal_2025.yaml", `
year: 2025
standard_deductions:
  singel: 15000
`)
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("expected error for misspelled deduction status key")
	}
}

func TestLoadCatalogFileMissingYear(t *testing.T) {
	dir := t.TempDir()
	path := writeRules(t, dir, "federal_bad.yaml", `
standard_deductions:
  single: 10000
`)
	if _, err := LoadCatalogFile(path); err == nil {
		t.Fatal("expected error for missing year")
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeRules(t, dir, "federal_2026.yaml", `
year: 2026
ordinary:
  single:
    - {up_to: 12000, rate: 0.10}
    - {rate: 0.25}
capital_gains:
  single:
    - {up_to: 50000, rate: 0}
    - {rate: 0.15}
standard_deductions:
  single: 15500
ss_wage_base: 180000
`)

	set, err := LoadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := set.ForYear(2026).Year; got != 2026 {
		t.Fatalf("ForYear(2026) = %d, want 2026", got)
	}
	// Builtins remain available alongside the loaded year.
	if got := set.ForYear(2024).StandardDeduction(Single); got != 14600 {
		t.Fatalf("builtin 2024 deduction = %v, want 14600", got)
	}
}

func TestLoadDirMissingDirectoryYieldsBuiltins(t *testing.T) {
	set, err := LoadDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatal(err)
	}
	if got := set.ForYear(2024).Year; got != 2024 {
		t.Fatalf("ForYear(2024) = %d, want 2024", got)
	}
}
