package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/castlemilk/taxdoc/internal/rules"
)

// ExportFormat selects the report serialization.
type ExportFormat string

const (
	ExportCSV  ExportFormat = "csv"
	ExportJSON ExportFormat = "json"
)

// Export is a serialized year analysis ready to download.
type Export struct {
	Data        []byte `json:"data"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

// ExportReport renders a year's analysis as CSV or JSON. An empty format
// defaults to CSV.
func (s *TaxService) ExportReport(ctx context.Context, taxYear int, status rules.FilingStatus, format ExportFormat) (*Export, error) {
	analysis, err := s.AnalyzeYear(ctx, taxYear, status)
	if err != nil {
		return nil, err
	}

	if format == "" {
		format = ExportCSV
	}
	switch format {
	case ExportJSON:
		data, err := json.MarshalIndent(analysis, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal JSON: %w", err)
		}
		return &Export{
			Data:        data,
			Filename:    fmt.Sprintf("tax-analysis-%d.json", taxYear),
			ContentType: "application/json",
		}, nil

	case ExportCSV:
		var buf strings.Builder
		w := csv.NewWriter(&buf)
		_ = w.Write([]string{"Field", "Amount ($)"})
		_ = w.Write([]string{"Tax Year", fmt.Sprintf("%d", analysis.TaxYear)})
		_ = w.Write([]string{"Filing Status", string(analysis.FilingStatus)})
		_ = w.Write([]string{"Documents", fmt.Sprintf("%d", analysis.DocumentCount)})
		_ = w.Write([]string{"Wages", fmt.Sprintf("%.2f", analysis.Income.Wages)})
		_ = w.Write([]string{"Interest", fmt.Sprintf("%.2f", analysis.Income.Interest)})
		_ = w.Write([]string{"Ordinary Dividends", fmt.Sprintf("%.2f", analysis.Income.OrdinaryDividends)})
		_ = w.Write([]string{"Qualified Dividends", fmt.Sprintf("%.2f", analysis.Income.QualifiedDividends)})
		_ = w.Write([]string{"Short-Term Capital Gains", fmt.Sprintf("%.2f", analysis.Income.ShortTermGains)})
		_ = w.Write([]string{"Long-Term Capital Gains", fmt.Sprintf("%.2f", analysis.Income.LongTermGains)})
		_ = w.Write([]string{"Other Income", fmt.Sprintf("%.2f", analysis.Income.Other)})
		_ = w.Write([]string{"Total Income", fmt.Sprintf("%.2f", analysis.Estimate.TotalIncome)})
		_ = w.Write([]string{"Standard Deduction", fmt.Sprintf("%.2f", analysis.Estimate.StandardDeduction)})
		_ = w.Write([]string{"Taxable Income", fmt.Sprintf("%.2f", analysis.Estimate.TaxableIncome)})
		_ = w.Write([]string{"Ordinary Income Tax", fmt.Sprintf("%.2f", analysis.Estimate.OrdinaryIncomeTax)})
		_ = w.Write([]string{"Capital Gains Tax", fmt.Sprintf("%.2f", analysis.Estimate.CapitalGainsTax)})
		_ = w.Write([]string{"Total Tax", fmt.Sprintf("%.2f", analysis.Estimate.TotalTax)})
		_ = w.Write([]string{"Effective Rate", fmt.Sprintf("%.4f", analysis.Estimate.EffectiveRate)})
		_ = w.Write([]string{"Federal Withholding", fmt.Sprintf("%.2f", analysis.Withholding.Federal)})
		_ = w.Write([]string{"State Withholding", fmt.Sprintf("%.2f", analysis.Withholding.State)})
		_ = w.Write([]string{"Refund/Owed", fmt.Sprintf("%.2f", analysis.RefundOrOwed)})
		w.Flush()
		return &Export{
			Data:        []byte(buf.String()),
			Filename:    fmt.Sprintf("tax-analysis-%d.csv", taxYear),
			ContentType: "text/csv",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}
