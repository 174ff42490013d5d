package service

import (
	"context"
	"fmt"

	"github.com/castlemilk/taxdoc/internal/document"
	"github.com/castlemilk/taxdoc/internal/rules"
	"github.com/castlemilk/taxdoc/internal/tax"
	"github.com/castlemilk/taxdoc/internal/verify"
)

// YearAnalysis is the complete computed picture for one tax year.
type YearAnalysis struct {
	TaxYear         int                    `json:"tax_year"`
	FilingStatus    rules.FilingStatus     `json:"filing_status"`
	DocumentCount   int                    `json:"documents_count"`
	DocumentsByType map[document.Type]int  `json:"documents_by_type"`
	Folders         map[string][]string    `json:"folders"`
	Income          tax.IncomeSummary      `json:"income_summary"`
	Withholding     tax.WithholdingSummary `json:"withholding_summary"`
	Estimate        tax.Estimate           `json:"tax_estimate"`
	FICA            tax.FICABreakdown      `json:"fica"`
	RefundOrOwed    float64                `json:"refund_or_owed"`
	EstimatedRefund float64                `json:"estimated_refund"`
	EstimatedOwed   float64                `json:"estimated_owed"`
	EstimateCheck   verify.EstimateCheck   `json:"estimate_check"`
	NeedsReview     []string               `json:"needs_review,omitempty"`
}

// AnalyzeYear aggregates a year's documents and estimates the federal
// liability under the given filing status.
func (s *TaxService) AnalyzeYear(ctx context.Context, taxYear int, status rules.FilingStatus) (*YearAnalysis, error) {
	docs, err := s.store.ListDocuments(ctx, taxYear)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found for tax year %d", taxYear)
	}

	catalog := s.rules.ForYear(taxYear)
	income, withholding := tax.Aggregate(docs)
	estimate := tax.EstimateLiability(income, status, catalog)

	analysis := &YearAnalysis{
		TaxYear:         taxYear,
		FilingStatus:    status,
		DocumentCount:   len(docs),
		DocumentsByType: make(map[document.Type]int),
		Folders:         make(map[string][]string),
		Income:          income,
		Withholding:     withholding,
		Estimate:        estimate,
		FICA:            tax.FICA(income.Wages, income.Other, status, catalog),
		RefundOrOwed:    withholding.Federal - estimate.TotalTax,
		EstimateCheck:   verify.CheckEstimate(estimate.TaxableIncome, estimate.TotalTax),
	}
	if analysis.RefundOrOwed > 0 {
		analysis.EstimatedRefund = analysis.RefundOrOwed
	} else {
		analysis.EstimatedOwed = -analysis.RefundOrOwed
	}

	for _, doc := range docs {
		analysis.DocumentsByType[doc.Type]++
		folder := document.Folder(doc.Type)
		analysis.Folders[folder] = append(analysis.Folders[folder], doc.ID)
		if doc.NeedsReview {
			analysis.NeedsReview = append(analysis.NeedsReview, doc.ID)
		}
	}

	s.logger.Info("year analyzed",
		"tax_year", taxYear,
		"filing_status", status,
		"documents", len(docs),
		"total_income", income.Total(),
		"total_tax", estimate.TotalTax,
		"refund_or_owed", analysis.RefundOrOwed)
	return analysis, nil
}

// DetectWashSales scans every brokerage transaction stored for a year.
func (s *TaxService) DetectWashSales(ctx context.Context, taxYear int) (tax.WashSaleReport, error) {
	docs, err := s.store.ListDocuments(ctx, taxYear)
	if err != nil {
		return tax.WashSaleReport{}, err
	}

	var transactions []document.Transaction
	for _, doc := range docs {
		if brokerage, ok := doc.Fields.(*document.BrokerageFields); ok {
			transactions = append(transactions, brokerage.Transactions...)
		}
	}
	report := tax.DetectWashSales(transactions)
	if len(report.Matches) > 0 {
		s.logger.Warn("wash sales detected",
			"tax_year", taxYear,
			"matches", len(report.Matches),
			"disallowed_loss", report.TotalDisallowedLoss)
	}
	return report, nil
}
