package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castlemilk/taxdoc/internal/document"
	"github.com/castlemilk/taxdoc/internal/rules"
	"github.com/castlemilk/taxdoc/internal/store"
)

func newTestService() *TaxService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewTaxService(store.NewMemoryStore(), rules.Builtin(), logger)
}

const w2RawText = `Form W-2 Wage and Tax Statement 2024
Employer: ACME WIDGETS INC
Box 1 Wages: 85,000.00
Box 2 Federal income tax withheld: 12,000.00
Box 3 Social security wages: 85,000.00
Box 4 Social security tax withheld: 5,270.00
Box 5 Medicare wages: 85,000.00
Box 6 Medicare tax withheld: 1,232.50
Box 17 State income tax: 4,000.00`

func w2Request() IngestRequest {
	return IngestRequest{
		TaxYear:      2024,
		DocumentType: "W2",
		IssuerName:   "ACME WIDGETS INC",
		RawText:      w2RawText,
		ExtractedFields: json.RawMessage(`{
			"box_1": 85000, "box_2": 12000, "box_3": 85000,
			"box_4": 5270, "box_5": 85000, "box_6": 1232.50, "box_17": 4000
		}`),
		ClassificationConfidence: 0.95,
	}
}

func TestIngestDocument(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	doc, err := svc.IngestDocument(ctx, w2Request())
	require.NoError(t, err)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, document.TypeW2, doc.Type)
	assert.Equal(t, "Acme Widgets", doc.IssuerName)
	assert.NotEmpty(t, doc.ContentHash)
	require.NotNil(t, doc.Verification)
	assert.True(t, doc.Verification.Verified)
	assert.False(t, doc.NeedsReview)
	assert.InDelta(t, 0.975, doc.CombinedConfidence, 1e-9)

	stored, err := svc.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, stored.ID)
}

func TestIngestDocumentRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.IngestDocument(ctx, w2Request())
	require.NoError(t, err)

	_, err = svc.IngestDocument(ctx, w2Request())
	assert.ErrorIs(t, err, store.ErrDuplicateDocument)
}

func TestIngestDocumentValidatesYear(t *testing.T) {
	svc := newTestService()
	req := w2Request()
	req.TaxYear = 24
	_, err := svc.IngestDocument(context.Background(), req)
	assert.Error(t, err)
}

func TestIngestDocumentFlagsLowConfidence(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	req := w2Request()
	req.ClassificationConfidence = 0.6
	doc, err := svc.IngestDocument(ctx, req)
	require.NoError(t, err)
	assert.True(t, doc.NeedsReview)
}

func TestReverifyDocument(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	doc, err := svc.IngestDocument(ctx, w2Request())
	require.NoError(t, err)

	reverified, err := svc.ReverifyDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.CombinedConfidence, reverified.CombinedConfidence)
	assert.Equal(t, doc.NeedsReview, reverified.NeedsReview)
	assert.False(t, reverified.UpdatedAt.Before(doc.UpdatedAt))

	_, err = svc.ReverifyDocument(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAnalyzeYear(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.IngestDocument(ctx, w2Request())
	require.NoError(t, err)

	_, err = svc.IngestDocument(ctx, IngestRequest{
		TaxYear:      2024,
		DocumentType: "1099-INT",
		IssuerName:   "ally bank",
		RawText:      "Interest income: 1,200.00",
		ExtractedFields: json.RawMessage(`{
			"box_1": 1200
		}`),
		ClassificationConfidence: 0.9,
	})
	require.NoError(t, err)

	analysis, err := svc.AnalyzeYear(ctx, 2024, rules.Single)
	require.NoError(t, err)

	assert.Equal(t, 2024, analysis.TaxYear)
	assert.Equal(t, 2, analysis.DocumentCount)
	assert.Equal(t, 1, analysis.DocumentsByType[document.TypeW2])
	assert.Equal(t, 86200.0, analysis.Income.Total())
	assert.Equal(t, 12000.0, analysis.Withholding.Federal)
	assert.Equal(t, 14600.0, analysis.Estimate.StandardDeduction)
	assert.Equal(t, 71600.0, analysis.Estimate.TaxableIncome)
	// 1160 + 4266 + (71600-47150)*0.22 = 10805
	assert.InDelta(t, 10805, analysis.Estimate.TotalTax, 0.01)
	assert.InDelta(t, 12000-10805, analysis.RefundOrOwed, 0.01)
	assert.InDelta(t, 1195, analysis.EstimatedRefund, 0.01)
	assert.Zero(t, analysis.EstimatedOwed)
	assert.True(t, analysis.EstimateCheck.Verified)
	assert.Contains(t, analysis.Folders, "Income/Employment")
	assert.Empty(t, analysis.NeedsReview)
}

func TestAnalyzeYearNoDocuments(t *testing.T) {
	svc := newTestService()
	_, err := svc.AnalyzeYear(context.Background(), 2024, rules.Single)
	assert.Error(t, err)
}

func TestDetectWashSalesAcrossDocuments(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.IngestDocument(ctx, IngestRequest{
		TaxYear:      2024,
		DocumentType: "1099-B",
		IssuerName:   "robinhood",
		RawText:      "Proceeds 9500.00 total proceeds 9500.00",
		ExtractedFields: json.RawMessage(`{
			"transactions": [
				{"description": "VTI", "date_acquired": "2023-06-01", "date_sold": "2024-03-15",
				 "proceeds": 9500, "cost_basis": 10000, "gain_loss": -500, "term": "long"},
				{"description": "VTI - Vanguard Total Stock Market ETF", "date_acquired": "2024-03-20"}
			],
			"summary": {"total_proceeds": 9500, "long_term_gain_loss": -500}
		}`),
		ClassificationConfidence: 0.9,
	})
	require.NoError(t, err)

	report, err := svc.DetectWashSales(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, 500.0, report.TotalDisallowedLoss)
	assert.Equal(t, 5, report.Matches[0].DaysApart)
}

func TestExportReport(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.IngestDocument(ctx, w2Request())
	require.NoError(t, err)

	csvExport, err := svc.ExportReport(ctx, 2024, rules.Single, ExportCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", csvExport.ContentType)
	assert.Equal(t, "tax-analysis-2024.csv", csvExport.Filename)
	body := string(csvExport.Data)
	assert.True(t, strings.Contains(body, "Wages,85000.00"), "csv body: %s", body)
	assert.True(t, strings.Contains(body, "Filing Status,single"), "csv body: %s", body)

	jsonExport, err := svc.ExportReport(ctx, 2024, rules.Single, ExportJSON)
	require.NoError(t, err)
	assert.Equal(t, "application/json", jsonExport.ContentType)
	var decoded YearAnalysis
	require.NoError(t, json.Unmarshal(jsonExport.Data, &decoded))
	assert.Equal(t, 2024, decoded.TaxYear)

	_, err = svc.ExportReport(ctx, 2024, rules.Single, ExportFormat("xml"))
	assert.Error(t, err)
}
