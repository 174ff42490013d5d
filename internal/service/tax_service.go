// Package service wires document ingestion, verification, and year analysis
// together behind the HTTP API.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/castlemilk/taxdoc/internal/document"
	"github.com/castlemilk/taxdoc/internal/rules"
	"github.com/castlemilk/taxdoc/internal/store"
	"github.com/castlemilk/taxdoc/internal/verify"
)

// TaxService coordinates the document store, rule catalogs, and verification.
type TaxService struct {
	store  store.Store
	rules  *rules.Set
	logger *slog.Logger
}

// NewTaxService creates a service over the given store and rule set.
func NewTaxService(st store.Store, ruleSet *rules.Set, logger *slog.Logger) *TaxService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaxService{store: st, rules: ruleSet, logger: logger}
}

// Rules exposes the service's rule set for catalog lookups.
func (s *TaxService) Rules() *rules.Set { return s.rules }

// IngestRequest is a document as delivered by the external
// document-understanding service: a classified type plus the loosely-typed
// extracted field payload and the source text it came from.
type IngestRequest struct {
	TaxYear                  int             `json:"tax_year"`
	DocumentType             string          `json:"document_type"`
	IssuerName               string          `json:"issuer_name"`
	IssuerEIN                string          `json:"issuer_ein"`
	RawText                  string          `json:"raw_text"`
	ExtractedFields          json.RawMessage `json:"extracted_fields"`
	ClassificationConfidence float64         `json:"classification_confidence"`
}

// IngestDocument validates, verifies, scores, and stores one document.
// A document whose content hash already exists for the tax year is rejected
// with store.ErrDuplicateDocument.
func (s *TaxService) IngestDocument(ctx context.Context, req IngestRequest) (*document.TaxDocument, error) {
	if req.TaxYear < 2000 || req.TaxYear > 2100 {
		return nil, fmt.Errorf("implausible tax year %d", req.TaxYear)
	}

	docType := document.ParseType(req.DocumentType)
	fields, err := document.ParseFields(docType, req.ExtractedFields)
	if err != nil {
		return nil, err
	}

	verification := verify.Extraction(fields, req.RawText)
	review := verify.Combine(req.ClassificationConfidence, docType, verification)

	now := time.Now().UTC()
	doc := &document.TaxDocument{
		ID:                       uuid.NewString(),
		TaxYear:                  req.TaxYear,
		Type:                     docType,
		IssuerName:               document.NormalizeIssuer(req.IssuerName),
		IssuerEIN:                req.IssuerEIN,
		RawText:                  req.RawText,
		Fields:                   fields,
		ContentHash:              contentHash(req.TaxYear, req.RawText),
		ClassificationConfidence: req.ClassificationConfidence,
		Verification:             verification,
		CombinedConfidence:       review.CombinedConfidence,
		NeedsReview:              review.NeedsReview,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	if err := s.store.CreateDocument(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("document ingested",
		"id", doc.ID,
		"type", doc.Type,
		"tax_year", doc.TaxYear,
		"issuer", doc.IssuerName,
		"confidence", doc.CombinedConfidence,
		"needs_review", doc.NeedsReview)
	return doc, nil
}

// GetDocument fetches a stored document by ID.
func (s *TaxService) GetDocument(ctx context.Context, id string) (*document.TaxDocument, error) {
	return s.store.GetDocument(ctx, id)
}

// DeleteDocument removes a stored document.
func (s *TaxService) DeleteDocument(ctx context.Context, id string) error {
	return s.store.DeleteDocument(ctx, id)
}

// ListDocuments returns all documents for a tax year.
func (s *TaxService) ListDocuments(ctx context.Context, taxYear int) ([]*document.TaxDocument, error) {
	return s.store.ListDocuments(ctx, taxYear)
}

// ReverifyDocument reruns verification and confidence scoring for a stored
// document and persists the refreshed result.
func (s *TaxService) ReverifyDocument(ctx context.Context, id string) (*document.TaxDocument, error) {
	doc, err := s.store.GetDocument(ctx, id)
	if err != nil {
		return nil, err
	}

	doc.Verification = verify.Extraction(doc.Fields, doc.RawText)
	review := verify.Combine(doc.ClassificationConfidence, doc.Type, doc.Verification)
	doc.CombinedConfidence = review.CombinedConfidence
	doc.NeedsReview = review.NeedsReview
	doc.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateDocument(ctx, doc); err != nil {
		return nil, err
	}
	s.logger.Info("document reverified",
		"id", doc.ID,
		"confidence", doc.CombinedConfidence,
		"needs_review", doc.NeedsReview)
	return doc, nil
}

// contentHash fingerprints a document's source text within its tax year for
// duplicate detection.
func contentHash(taxYear int, rawText string) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%d\n%s", taxYear, rawText))
	return hex.EncodeToString(h[:])
}
