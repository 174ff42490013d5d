// Package store persists processed tax documents.
package store

import (
	"context"
	"errors"

	"github.com/castlemilk/taxdoc/internal/document"
)

var (
	// ErrNotFound is returned when no document matches the requested ID.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateDocument is returned when a document with the same
	// content hash already exists for the tax year.
	ErrDuplicateDocument = errors.New("duplicate document for tax year")
)

// Store defines the persistence operations used by the service layer.
type Store interface {
	CreateDocument(ctx context.Context, doc *document.TaxDocument) error
	GetDocument(ctx context.Context, id string) (*document.TaxDocument, error)
	UpdateDocument(ctx context.Context, doc *document.TaxDocument) error
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns every document for a tax year, ordered by
	// creation time. A zero year lists all documents.
	ListDocuments(ctx context.Context, taxYear int) ([]*document.TaxDocument, error)

	Close() error
}
