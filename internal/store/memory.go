package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/castlemilk/taxdoc/internal/document"
)

// MemoryStore implements Store with in-memory maps. It is the default
// backend for local runs and tests.
type MemoryStore struct {
	mu sync.RWMutex

	documents map[string]*document.TaxDocument
	// hashes indexes content hashes per tax year for duplicate detection.
	hashes map[int]map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		documents: make(map[string]*document.TaxDocument),
		hashes:    make(map[int]map[string]string),
	}
}

func (s *MemoryStore) CreateDocument(ctx context.Context, doc *document.TaxDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.documents[doc.ID]; exists {
		return fmt.Errorf("document %s already exists", doc.ID)
	}
	if doc.ContentHash != "" {
		if _, exists := s.hashes[doc.TaxYear][doc.ContentHash]; exists {
			return ErrDuplicateDocument
		}
	}

	s.documents[doc.ID] = doc.Clone()
	if doc.ContentHash != "" {
		if s.hashes[doc.TaxYear] == nil {
			s.hashes[doc.TaxYear] = make(map[string]string)
		}
		s.hashes[doc.TaxYear][doc.ContentHash] = doc.ID
	}
	return nil
}

func (s *MemoryStore) GetDocument(ctx context.Context, id string) (*document.TaxDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *MemoryStore) UpdateDocument(ctx context.Context, doc *document.TaxDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.documents[doc.ID]
	if !ok {
		return ErrNotFound
	}
	if existing.ContentHash != doc.ContentHash {
		return fmt.Errorf("content hash is immutable for document %s", doc.ID)
	}
	s.documents[doc.ID] = doc.Clone()
	return nil
}

func (s *MemoryStore) DeleteDocument(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.documents, id)
	if doc.ContentHash != "" {
		delete(s.hashes[doc.TaxYear], doc.ContentHash)
	}
	return nil
}

func (s *MemoryStore) ListDocuments(ctx context.Context, taxYear int) ([]*document.TaxDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []*document.TaxDocument
	for _, doc := range s.documents {
		if taxYear != 0 && doc.TaxYear != taxYear {
			continue
		}
		docs = append(docs, doc.Clone())
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *MemoryStore) Close() error { return nil }
