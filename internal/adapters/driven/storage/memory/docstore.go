// Package memory provides in-memory implementations of driven port interfaces.
// Data is lost when the process exits; useful for tests and dry runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
)

// Ensure DocumentStore implements the interface.
var _ driven.DocumentStore = (*DocumentStore)(nil)

// DocumentStore is an in-memory implementation of driven.DocumentStore.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.IndexDocument
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.IndexDocument),
	}
}

// SaveDocument stores or updates a document.
// A document with the same source and URI but a different ID replaces the old one.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.IndexDocument) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.documents {
		if id != doc.ID && existing.SourceID == doc.SourceID && existing.URI == doc.URI {
			delete(s.documents, id)
		}
	}
	s.documents[doc.ID] = copyDocument(doc)
	return nil
}

// GetDocument retrieves a document by ID.
func (s *DocumentStore) GetDocument(_ context.Context, id string) (*domain.IndexDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := copyDocument(&doc)
	return &out, nil
}

// DeleteDocument removes a document.
func (s *DocumentStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.documents, id)
	return nil
}

// ListDocuments returns documents for a source ordered by URI.
func (s *DocumentStore) ListDocuments(_ context.Context, sourceID string) ([]domain.IndexDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var docs []domain.IndexDocument
	for _, doc := range s.documents {
		if doc.SourceID == sourceID {
			docs = append(docs, copyDocument(&doc))
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].URI < docs[j].URI })
	return docs, nil
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.documents)
}

// copyDocument detaches the field set so callers cannot mutate stored state.
func copyDocument(doc *domain.IndexDocument) domain.IndexDocument {
	out := *doc
	out.Fields = doc.Fields.Clone()
	return out
}
