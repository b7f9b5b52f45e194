package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes indexed documents.
type DocumentService struct {
	docStore driven.DocumentStore
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore) *DocumentService {
	return &DocumentService{docStore: docStore}
}

// ListBySource returns all documents for a source.
func (s *DocumentService) ListBySource(ctx context.Context, sourceID string) ([]domain.IndexDocument, error) {
	if s.docStore == nil {
		return nil, fmt.Errorf("document store not configured")
	}
	if sourceID == "" {
		return nil, fmt.Errorf("%w: source ID is required", domain.ErrInvalidInput)
	}
	return s.docStore.ListDocuments(ctx, sourceID)
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.IndexDocument, error) {
	if s.docStore == nil {
		return nil, fmt.Errorf("document store not configured")
	}
	return s.docStore.GetDocument(ctx, documentID)
}

// Delete removes a document. Returns domain.ErrNotFound if it does not exist.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	if s.docStore == nil {
		return fmt.Errorf("document store not configured")
	}
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return err
	}
	return s.docStore.DeleteDocument(ctx, documentID)
}
