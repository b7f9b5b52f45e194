package driving

import (
	"context"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

// DocumentService exposes indexed documents.
type DocumentService interface {
	// ListBySource returns all index documents for a source.
	ListBySource(ctx context.Context, sourceID string) ([]domain.IndexDocument, error)

	// Get retrieves an index document by ID.
	Get(ctx context.Context, documentID string) (*domain.IndexDocument, error)

	// Delete removes an index document.
	Delete(ctx context.Context, documentID string) error
}
