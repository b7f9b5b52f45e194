package driven

import (
	"context"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

// DocumentStore persists index documents.
// Backed by SQLite, or memory for ephemeral runs.
type DocumentStore interface {
	// SaveDocument stores or updates a document.
	SaveDocument(ctx context.Context, doc *domain.IndexDocument) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if no document has that ID.
	GetDocument(ctx context.Context, id string) (*domain.IndexDocument, error)

	// DeleteDocument removes a document.
	DeleteDocument(ctx context.Context, id string) error

	// ListDocuments returns documents for a source ordered by URI.
	ListDocuments(ctx context.Context, sourceID string) ([]domain.IndexDocument, error)
}
