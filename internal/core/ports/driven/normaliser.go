package driven

import (
	"context"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

// Normaliser transforms raw documents into pages ready for indexing.
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Normalise transforms a raw document into a page.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error)
}
