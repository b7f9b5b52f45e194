package driven

import (
	"context"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

// Connector fetches documents from a data source.
type Connector interface {
	// Type returns the connector type identifier.
	Type() string

	// SourceID returns the configured source ID.
	SourceID() string

	// Validate checks if the connector is properly configured.
	// For filesystem, this checks the path exists and is a directory.
	Validate(ctx context.Context) error

	// FullSync fetches all documents from the source.
	// Both channels are closed when the walk ends.
	FullSync(ctx context.Context) (<-chan domain.RawDocument, <-chan error)

	// Watch listens for changes until ctx is cancelled.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context) (<-chan domain.RawDocumentChange, error)

	// Close releases resources.
	Close() error
}

// ConnectorFactory creates connectors from source configuration.
type ConnectorFactory interface {
	// Create returns a Connector for the given source.
	// Returns domain.ErrUnsupportedType if the source type is unknown.
	Create(ctx context.Context, source domain.Source) (Connector, error)

	// SupportedTypes returns all registered connector types.
	SupportedTypes() []string
}
