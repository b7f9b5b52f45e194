package driven

import (
	"context"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

// IndexingFilter decorates an index document during the indexing stage.
// Filters are chained in a pipeline (e.g., basic fields, static fields).
type IndexingFilter interface {
	// Name returns the filter name for logging and configuration.
	Name() string

	// Filter adds or changes fields on doc and returns it.
	// Returning a nil document drops it from the index.
	// page is the normalised page the document was built from; filters must not modify it.
	Filter(ctx context.Context, doc *domain.IndexDocument, url string, page *domain.Document) (*domain.IndexDocument, error)

	// Fields returns the page fields this filter reads.
	// Hosts use the union across filters to plan what to load.
	Fields() []domain.PageField
}

// IndexingFilterPipeline chains multiple IndexingFilters.
type IndexingFilterPipeline interface {
	// Process builds an index document for page and runs it through all filters.
	// Returns nil without error if a filter dropped the document.
	Process(ctx context.Context, page *domain.Document) (*domain.IndexDocument, error)

	// Fields returns the union of page fields declared by all filters.
	Fields() []domain.PageField
}
