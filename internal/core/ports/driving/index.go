package driving

import (
	"context"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

// IndexService runs sources through the indexing pipeline.
type IndexService interface {
	// Index fully indexes a single source.
	Index(ctx context.Context, source domain.Source) (*IndexStatus, error)

	// IndexAll indexes several sources, bounded by the configured parallelism.
	// Failures are joined; successful sources are still reported.
	IndexAll(ctx context.Context, sources []domain.Source) ([]IndexStatus, error)

	// Watch indexes a source and then applies live changes until ctx is done.
	Watch(ctx context.Context, source domain.Source) error

	// Status returns the status of an active run, or an idle status.
	Status(ctx context.Context, sourceID string) (*IndexStatus, error)

	// RequiredFields returns the page fields the configured filters read.
	RequiredFields() []domain.PageField
}

// IndexStatus represents the state of an index run.
type IndexStatus struct {
	// SourceID identifies the source.
	SourceID string

	// Running indicates if indexing is currently in progress.
	Running bool

	// DocumentsIndexed is the count of documents written to the store.
	DocumentsIndexed int

	// DocumentsDropped is the count of documents a filter dropped.
	DocumentsDropped int

	// DocumentsSkipped is the count of documents no normaliser accepts.
	DocumentsSkipped int

	// DocumentsDeleted is the count of stored documents removed because their
	// file is gone or a filter now drops them.
	DocumentsDeleted int

	// ErrorCount is the number of per-document errors encountered.
	ErrorCount int
}
