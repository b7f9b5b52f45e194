// Package indexingfilters provides the indexing filter registry and pipeline.
package indexingfilters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driven.IndexingFilterPipeline = (*Pipeline)(nil)

// Pipeline chains multiple IndexingFilters and runs them in order.
type Pipeline struct {
	filters []driven.IndexingFilter
	now     func() time.Time
}

// NewPipeline creates a new indexing pipeline with the given filters.
// Filters are executed in the order provided.
func NewPipeline(filters ...driven.IndexingFilter) *Pipeline {
	return &Pipeline{
		filters: filters,
		now:     time.Now,
	}
}

// BuildPipeline builds the named filters from the registry, in order.
func BuildPipeline(r *Registry, names []string, conf driven.Configuration) (*Pipeline, error) {
	p := NewPipeline()
	var errs []error
	for _, name := range names {
		filter, err := r.Build(name, conf)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		p.Add(filter)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return p, nil
}

// Process builds an index document for page and runs it through all filters.
// A filter returning a nil document stops the pipeline and drops the page.
func (p *Pipeline) Process(ctx context.Context, page *domain.Document) (*domain.IndexDocument, error) {
	if page == nil {
		return nil, fmt.Errorf("page is nil")
	}

	doc := domain.NewIndexDocument(page)
	doc.IndexedAt = p.now().UTC()

	for _, filter := range p.filters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var err error
		doc, err = filter.Filter(ctx, doc, page.URI, page)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %w", filter.Name(), err)
		}
		if doc == nil {
			logger.Debug("Filter %s dropped %s", filter.Name(), page.URI)
			return nil, nil
		}
	}

	return doc, nil
}

// Fields returns the ordered union of page fields declared by all filters.
func (p *Pipeline) Fields() []domain.PageField {
	sets := make([][]domain.PageField, 0, len(p.filters))
	for _, filter := range p.filters {
		sets = append(sets, filter.Fields())
	}
	return domain.MergePageFields(sets...)
}

// Add appends a filter to the pipeline.
func (p *Pipeline) Add(filter driven.IndexingFilter) {
	p.filters = append(p.filters, filter)
}

// Len returns the number of filters in the pipeline.
func (p *Pipeline) Len() int {
	return len(p.filters)
}

// Names returns the filter names in execution order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.filters))
	for _, filter := range p.filters {
		names = append(names, filter.Name())
	}
	return names
}

// Filter returns the first filter with the given name, or nil.
func (p *Pipeline) Filter(name string) driven.IndexingFilter {
	for _, filter := range p.filters {
		if filter.Name() == name {
			return filter
		}
	}
	return nil
}
