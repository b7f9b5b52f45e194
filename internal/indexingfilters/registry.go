package indexingfilters

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
)

// BuilderFunc creates an IndexingFilter from host configuration.
type BuilderFunc func(conf driven.Configuration) (driven.IndexingFilter, error)

// Registry maps filter names to their builders.
// It allows dynamic construction of filters from configuration.
type Registry struct {
	builders map[string]BuilderFunc
}

// NewRegistry creates a new filter registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]BuilderFunc),
	}
}

// Register adds a filter builder to the registry.
// Name should be unique and match the filter's Name() return value.
func (r *Registry) Register(name string, builder BuilderFunc) {
	r.builders[name] = builder
}

// Build creates a filter by name with the given configuration.
// Returns domain.ErrUnsupportedType if the filter name is not registered.
func (r *Registry) Build(name string, conf driven.Configuration) (driven.IndexingFilter, error) {
	builder, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: indexing filter %q", domain.ErrUnsupportedType, name)
	}
	return builder(conf)
}

// Has returns true if a filter with the given name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.builders[name]
	return ok
}

// Names returns all registered filter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
