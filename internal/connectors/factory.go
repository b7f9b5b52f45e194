package connectors

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/staticfield/internal/connectors/filesystem"
	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.ConnectorFactory = (*Factory)(nil)

// Builder creates a Connector from a Source.
type Builder func(source domain.Source) (driven.Connector, error)

// Factory creates connectors by source type.
type Factory struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewFactory creates a factory with the built-in connectors registered.
func NewFactory() *Factory {
	f := &Factory{builders: make(map[string]Builder)}
	f.Register(domain.ConnectorTypeFilesystem, buildFilesystem)
	return f
}

// Register adds or replaces the builder for a connector type.
func (f *Factory) Register(connectorType string, builder Builder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.builders[connectorType] = builder
}

// Create returns a Connector for the given source.
func (f *Factory) Create(ctx context.Context, source domain.Source) (driven.Connector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.RLock()
	builder, ok := f.builders[source.Type]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: connector %q", domain.ErrUnsupportedType, source.Type)
	}

	return builder(source)
}

// SupportedTypes returns all registered connector types in sorted order.
func (f *Factory) SupportedTypes() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	types := make([]string, 0, len(f.builders))
	for t := range f.builders {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

func buildFilesystem(source domain.Source) (driven.Connector, error) {
	path := source.Config[domain.SourceConfigPath]
	if path == "" {
		return nil, fmt.Errorf("%w: filesystem source %q has no path", domain.ErrConnectorValidation, source.ID)
	}
	return filesystem.New(source.ID, path), nil
}
