package normalisers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/normalisers/html"
	"github.com/custodia-labs/staticfield/internal/normalisers/markdown"
	"github.com/custodia-labs/staticfield/internal/normalisers/plaintext"
)

// Ensure Registry implements the interface.
var _ driven.Normaliser = (*Registry)(nil)

// Prioritised is implemented by normalisers that rank above others for a
// shared MIME type. Normalisers without it have priority 0.
type Prioritised interface {
	Priority() int
}

// Registry dispatches raw documents to the highest priority normaliser
// for their MIME type. It is itself a Normaliser.
type Registry struct {
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	r := &Registry{}
	for _, n := range normalisers {
		r.Register(n)
	}
	return r
}

// NewDefaultRegistry registers the built-in normalisers.
func NewDefaultRegistry() *Registry {
	return NewRegistry(markdown.New(), html.New(), plaintext.New())
}

// Register adds a normaliser. Equal priorities keep registration order.
func (r *Registry) Register(n driven.Normaliser) {
	r.normalisers = append(r.normalisers, n)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return priority(r.normalisers[i]) > priority(r.normalisers[j])
	})
}

// SupportedMIMETypes returns the sorted union of all registered MIME types.
func (r *Registry) SupportedMIMETypes() []string {
	seen := make(map[string]struct{})
	for _, n := range r.normalisers {
		for _, m := range n.SupportedMIMETypes() {
			seen[m] = struct{}{}
		}
	}
	types := make([]string, 0, len(seen))
	for m := range seen {
		types = append(types, m)
	}
	sort.Strings(types)
	return types
}

// Normalise runs the best matching normaliser.
// Returns domain.ErrUnsupportedType when none handles the MIME type.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	n := r.For(raw.MIMEType)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, raw.MIMEType)
	}
	return n.Normalise(ctx, raw)
}

// For returns the normaliser selected for a MIME type, or nil.
// Parameters such as charset are ignored; an empty type is plain text.
func (r *Registry) For(mimeType string) driven.Normaliser {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.ToLower(strings.TrimSpace(base))
	if base == "" {
		base = "text/plain"
	}
	for _, n := range r.normalisers {
		for _, m := range n.SupportedMIMETypes() {
			if m == base {
				return n
			}
		}
	}
	return nil
}

func priority(n driven.Normaliser) int {
	if p, ok := n.(Prioritised); ok {
		return p.Priority()
	}
	return 0
}
