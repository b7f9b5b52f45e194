// Package plaintext turns raw text bytes into pages for the indexing stage.
package plaintext

import (
	"context"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
)

// Metadata keys read from raw documents.
const (
	MetadataTitle   = "title"
	MetadataInlinks = "inlinks"
	MetadataMIME    = "mime_type"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text documents.
type Normaliser struct {
	now func() time.Time
}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{now: time.Now}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{
		"text/plain",
		"text/markdown",
		"text/x-go",
		"text/x-python",
		"text/x-shellscript",
		"text/csv",
		"text/yaml",
		"text/toml",
		"text/html",
		"text/xml",
		"text/css",
		"text/javascript",
		"application/json",
		"application/xml",
	}
}

// Supports reports whether the MIME type is handled, ignoring parameters.
func (n *Normaliser) Supports(mimeType string) bool {
	base, _, _ := strings.Cut(mimeType, ";")
	base = strings.TrimSpace(strings.ToLower(base))
	for _, m := range n.SupportedMIMETypes() {
		if m == base {
			return true
		}
	}
	return false
}

// Normalise converts a raw document to a page.
// The ID is derived from source and URI so re-indexing overwrites.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}
	if !utf8.Valid(raw.Content) {
		return nil, domain.ErrUnsupportedType
	}

	doc := &domain.Document{
		ID:        domain.DocumentID(raw.SourceID, raw.URI),
		SourceID:  raw.SourceID,
		URI:       raw.URI,
		Title:     extractTitleFromMetadataOrURI(raw),
		Content:   string(raw.Content),
		Inlinks:   extractInlinks(raw.Metadata),
		Metadata:  copyMetadata(raw.Metadata),
		FetchedAt: raw.ModifiedAt,
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = n.now()
	}

	if doc.Metadata == nil {
		doc.Metadata = make(map[string]any)
	}
	doc.Metadata[MetadataMIME] = raw.MIMEType

	return doc, nil
}

// extractTitleFromMetadataOrURI checks metadata for title first, then falls back to URI.
func extractTitleFromMetadataOrURI(raw *domain.RawDocument) string {
	if raw.Metadata != nil {
		if title, ok := raw.Metadata[MetadataTitle].(string); ok && title != "" {
			return title
		}
	}
	return extractTitle(raw.URI)
}

// extractTitle extracts a human-readable title from a URI.
func extractTitle(uri string) string {
	filename := filepath.Base(uri)

	if ext := filepath.Ext(filename); ext != "" && ext != filename {
		filename = strings.TrimSuffix(filename, ext)
	}

	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")

	return filename
}

// extractInlinks accepts []string, []any of strings or a comma-separated string.
func extractInlinks(meta map[string]any) []string {
	if meta == nil {
		return nil
	}
	switch v := meta[MetadataInlinks].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	default:
		return nil
	}
}

// copyMetadata creates a shallow copy of metadata.
func copyMetadata(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
