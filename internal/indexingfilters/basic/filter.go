// Package basic provides the indexing filter that copies core page
// attributes into index fields.
package basic

import (
	"context"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
)

// Name is the registry name of the filter.
const Name = "basic"

// Configuration keys.
const (
	KeyMaxTitleLength   = "indexer.max.title.length"
	KeyMaxContentLength = "indexer.max.content.length"
)

// DefaultMaxTitleLength is the default title limit in characters.
const DefaultMaxTitleLength = 100

// Index field names written by the filter.
const (
	FieldID      = "id"
	FieldURL     = "url"
	FieldHost    = "host"
	FieldTitle   = "title"
	FieldContent = "content"
	FieldSource  = "source"
	FieldTstamp  = "tstamp"
)

// Ensure Filter implements the interface.
var _ driven.IndexingFilter = (*Filter)(nil)

// Filter adds id, url, host, title, content, source and tstamp fields.
type Filter struct {
	maxTitleLength   int
	maxContentLength int
}

// Option configures the basic filter.
type Option func(*Filter)

// WithMaxTitleLength sets the title limit in characters. Negative means no limit.
func WithMaxTitleLength(n int) Option {
	return func(f *Filter) {
		f.maxTitleLength = n
	}
}

// WithMaxContentLength sets the content limit in characters. Negative means no limit.
func WithMaxContentLength(n int) Option {
	return func(f *Filter) {
		f.maxContentLength = n
	}
}

// New creates a new basic filter with the given options.
func New(opts ...Option) *Filter {
	f := &Filter{
		maxTitleLength:   DefaultMaxTitleLength,
		maxContentLength: -1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the filter name.
func (f *Filter) Name() string {
	return Name
}

// Filter copies page attributes into doc.
func (f *Filter) Filter(
	_ context.Context,
	doc *domain.IndexDocument,
	uri string,
	page *domain.Document,
) (*domain.IndexDocument, error) {
	if doc == nil || page == nil {
		return doc, nil
	}

	doc.Add(FieldID, doc.ID)
	doc.Add(FieldURL, uri)
	if u, err := url.Parse(uri); err == nil && u.Host != "" {
		doc.Add(FieldHost, u.Hostname())
	}
	if page.Title != "" {
		doc.Add(FieldTitle, truncate(page.Title, f.maxTitleLength))
	}
	if page.Content != "" {
		doc.Add(FieldContent, truncate(page.Content, f.maxContentLength))
	}
	if page.SourceID != "" {
		doc.Add(FieldSource, page.SourceID)
	}
	if !page.FetchedAt.IsZero() {
		doc.Add(FieldTstamp, page.FetchedAt.UTC().Format(time.RFC3339))
	}

	return doc, nil
}

// Fields returns the page fields this filter reads.
func (f *Filter) Fields() []domain.PageField {
	return []domain.PageField{
		domain.PageFieldURL,
		domain.PageFieldTitle,
		domain.PageFieldContent,
		domain.PageFieldFetchTime,
	}
}

// truncate cuts s to at most limit runes. A negative limit disables it.
func truncate(s string, limit int) string {
	if limit < 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
