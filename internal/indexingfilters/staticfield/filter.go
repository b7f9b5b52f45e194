// Package staticfield provides an indexing filter that adds operator-supplied
// constant fields to every document.
//
// The fields are configured with a single delimited string under
// index.static, e.g. "collection:news,tags:a b". It is useful for tagging
// everything indexed in one run when the tag cannot be derived from the
// document itself.
package staticfield

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/logger"
)

// Name is the registry name of the filter.
const Name = "static"

// Ensure Filter implements the interface.
var _ driven.IndexingFilter = (*Filter)(nil)

// Filter appends static fields to index documents.
// It is configured once via SetConf and is read-only afterwards.
type Filter struct {
	enabled  bool
	fields   []domain.Field
	fieldSep *regexp.Regexp
	keySep   *regexp.Regexp
	valueSep *regexp.Regexp
}

// New creates a disabled filter using the default separators.
func New() *Filter {
	return &Filter{
		fieldSep: compileSeparator(domain.DefaultFieldSep),
		keySep:   compileSeparator(domain.DefaultKeySep),
		valueSep: compileSeparator(domain.DefaultValueSep),
	}
}

// NewFromConfig creates a filter and configures it from conf.
func NewFromConfig(conf driven.Configuration) *Filter {
	f := New()
	f.SetConf(conf)
	return f
}

// SetConf reads the separators and the fields string from conf.
// The filter is enabled whenever index.static is set, even to an empty string.
func (f *Filter) SetConf(conf driven.Configuration) {
	f.fieldSep = compileSeparator(stringOr(conf, domain.KeyStaticFieldSep, domain.DefaultFieldSep))
	f.keySep = compileSeparator(stringOr(conf, domain.KeyStaticKeySep, domain.DefaultKeySep))
	f.valueSep = compileSeparator(stringOr(conf, domain.KeyStaticValueSep, domain.DefaultValueSep))

	f.enabled = false
	f.fields = nil

	if conf == nil {
		return
	}
	val, ok := conf.Get(domain.KeyStaticFields)
	if !ok || val == nil {
		return
	}
	raw, ok := val.(string)
	if !ok {
		logger.Warn("Ignoring %s: expected a string, got %T", domain.KeyStaticFields, val)
		return
	}

	f.enabled = true
	f.fields = f.parseFields(raw)
	logger.Debug("Static fields configured: %d field(s)", len(f.fields))
}

// Name returns the filter name.
func (f *Filter) Name() string {
	return Name
}

// Filter appends every configured (name, value) pair to doc.
// Documents pass through unchanged when no fields string is configured.
func (f *Filter) Filter(
	_ context.Context,
	doc *domain.IndexDocument,
	_ string,
	_ *domain.Document,
) (*domain.IndexDocument, error) {
	if !f.enabled || doc == nil {
		return doc, nil
	}

	for _, field := range f.fields {
		for _, v := range field.Values {
			doc.Add(field.Name, v)
		}
	}
	return doc, nil
}

// Fields returns the page fields this filter depends on.
func (f *Filter) Fields() []domain.PageField {
	return []domain.PageField{domain.PageFieldInlinks}
}

// Enabled reports whether a fields string was configured.
func (f *Filter) Enabled() bool {
	return f.enabled
}

// StaticFields returns a copy of the parsed fields in configuration order.
func (f *Filter) StaticFields() []domain.Field {
	out := make([]domain.Field, 0, len(f.fields))
	for _, field := range f.fields {
		vals := make([]string, len(field.Values))
		copy(vals, field.Values)
		out = append(out, domain.Field{Name: field.Name, Values: vals})
	}
	return out
}

// parseFields turns "name:v1 v2,other:v3" into an ordered mapping.
// Entries that don't split into exactly a name and a value blob are dropped.
// A repeated name replaces the earlier values in place.
func (f *Filter) parseFields(raw string) []domain.Field {
	var fields []domain.Field
	index := make(map[string]int)

	for _, entry := range split(f.fieldSep, raw) {
		parts := split(f.keySep, entry)
		if len(parts) != 2 {
			logger.Debug("Dropping malformed static field entry %q", entry)
			continue
		}

		name := trim(parts[0])
		values := split(f.valueSep, trim(parts[1]))

		if i, ok := index[name]; ok {
			fields[i].Values = values
			continue
		}
		index[name] = len(fields)
		fields = append(fields, domain.Field{Name: name, Values: values})
	}

	return fields
}

// trim strips leading and trailing code points at or below U+0020.
// Control characters go too; Unicode spaces such as U+00A0 stay.
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

// split divides s around matches of re.
// If re never matches, the result is s itself. Otherwise trailing empty
// strings are removed, while leading and interior ones are kept.
func split(re *regexp.Regexp, s string) []string {
	parts := re.Split(s, -1)
	if len(parts) <= 1 {
		return parts
	}
	end := len(parts)
	for end > 0 && parts[end-1] == "" {
		end--
	}
	return parts[:end]
}

// escapeSeparator quotes every regexp metacharacter so the separator
// matches literally.
func escapeSeparator(sep string) string {
	return regexp.QuoteMeta(sep)
}

func compileSeparator(sep string) *regexp.Regexp {
	return regexp.MustCompile(escapeSeparator(sep))
}

// stringOr returns the string at key, or def when unset or empty.
func stringOr(conf driven.Configuration, key, def string) string {
	if conf == nil {
		return def
	}
	if s := conf.GetString(key); s != "" {
		return s
	}
	return def
}
