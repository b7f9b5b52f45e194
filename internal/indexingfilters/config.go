package indexingfilters

import "github.com/custodia-labs/staticfield/internal/core/ports/driven"

// Ensure MapConfig implements the interface.
var _ driven.Configuration = MapConfig(nil)

// MapConfig is a map-backed Configuration.
// It is handy for building filters from ad-hoc settings such as CLI flags.
type MapConfig map[string]any

// Get retrieves a configuration value by key.
func (m MapConfig) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// GetString retrieves a string configuration value.
func (m MapConfig) GetString(key string) string {
	s, _ := m[key].(string)
	return s
}

// Overlay returns a Configuration that prefers values in m over base.
func (m MapConfig) Overlay(base driven.Configuration) driven.Configuration {
	return overlay{top: m, base: base}
}

type overlay struct {
	top  MapConfig
	base driven.Configuration
}

func (o overlay) Get(key string) (any, bool) {
	if v, ok := o.top.Get(key); ok {
		return v, true
	}
	if o.base == nil {
		return nil, false
	}
	return o.base.Get(key)
}

func (o overlay) GetString(key string) string {
	v, ok := o.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
