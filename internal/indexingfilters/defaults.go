package indexingfilters

import (
	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/indexingfilters/basic"
	"github.com/custodia-labs/staticfield/internal/indexingfilters/staticfield"
)

// RegisterDefaults registers all built-in filters with the registry.
// Call this during application initialisation to enable standard filters.
func RegisterDefaults(r *Registry) {
	r.Register(basic.Name, buildBasic)
	r.Register(staticfield.Name, buildStatic)
}

// FilterOrder returns the configured filter order, or the default order.
func FilterOrder(conf driven.ConfigStore) []string {
	if conf != nil {
		if names := conf.GetStringSlice(domain.KeyFilterOrder); len(names) > 0 {
			return names
		}
	}
	return domain.DefaultFilterConfig().Filters
}

// buildBasic creates a basic filter from host configuration.
// Supported config keys:
//   - indexer.max.title.length (int): Truncate titles (default: 100)
//   - indexer.max.content.length (int): Truncate content, -1 for no limit (default: -1)
func buildBasic(conf driven.Configuration) (driven.IndexingFilter, error) {
	var opts []basic.Option

	if n, ok := getIntFromConfig(conf, basic.KeyMaxTitleLength); ok {
		opts = append(opts, basic.WithMaxTitleLength(n))
	}
	if n, ok := getIntFromConfig(conf, basic.KeyMaxContentLength); ok {
		opts = append(opts, basic.WithMaxContentLength(n))
	}

	return basic.New(opts...), nil
}

// buildStatic creates a static field filter configured from index.static*.
func buildStatic(conf driven.Configuration) (driven.IndexingFilter, error) {
	return staticfield.NewFromConfig(conf), nil
}

// getIntFromConfig safely extracts an int from host configuration.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(conf driven.Configuration, key string) (int, bool) {
	if conf == nil {
		return 0, false
	}
	val, ok := conf.Get(key)
	if !ok {
		return 0, false
	}

	switch v := val.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
