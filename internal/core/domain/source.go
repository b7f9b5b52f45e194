package domain

import (
	"path/filepath"
	"strings"
)

// ConnectorTypeFilesystem is the connector type for local directories.
const ConnectorTypeFilesystem = "filesystem"

// SourceConfigPath is the Source.Config key holding a filesystem root.
const SourceConfigPath = "path"

// Source represents a configured data source.
type Source struct {
	// ID is the unique identifier for the source.
	ID string

	// Type identifies the connector type (e.g., "filesystem").
	Type string

	// Name is the human-readable name for this source.
	Name string

	// Config contains connector-specific configuration.
	Config map[string]string
}

// NewFilesystemSource creates a filesystem source rooted at path.
// An empty id is derived from the directory name.
func NewFilesystemSource(id, path string) Source {
	clean := filepath.Clean(path)
	if id == "" {
		id = SourceIDFromPath(clean)
	}
	return Source{
		ID:     id,
		Type:   ConnectorTypeFilesystem,
		Name:   filepath.Base(clean),
		Config: map[string]string{SourceConfigPath: clean},
	}
}

// SourceIDFromPath derives a stable, lower-case source ID from a path.
func SourceIDFromPath(path string) string {
	base := strings.ToLower(filepath.Base(filepath.Clean(path)))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	base = strings.Trim(base, "-")
	if base == "" {
		return "root"
	}
	return base
}
