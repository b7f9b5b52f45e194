// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//
// Keys are flattened to dot notation on load, so both of these set
// index.static:
//
//	[index]
//	static = "collection:news"
//
//	"index.static" = "collection:news"
//
// Because index.static is a string, its delimiter overrides must use the
// quoted form, e.g. "index.static.fieldsep" = "|".
package file
