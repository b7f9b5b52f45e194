// Package domain defines the core entities of the static field indexer.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: Opaque bytes from a connector
//   - Document: A normalised page handed to indexing filters
//   - IndexDocument: The output of the indexing stage, a multi-valued field set
//   - Fields: An ordered multi-valued mapping of field names to values
//   - PageField: An upstream page field an indexing filter depends on
//   - Source: A configured data source
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
