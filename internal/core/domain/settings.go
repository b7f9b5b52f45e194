package domain

// Configuration keys read from the host configuration store.
const (
	// KeyStaticFields holds the raw static fields string.
	KeyStaticFields = "index.static"

	// KeyStaticFieldSep overrides the delimiter between entries.
	KeyStaticFieldSep = "index.static.fieldsep"

	// KeyStaticKeySep overrides the delimiter between a name and its values.
	KeyStaticKeySep = "index.static.keysep"

	// KeyStaticValueSep overrides the delimiter between values of one name.
	KeyStaticValueSep = "index.static.valuesep"

	// KeyFilterOrder lists indexing filter names in execution order.
	KeyFilterOrder = "indexingfilter.order"

	// KeyStorageBackend selects the document store backend.
	KeyStorageBackend = "storage.backend"

	// KeyStorageDir overrides the data directory.
	KeyStorageDir = "storage.dir"

	// KeyLogFormat selects "text" or "json" log output.
	KeyLogFormat = "log.format"

	// KeyIndexParallelism bounds how many sources are indexed at once.
	KeyIndexParallelism = "index.parallelism"
)

// Default static field delimiters.
const (
	DefaultFieldSep = ","
	DefaultKeySep   = ":"
	DefaultValueSep = " "
)

// DefaultIndexParallelism is used when index.parallelism is unset.
const DefaultIndexParallelism = 4

// StorageBackend identifies a document store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists documents in a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps documents in memory for the lifetime of the process.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// FilterConfig holds indexing filter pipeline configuration.
type FilterConfig struct {
	// Filters is the ordered list of filter names to run.
	Filters []string
}

// DefaultFilterConfig returns the default pipeline: basic fields, then static fields.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Filters: []string{"basic", "static"},
	}
}
