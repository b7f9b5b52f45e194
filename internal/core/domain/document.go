package domain

import "time"

// Document represents a normalised page ready for indexing.
// It is the input indexing filters read from; filters never modify it.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// SourceID links to the Source that produced this document.
	SourceID string

	// URI is the original location (file path, URL, etc).
	URI string

	// Title is the human-readable title.
	Title string

	// Content is the full text content after normalisation.
	Content string

	// Inlinks lists the URIs of documents linking to this one.
	Inlinks []string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// FetchedAt is when the connector read the document.
	FetchedAt time.Time
}

// IndexDocument is the output of the indexing stage.
// Indexing filters decorate its Fields; stores persist it.
type IndexDocument struct {
	// ID is the unique identifier, shared with the source Document.
	ID string

	// SourceID links to the Source that produced this document.
	SourceID string

	// URI is the original location.
	URI string

	// Fields holds the indexed field values.
	Fields *Fields

	// IndexedAt is when the document last passed through the pipeline.
	IndexedAt time.Time
}

// NewIndexDocument creates an empty index document for a normalised page.
func NewIndexDocument(doc *Document) *IndexDocument {
	return &IndexDocument{
		ID:       doc.ID,
		SourceID: doc.SourceID,
		URI:      doc.URI,
		Fields:   NewFields(),
	}
}

// Add appends a field value, allocating the field set if needed.
func (d *IndexDocument) Add(name, value string) {
	if d.Fields == nil {
		d.Fields = NewFields()
	}
	d.Fields.Add(name, value)
}
