package domain

// PageField names an upstream page attribute an indexing filter reads.
// Hosts use the declared set to plan which data to load before indexing.
type PageField string

// Known page fields.
const (
	PageFieldURL       PageField = "url"
	PageFieldTitle     PageField = "title"
	PageFieldContent   PageField = "content"
	PageFieldInlinks   PageField = "inlinks"
	PageFieldMetadata  PageField = "metadata"
	PageFieldFetchTime PageField = "fetch_time"
)

// IsValid returns true if the page field is recognised.
func (f PageField) IsValid() bool {
	switch f {
	case PageFieldURL, PageFieldTitle, PageFieldContent,
		PageFieldInlinks, PageFieldMetadata, PageFieldFetchTime:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (f PageField) String() string {
	return string(f)
}

// AllPageFields returns every known page field.
func AllPageFields() []PageField {
	return []PageField{
		PageFieldURL,
		PageFieldTitle,
		PageFieldContent,
		PageFieldInlinks,
		PageFieldMetadata,
		PageFieldFetchTime,
	}
}

// MergePageFields returns the ordered union of the given field sets.
func MergePageFields(sets ...[]PageField) []PageField {
	seen := make(map[PageField]bool)
	var out []PageField
	for _, set := range sets {
		for _, f := range set {
			if seen[f] {
				continue
			}
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
