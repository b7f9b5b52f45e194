// Package normalisers turns raw connector output into pages. Each
// sub-package handles a family of MIME types; Registry picks one per
// document by MIME type and priority.
package normalisers
