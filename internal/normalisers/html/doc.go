// Package html turns HTML pages into plain text pages. The title comes from
// the <title> element; scripts, styles and markup are dropped from the
// content and entities are decoded.
package html
