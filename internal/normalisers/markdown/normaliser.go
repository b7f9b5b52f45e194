// Package markdown turns Markdown files into pages with a heading title and
// formatting stripped from the content.
package markdown

import (
	"context"
	"regexp"
	"strings"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/normalisers/plaintext"
)

// MetadataFormat is the metadata key recording the source format.
const MetadataFormat = "format"

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles Markdown documents. Identity, timestamps and inlinks
// follow the plain text rules.
type Normaliser struct {
	text *plaintext.Normaliser
}

// New creates a new Markdown normaliser.
func New() *Normaliser {
	return &Normaliser{text: plaintext.New()}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/markdown", "text/x-markdown"}
}

// Priority ranks this normaliser above plain text for shared MIME types.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise converts a markdown document to a page.
func (n *Normaliser) Normalise(ctx context.Context, raw *domain.RawDocument) (*domain.Document, error) {
	doc, err := n.text.Normalise(ctx, raw)
	if err != nil {
		return nil, err
	}

	if t, _ := raw.Metadata[plaintext.MetadataTitle].(string); t == "" {
		if title := extractHeading(doc.Content); title != "" {
			doc.Title = title
		}
	}
	doc.Content = stripMarkdown(doc.Content)
	doc.Metadata[MetadataFormat] = "markdown"

	return doc, nil
}

// extractHeading returns the first level-one heading, or empty string.
func extractHeading(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "#"))
		}
	}
	return ""
}

var (
	codeBlockRe  = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe = regexp.MustCompile("`([^`]+)`")
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]+\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	headingRe    = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blockquoteRe = regexp.MustCompile(`(?m)^>\s?`)
	ruleRe       = regexp.MustCompile(`(?m)^[-*_]{3,}\s*$`)
	bulletRe     = regexp.MustCompile(`(?m)^\s*[-*+]\s+`)
	numberedRe   = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	emphasisRe   = regexp.MustCompile(`(\*\*|__|\*)`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes common markdown syntax, keeping link and code text.
func stripMarkdown(content string) string {
	content = codeBlockRe.ReplaceAllString(content, "")
	content = imageRe.ReplaceAllString(content, "")
	content = linkRe.ReplaceAllString(content, "$1")
	content = inlineCodeRe.ReplaceAllString(content, "$1")
	content = ruleRe.ReplaceAllString(content, "")
	content = headingRe.ReplaceAllString(content, "")
	content = blockquoteRe.ReplaceAllString(content, "")
	content = bulletRe.ReplaceAllString(content, "")
	content = numberedRe.ReplaceAllString(content, "")
	content = emphasisRe.ReplaceAllString(content, "")
	content = blankRunRe.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
