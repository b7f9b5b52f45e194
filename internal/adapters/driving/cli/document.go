package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed documents",
	Long:  `List, view, or delete indexed documents.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list [source-id]",
	Short: "List documents for a source",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentList,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Show a document and its fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Remove a document from the index",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

// documentOutput is the --output flag for document get.
var documentOutput string

func init() {
	documentGetCmd.Flags().StringVarP(&documentOutput, "output", "o", outputText, "Output format: text, json or yaml")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	sourceID := args[0]
	ctx := context.Background()

	docs, err := documentService.ListBySource(ctx, sourceID)
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	if len(docs) == 0 {
		cmd.Printf("No documents found for source: %s\n", sourceID)
		return nil
	}

	cmd.Printf("%s\n\n", styled(cmd, headingStyle, "Documents for source "+sourceID+":"))
	for i := range docs {
		cmd.Printf("  %s\n", docs[i].ID)
		cmd.Printf("    URI: %s\n", docs[i].URI)
		cmd.Printf("    Fields: %d\n", docs[i].Fields.Len())
		cmd.Println()
	}

	cmd.Printf("Total: %d documents\n", len(docs))
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}
	if err := validateOutput(documentOutput); err != nil {
		return err
	}

	docID := args[0]
	ctx := context.Background()

	doc, err := documentService.Get(ctx, docID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document not found: %s", docID)
		}
		return fmt.Errorf("failed to get document: %w", err)
	}

	if documentOutput != outputText {
		return writeStructured(cmd, documentOutput, newDocumentView(doc))
	}

	cmd.Printf("Document: %s\n", styled(cmd, headingStyle, doc.ID))
	cmd.Printf("  Source: %s\n", doc.SourceID)
	cmd.Printf("  URI: %s\n", doc.URI)
	if !doc.IndexedAt.IsZero() {
		cmd.Printf("  Indexed: %s\n", doc.IndexedAt.Local().Format(time.RFC3339))
	}
	cmd.Println("  Fields:")
	for _, field := range doc.Fields.List() {
		cmd.Printf("    %s: %s\n", styled(cmd, nameStyle, field.Name), formatValues(field.Values))
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	docID := args[0]
	ctx := context.Background()

	if err := documentService.Delete(ctx, docID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("document not found: %s", docID)
		}
		return fmt.Errorf("failed to delete document: %w", err)
	}

	cmd.Printf("Document %s deleted.\n", docID)
	return nil
}
