package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

// Output formats accepted by --output.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// validateOutput checks an --output value.
func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("%w: output format %q (want text, json or yaml)", domain.ErrInvalidInput, format)
	}
}

// writeStructured writes v as JSON or YAML to the command output.
func writeStructured(cmd *cobra.Command, format string, v any) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case outputJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		if err == nil {
			data = append(data, '\n')
		}
	case outputYAML:
		data, err = yaml.Marshal(v)
	default:
		return validateOutput(format)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", format, err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// documentView is the serialised form of an index document.
type documentView struct {
	ID        string         `json:"id" yaml:"id"`
	SourceID  string         `json:"source_id" yaml:"source_id"`
	URI       string         `json:"uri" yaml:"uri"`
	IndexedAt time.Time      `json:"indexed_at" yaml:"indexed_at"`
	Fields    []domain.Field `json:"fields" yaml:"fields"`
}

func newDocumentView(doc *domain.IndexDocument) documentView {
	fields := doc.Fields.List()
	if fields == nil {
		fields = []domain.Field{}
	}
	return documentView{
		ID:        doc.ID,
		SourceID:  doc.SourceID,
		URI:       doc.URI,
		IndexedAt: doc.IndexedAt,
		Fields:    fields,
	}
}

// formatValues joins field values for text output.
func formatValues(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		if v == "" || strings.ContainsAny(v, " ,") {
			v = fmt.Sprintf("%q", v)
		}
		quoted[i] = v
	}
	return strings.Join(quoted, ", ")
}
