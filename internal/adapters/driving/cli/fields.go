package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/indexingfilters/staticfield"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "Show the configured static fields",
	Long: `Parses index.static with the configured delimiters and prints the
field/value pairs appended to every indexed document, along with the
page fields the configured filters read.

Malformed entries are dropped silently, so this is the quickest way to
check what a fields string actually produces.`,
	Args: cobra.NoArgs,
	RunE: runFields,
}

// fieldsOutput is the --output flag for fields.
var fieldsOutput string

func init() {
	fieldsCmd.Flags().StringVarP(&fieldsOutput, "output", "o", outputText, "Output format: text, json or yaml")
	rootCmd.AddCommand(fieldsCmd)
}

// fieldsView is the serialised output of the fields command.
type fieldsView struct {
	Enabled        bool           `json:"enabled" yaml:"enabled"`
	Fields         []domain.Field `json:"fields" yaml:"fields"`
	RequiredFields []string       `json:"required_fields" yaml:"required_fields"`
}

func runFields(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	if err := validateOutput(fieldsOutput); err != nil {
		return err
	}

	filter := staticfield.NewFromConfig(configStore)

	view := fieldsView{
		Enabled:        filter.Enabled(),
		Fields:         filter.StaticFields(),
		RequiredFields: requiredFieldNames(),
	}
	if view.Fields == nil {
		view.Fields = []domain.Field{}
	}

	if fieldsOutput != outputText {
		return writeStructured(cmd, fieldsOutput, view)
	}

	cmd.Println(styled(cmd, headingStyle, "Static fields"))
	switch {
	case !view.Enabled:
		cmd.Printf("  %s\n", styled(cmd, dimStyle, "not configured (set "+domain.KeyStaticFields+")"))
	case len(view.Fields) == 0:
		cmd.Printf("  %s\n", styled(cmd, dimStyle, "enabled, no valid entries"))
	default:
		for _, f := range view.Fields {
			cmd.Printf("  %s: %s\n", styled(cmd, nameStyle, f.Name), formatValues(f.Values))
		}
	}

	if len(view.RequiredFields) > 0 {
		cmd.Println()
		cmd.Printf("Required page fields: %s\n", strings.Join(view.RequiredFields, ", "))
	}
	return nil
}

// requiredFieldNames returns the page fields the pipeline reads, or the
// static filter's own declaration when no index service is wired.
func requiredFieldNames() []string {
	var fields []domain.PageField
	if indexService != nil {
		fields = indexService.RequiredFields()
	} else {
		fields = staticfield.New().Fields()
	}
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.String())
	}
	return names
}
