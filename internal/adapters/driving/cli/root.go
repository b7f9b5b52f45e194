// Package cli provides the cobra command tree for the staticfield binary.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/core/ports/driving"
	"github.com/custodia-labs/staticfield/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services used by commands. Set by the service builder or by tests.
var (
	indexService    driving.IndexService
	documentService driving.DocumentService
	configStore     driven.ConfigStore
	closeServices   func() error

	// built is set while the services above came from serviceBuilder.
	built bool
)

// Services holds the application services the commands depend on.
type Services struct {
	Index    driving.IndexService
	Document driving.DocumentService
	Config   driven.ConfigStore

	// Close releases storage handles. May be nil.
	Close func() error
}

// ServiceBuilder creates services for a config directory.
// An empty configDir selects the default location.
type ServiceBuilder func(configDir string) (*Services, error)

var serviceBuilder ServiceBuilder

var rootCmd = &cobra.Command{
	Use:   "staticfield",
	Short: "Index local documents with operator-defined static fields",
	Long: `staticfield walks document sources, runs every page through a chain of
indexing filters and stores the resulting field sets.

The static filter appends the constant fields configured in index.static,
for example:

  staticfield config set index.static "collection:news,lang:en fr"
  staticfield index ~/notes`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setupServices,
	PersistentPostRunE: teardownServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "Configuration directory (default ~/.staticfield)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServiceBuilder registers the function that wires services on first use.
func SetServiceBuilder(b ServiceBuilder) {
	serviceBuilder = b
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	logger.SetOutput(cmd.ErrOrStderr())

	if serviceBuilder == nil || configStore != nil || !needsServices(cmd) {
		return nil
	}

	svcs, err := serviceBuilder(configDir)
	if err != nil {
		return err
	}
	if svcs == nil {
		return errors.New("service builder returned no services")
	}

	indexService = svcs.Index
	documentService = svcs.Document
	configStore = svcs.Config
	closeServices = svcs.Close
	built = true
	return nil
}

// teardownServices closes and forgets services made by the builder so the
// next Execute builds fresh ones. Services injected directly are left alone.
func teardownServices(_ *cobra.Command, _ []string) error {
	if !built {
		return nil
	}
	closer := closeServices
	built = false
	closeServices = nil
	indexService = nil
	documentService = nil
	configStore = nil

	if closer == nil {
		return nil
	}
	return closer()
}

// needsServices reports whether cmd uses any service.
func needsServices(cmd *cobra.Command) bool {
	return cmd != versionCmd && cmd != rootCmd
}
