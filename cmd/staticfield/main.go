// Package main provides the entry point for the staticfield CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/staticfield/internal/adapters/driven/config/file"
	"github.com/custodia-labs/staticfield/internal/adapters/driven/lock"
	"github.com/custodia-labs/staticfield/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/staticfield/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/staticfield/internal/adapters/driving/cli"
	"github.com/custodia-labs/staticfield/internal/connectors"
	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
	"github.com/custodia-labs/staticfield/internal/core/services"
	"github.com/custodia-labs/staticfield/internal/indexingfilters"
	"github.com/custodia-labs/staticfield/internal/logger"
	"github.com/custodia-labs/staticfield/internal/normalisers"
)

// version is set via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetServiceBuilder(buildServices)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// buildServices wires configuration, storage and the indexing pipeline.
func buildServices(configDir string) (*cli.Services, error) {
	conf, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger.SetFormat(conf.GetString(domain.KeyLogFormat))

	registry := indexingfilters.NewRegistry()
	indexingfilters.RegisterDefaults(registry)
	pipeline, err := indexingfilters.BuildPipeline(registry, indexingfilters.FilterOrder(conf), conf)
	if err != nil {
		return nil, fmt.Errorf("building filter pipeline: %w", err)
	}
	logger.Debug("Indexing filters: %v", pipeline.Names())

	dataDir := dataDirFor(conf)
	docStore, closeStore, err := openDocumentStore(conf, dataDir)
	if err != nil {
		return nil, err
	}

	parallelism := conf.GetInt(domain.KeyIndexParallelism)
	if parallelism < 1 {
		parallelism = domain.DefaultIndexParallelism
	}

	indexSvc := services.NewIndexService(
		connectors.NewFactory(),
		normalisers.NewDefaultRegistry(),
		pipeline,
		docStore,
		services.WithLocker(lock.NewFileLocker(filepath.Join(dataDir, "locks"))),
		services.WithParallelism(parallelism),
	)

	return &cli.Services{
		Index:    indexSvc,
		Document: services.NewDocumentService(docStore),
		Config:   conf,
		Close:    closeStore,
	}, nil
}

// dataDirFor returns storage.dir, or a data directory next to the config file.
func dataDirFor(conf driven.ConfigStore) string {
	if dir := conf.GetString(domain.KeyStorageDir); dir != "" {
		return dir
	}
	return filepath.Join(filepath.Dir(conf.Path()), "data")
}

// openDocumentStore opens the configured storage backend.
func openDocumentStore(conf driven.ConfigStore, dataDir string) (driven.DocumentStore, func() error, error) {
	backend := domain.StorageBackend(conf.GetString(domain.KeyStorageBackend))
	if backend == "" {
		backend = domain.StorageSQLite
	}

	switch backend {
	case domain.StorageMemory:
		logger.Debug("Using in-memory document store")
		return memory.NewDocumentStore(), nil, nil

	case domain.StorageSQLite:
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening document store: %w", err)
		}
		logger.Debug("Using SQLite document store at %s", store.Path())
		return store.DocumentStore(), store.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, backend)
	}
}
