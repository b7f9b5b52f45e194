package cli

import (
	"bytes"
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/staticfield/internal/adapters/driven/config/file"
	"github.com/custodia-labs/staticfield/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/staticfield/internal/connectors"
	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/services"
	"github.com/custodia-labs/staticfield/internal/indexingfilters"
	"github.com/custodia-labs/staticfield/internal/normalisers"
)

// testEnv holds the services wired into the command tree for one test.
type testEnv struct {
	config *file.ConfigStore
	store  *memory.DocumentStore
}

// setupTestServices wires real services over a temp config dir and an
// in-memory store. static configures index.static for the pipeline;
// pass nil to leave it unset.
func setupTestServices(t *testing.T, static *string) *testEnv {
	t.Helper()

	conf, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	if static != nil {
		require.NoError(t, conf.Set(domain.KeyStaticFields, *static))
	}

	registry := indexingfilters.NewRegistry()
	indexingfilters.RegisterDefaults(registry)
	pipeline, err := indexingfilters.BuildPipeline(registry, indexingfilters.FilterOrder(conf), conf)
	require.NoError(t, err)

	store := memory.NewDocumentStore()

	origIndex, origDocument, origConfig, origClose := indexService, documentService, configStore, closeServices
	origBuilder := serviceBuilder

	indexService = services.NewIndexService(connectors.NewFactory(), normalisers.NewDefaultRegistry(), pipeline, store)
	documentService = services.NewDocumentService(store)
	configStore = conf
	closeServices = nil
	serviceBuilder = nil
	built = false

	t.Cleanup(func() {
		indexService, documentService, configStore, closeServices = origIndex, origDocument, origConfig, origClose
		serviceBuilder = origBuilder
		built = false
		resetFlags()
	})

	return &testEnv{config: conf, store: store}
}

// resetFlags restores command flags, which persist between Execute calls.
func resetFlags() {
	documentOutput = outputText
	fieldsOutput = outputText
	indexSourceID = ""
	indexWatch = false
	versionShort = false
	verbose = false
	configDir = ""
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

func seedDocument(t *testing.T, env *testEnv, id, sourceID, uri string, fields map[string][]string, order ...string) {
	t.Helper()

	doc := &domain.IndexDocument{
		ID:        id,
		SourceID:  sourceID,
		URI:       uri,
		Fields:    domain.NewFields(),
		IndexedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	for _, name := range order {
		for _, v := range fields[name] {
			doc.Fields.Add(name, v)
		}
	}
	require.NoError(t, env.store.SaveDocument(context.Background(), doc))
}

func strPtr(s string) *string { return &s }

func TestRootCmd_Metadata(t *testing.T) {
	assert.Equal(t, "staticfield", rootCmd.Use)
	assert.True(t, rootCmd.SilenceUsage)
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config-dir"))
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"index", "fields", "config", "document", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestSetVersion(t *testing.T) {
	orig := version
	defer func() { version = orig }()

	SetVersion("")
	assert.Equal(t, orig, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestSetupServices_UsesBuilder(t *testing.T) {
	setupTestServices(t, nil)
	configStore = nil

	conf, err := file.NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, conf.Set(domain.KeyStaticFields, "a:1"))

	var gotDir string
	closed := false
	SetServiceBuilder(func(dir string) (*Services, error) {
		gotDir = dir
		return &Services{
			Config: conf,
			Close: func() error {
				closed = true
				return nil
			},
		}, nil
	})

	out, err := execute(t, "--config-dir", "/tmp/custom", "fields")

	require.NoError(t, err)
	assert.Equal(t, "/tmp/custom", gotDir)
	assert.Contains(t, out, "a: 1")
	assert.True(t, closed)
	assert.Nil(t, configStore)
}

func TestSetupServices_RebuildsWithoutCloser(t *testing.T) {
	setupTestServices(t, nil)
	configStore = nil

	calls := 0
	SetServiceBuilder(func(string) (*Services, error) {
		calls++
		conf, err := file.NewConfigStore(t.TempDir())
		if err != nil {
			return nil, err
		}
		if err := conf.Set(domain.KeyStaticFields, "run:"+strconv.Itoa(calls)); err != nil {
			return nil, err
		}
		return &Services{Config: conf}, nil
	})

	out, err := execute(t, "fields")
	require.NoError(t, err)
	assert.Contains(t, out, "run: 1")
	assert.Nil(t, configStore)

	out, err = execute(t, "fields")
	require.NoError(t, err)
	assert.Contains(t, out, "run: 2")
	assert.Equal(t, 2, calls)
	assert.Nil(t, configStore)
}

func TestTeardownServices_KeepsInjectedServices(t *testing.T) {
	env := setupTestServices(t, nil)

	require.NoError(t, teardownServices(nil, nil))

	assert.Same(t, env.config, configStore)
	assert.NotNil(t, indexService)
	assert.NotNil(t, documentService)
}

func TestSetupServices_BuilderError(t *testing.T) {
	setupTestServices(t, nil)
	configStore = nil

	SetServiceBuilder(func(string) (*Services, error) {
		return nil, assert.AnError
	})

	_, err := execute(t, "fields")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSetupServices_SkippedForVersion(t *testing.T) {
	setupTestServices(t, nil)
	configStore = nil

	called := false
	SetServiceBuilder(func(string) (*Services, error) {
		called = true
		return &Services{}, nil
	})

	_, err := execute(t, "version")

	require.NoError(t, err)
	assert.False(t, called)
}
