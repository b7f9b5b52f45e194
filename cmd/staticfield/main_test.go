package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/staticfield/internal/adapters/driven/config/file"
	"github.com/custodia-labs/staticfield/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/staticfield/internal/core/domain"
)

func writeConfig(t *testing.T, dir string, values map[string]any) {
	t.Helper()
	conf, err := file.NewConfigStore(dir)
	require.NoError(t, err)
	for k, v := range values {
		require.NoError(t, conf.Set(k, v))
	}
}

func TestBuildServices_SQLiteDefault(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{domain.KeyStaticFields: "lang:en"})

	svcs, err := buildServices(dir)
	require.NoError(t, err)
	require.NotNil(t, svcs.Close)
	defer func() { assert.NoError(t, svcs.Close()) }()

	assert.FileExists(t, filepath.Join(dir, "data", sqlite.DBFileName))
	assert.Equal(t, []domain.PageField{
		domain.PageFieldURL,
		domain.PageFieldTitle,
		domain.PageFieldContent,
		domain.PageFieldInlinks,
	}, svcs.Index.RequiredFields())
}

func TestBuildServices_IndexesThroughSQLite(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{domain.KeyStaticFields: "collection:notes"})

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644))

	svcs, err := buildServices(dir)
	require.NoError(t, err)
	defer func() { _ = svcs.Close() }()

	status, err := svcs.Index.Index(context.Background(), domain.NewFilesystemSource("notes", root))
	require.NoError(t, err)
	assert.Equal(t, 1, status.DocumentsIndexed)

	docs, err := svcs.Document.ListBySource(context.Background(), "notes")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, []string{"notes"}, docs[0].Fields.Get("collection"))

	assert.FileExists(t, filepath.Join(dir, "data", "locks", "notes.lock"))
}

func TestBuildServices_MemoryBackend(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, map[string]any{domain.KeyStorageBackend: "memory"})

	svcs, err := buildServices(dir)

	require.NoError(t, err)
	assert.Nil(t, svcs.Close)
	assert.NoFileExists(t, filepath.Join(dir, "data", sqlite.DBFileName))
}

func TestBuildServices_StorageDirOverride(t *testing.T) {
	dir := t.TempDir()
	dataDir := filepath.Join(t.TempDir(), "elsewhere")
	writeConfig(t, dir, map[string]any{domain.KeyStorageDir: dataDir})

	svcs, err := buildServices(dir)
	require.NoError(t, err)
	defer func() { _ = svcs.Close() }()

	assert.FileExists(t, filepath.Join(dataDir, sqlite.DBFileName))
}

func TestBuildServices_Errors(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, map[string]any{domain.KeyStorageBackend: "postgres"})

		_, err := buildServices(dir)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown filter", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, map[string]any{domain.KeyFilterOrder: []string{"basic", "nope"}})

		_, err := buildServices(dir)
		assert.Error(t, err)
	})
}
