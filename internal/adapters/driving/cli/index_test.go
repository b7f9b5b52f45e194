package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driving"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func TestIndexCmd_SingleSource(t *testing.T) {
	env := setupTestServices(t, strPtr("collection:notes,lang:en fr"))

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt":       "first",
		"sub/b.txt":   "second",
		".hidden.txt": "skipped",
		"image.bin":   "\x00\x01",
	})

	out, err := execute(t, "index", root, "--source", "notes")

	require.NoError(t, err)
	assert.Contains(t, out, "Indexing "+root+" as source notes...")
	assert.Contains(t, out, "notes: indexed 2, dropped 0, removed 0")

	docs, err := env.store.ListDocuments(context.Background(), "notes")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	for _, doc := range docs {
		assert.Equal(t, []string{"notes"}, doc.Fields.Get("collection"))
		assert.Equal(t, []string{"en", "fr"}, doc.Fields.Get("lang"))
		assert.Equal(t, domain.DocumentID("notes", doc.URI), doc.ID)
	}
}

func TestIndexCmd_ReindexRemovesDeletedFiles(t *testing.T) {
	env := setupTestServices(t, nil)

	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a", "b.txt": "b"})

	_, err := execute(t, "index", root, "-s", "notes")
	require.NoError(t, err)
	require.Equal(t, 2, env.store.Len())

	require.NoError(t, os.Remove(filepath.Join(root, "b.txt")))

	out, err := execute(t, "index", root, "-s", "notes")
	require.NoError(t, err)
	assert.Contains(t, out, "notes: indexed 1, dropped 0, removed 1")
	assert.Equal(t, 1, env.store.Len())
}

func TestIndexCmd_DefaultSourceID(t *testing.T) {
	env := setupTestServices(t, nil)

	root := filepath.Join(t.TempDir(), "My Notes")
	writeTree(t, root, map[string]string{"a.txt": "a"})

	out, err := execute(t, "index", root)

	require.NoError(t, err)
	assert.Contains(t, out, "my-notes: indexed 1")
	docs, err := env.store.ListDocuments(context.Background(), "my-notes")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestIndexCmd_MultipleSources(t *testing.T) {
	env := setupTestServices(t, strPtr("team:docs"))

	base := t.TempDir()
	alpha := filepath.Join(base, "alpha")
	beta := filepath.Join(base, "beta")
	writeTree(t, alpha, map[string]string{"a.txt": "a"})
	writeTree(t, beta, map[string]string{"b.txt": "b", "c.txt": "c"})

	out, err := execute(t, "index", alpha, beta)

	require.NoError(t, err)
	assert.Contains(t, out, "Indexing 2 sources...")
	assert.Contains(t, out, "alpha: indexed 1")
	assert.Contains(t, out, "beta: indexed 2")
	assert.Equal(t, 3, env.store.Len())
}

func TestIndexCmd_MissingPath(t *testing.T) {
	setupTestServices(t, nil)

	_, err := execute(t, "index", filepath.Join(t.TempDir(), "missing"))

	assert.ErrorIs(t, err, domain.ErrConnectorValidation)
}

func TestIndexCmd_FlagConflicts(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"source with several paths", []string{"index", "a", "b", "--source", "x"}},
		{"watch with several paths", []string{"index", "a", "b", "--watch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t, nil)

			_, err := execute(t, tt.args...)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestIndexCmd_DuplicateSourceIDs(t *testing.T) {
	setupTestServices(t, nil)

	base := t.TempDir()
	one := filepath.Join(base, "one", "notes")
	two := filepath.Join(base, "two", "notes")
	writeTree(t, one, map[string]string{"a.txt": "a"})
	writeTree(t, two, map[string]string{"a.txt": "a"})

	_, err := execute(t, "index", one, two)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIndexCmd_NoService(t *testing.T) {
	setupTestServices(t, nil)
	indexService = nil

	_, err := execute(t, "index", t.TempDir())
	assert.EqualError(t, err, "index service not configured")
}

func TestPrintIndexStatus(t *testing.T) {
	out := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(out)

	printIndexStatus(cmd, driving.IndexStatus{SourceID: "web", DocumentsIndexed: 3})
	assert.Equal(t, "web: indexed 3, dropped 0, removed 0\n", out.String())

	out.Reset()
	printIndexStatus(cmd, driving.IndexStatus{SourceID: "web", DocumentsIndexed: 3, DocumentsSkipped: 2, ErrorCount: 1})
	assert.Contains(t, out.String(), "web: indexed 3, dropped 0, removed 0, skipped 2\n")
	assert.Contains(t, out.String(), "1 documents failed")
}

func TestIndexCmd_Flags(t *testing.T) {
	assert.NotNil(t, indexCmd.Flags().ShorthandLookup("s"))
	assert.NotNil(t, indexCmd.Flags().ShorthandLookup("w"))
}
