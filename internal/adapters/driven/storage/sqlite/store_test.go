package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

// newTestDocument builds an index document with a couple of fields.
func newTestDocument(id, sourceID, uri string) *domain.IndexDocument {
	doc := &domain.IndexDocument{
		ID:        id,
		SourceID:  sourceID,
		URI:       uri,
		Fields:    domain.NewFields(),
		IndexedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	doc.Add("title", "Test "+id)
	doc.Add("collection", "news")
	doc.Add("collection", "archive")
	return doc
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_CreatesDatabase(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "index.db"), store.Path())
	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_CreatesNestedDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewStore_InvalidDir(t *testing.T) {
	store, err := NewStore("/dev/null/cannot/create")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store1, err := NewStore(dir)
	require.NoError(t, err)
	v1, err := store1.SchemaVersion()
	require.NoError(t, err)
	require.NoError(t, store1.Close())

	store2, err := NewStore(dir)
	require.NoError(t, err)
	defer store2.Close()
	v2, err := store2.SchemaVersion()
	require.NoError(t, err)

	assert.Equal(t, 1, v1)
	assert.Equal(t, v1, v2)
}

func TestDefaultDataDir(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	dir, err := DefaultDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".staticfield", "data"), dir)
}

// ==================== Document Store Tests ====================

func TestDocumentStore_SaveAndGet(t *testing.T) {
	store := setupTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := newTestDocument("doc-1", "notes", "/notes/a.txt")
	require.NoError(t, docs.SaveDocument(ctx, doc))

	got, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)

	assert.Equal(t, "doc-1", got.ID)
	assert.Equal(t, "notes", got.SourceID)
	assert.Equal(t, "/notes/a.txt", got.URI)
	assert.Equal(t, []string{"title", "collection"}, got.Fields.Names())
	assert.Equal(t, []string{"news", "archive"}, got.Fields.Get("collection"))
	assert.True(t, doc.IndexedAt.Equal(got.IndexedAt))
}

func TestDocumentStore_SaveUpdates(t *testing.T) {
	store := setupTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := newTestDocument("doc-1", "notes", "/notes/a.txt")
	require.NoError(t, docs.SaveDocument(ctx, doc))

	doc.Fields = domain.NewFields()
	doc.Add("lang", "en")
	require.NoError(t, docs.SaveDocument(ctx, doc))

	got, err := docs.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"lang"}, got.Fields.Names())
}

func TestDocumentStore_SaveReplacesSameURI(t *testing.T) {
	store := setupTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, newTestDocument("old", "notes", "/notes/a.txt")))
	require.NoError(t, docs.SaveDocument(ctx, newTestDocument("new", "notes", "/notes/a.txt")))

	list, err := docs.ListDocuments(ctx, "notes")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].ID)
}

func TestDocumentStore_SaveNil(t *testing.T) {
	store := setupTestStore(t)

	err := store.DocumentStore().SaveDocument(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_SaveNilFields(t *testing.T) {
	store := setupTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	doc := &domain.IndexDocument{ID: "bare", SourceID: "notes", URI: "/bare", IndexedAt: time.Now()}
	require.NoError(t, docs.SaveDocument(ctx, doc))

	got, err := docs.GetDocument(ctx, "bare")
	require.NoError(t, err)
	require.NotNil(t, got.Fields)
	assert.Equal(t, 0, got.Fields.Len())
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store := setupTestStore(t)

	got, err := store.DocumentStore().GetDocument(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, got)
}

func TestDocumentStore_Delete(t *testing.T) {
	store := setupTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, newTestDocument("doc-1", "notes", "/notes/a.txt")))
	require.NoError(t, docs.DeleteDocument(ctx, "doc-1"))

	_, err := docs.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting a missing document is not an error.
	assert.NoError(t, docs.DeleteDocument(ctx, "doc-1"))
}

func TestDocumentStore_ListOrderedByURI(t *testing.T) {
	store := setupTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	require.NoError(t, docs.SaveDocument(ctx, newTestDocument("c", "notes", "/notes/c.txt")))
	require.NoError(t, docs.SaveDocument(ctx, newTestDocument("a", "notes", "/notes/a.txt")))
	require.NoError(t, docs.SaveDocument(ctx, newTestDocument("b", "notes", "/notes/b.txt")))
	require.NoError(t, docs.SaveDocument(ctx, newTestDocument("x", "other", "/other/x.txt")))

	list, err := docs.ListDocuments(ctx, "notes")
	require.NoError(t, err)

	require.Len(t, list, 3)
	assert.Equal(t, "/notes/a.txt", list[0].URI)
	assert.Equal(t, "/notes/b.txt", list[1].URI)
	assert.Equal(t, "/notes/c.txt", list[2].URI)
	assert.Equal(t, []string{"news", "archive"}, list[0].Fields.Get("collection"))
}

func TestDocumentStore_ListEmpty(t *testing.T) {
	store := setupTestStore(t)

	list, err := store.DocumentStore().ListDocuments(context.Background(), "none")

	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDocumentStore_ClosedDatabase(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	docs := store.DocumentStore()
	require.NoError(t, store.Close())

	ctx := context.Background()
	assert.Error(t, docs.SaveDocument(ctx, newTestDocument("a", "s", "/a")))
	_, err = docs.ListDocuments(ctx, "s")
	assert.Error(t, err)
	assert.Error(t, docs.DeleteDocument(ctx, "a"))
}
