package connectors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/staticfield/internal/connectors/filesystem"
	"github.com/custodia-labs/staticfield/internal/core/domain"
	"github.com/custodia-labs/staticfield/internal/core/ports/driven"
)

func TestNewFactory_RegistersFilesystem(t *testing.T) {
	f := NewFactory()

	assert.Equal(t, []string{"filesystem"}, f.SupportedTypes())
}

func TestFactory_CreateFilesystem(t *testing.T) {
	f := NewFactory()
	dir := t.TempDir()

	conn, err := f.Create(context.Background(), domain.NewFilesystemSource("notes", dir))
	require.NoError(t, err)

	fsConn, ok := conn.(*filesystem.Connector)
	require.True(t, ok)
	assert.Equal(t, "notes", fsConn.SourceID())
	assert.Equal(t, dir, fsConn.RootPath())
}

func TestFactory_CreateFilesystemWithoutPath(t *testing.T) {
	f := NewFactory()

	_, err := f.Create(context.Background(), domain.Source{ID: "x", Type: "filesystem"})

	assert.ErrorIs(t, err, domain.ErrConnectorValidation)
}

func TestFactory_CreateUnknownType(t *testing.T) {
	f := NewFactory()

	_, err := f.Create(context.Background(), domain.Source{ID: "x", Type: "ftp"})

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Contains(t, err.Error(), "ftp")
}

func TestFactory_CreateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFactory().Create(ctx, domain.NewFilesystemSource("x", "/tmp"))

	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactory_Register(t *testing.T) {
	f := NewFactory()
	called := false
	f.Register("custom", func(source domain.Source) (driven.Connector, error) {
		called = true
		return filesystem.New(source.ID, "/"), nil
	})

	_, err := f.Create(context.Background(), domain.Source{ID: "c", Type: "custom"})

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []string{"custom", "filesystem"}, f.SupportedTypes())
}
