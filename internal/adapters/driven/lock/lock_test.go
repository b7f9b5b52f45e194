package lock

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/staticfield/internal/core/domain"
)

func TestFileLock_LockUnlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "a.lock")
	l := NewFileLock(path)

	require.NoError(t, l.Lock())
	assert.True(t, l.IsLocked())
	assert.FileExists(t, path)

	require.NoError(t, l.Unlock())
	assert.False(t, l.IsLocked())
	assert.Equal(t, path, l.Path())
}

func TestFileLock_UnlockWhenNotLocked(t *testing.T) {
	l := NewFileLock(filepath.Join(t.TempDir(), "a.lock"))

	assert.NoError(t, l.Unlock())
	assert.NoError(t, l.Unlock())
}

func TestFileLock_TryLockContended(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.lock")
	first := NewFileLock(path)
	second := NewFileLock(path)

	ok, err := first.TryLock()
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.TryLock()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, second.IsLocked())

	require.NoError(t, first.Unlock())

	ok, err = second.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, second.Unlock())
}

func TestFileLocker_TryLock(t *testing.T) {
	locker := NewFileLocker(t.TempDir())

	unlock, err := locker.TryLock("notes")
	require.NoError(t, err)

	_, err = locker.TryLock("notes")
	assert.ErrorIs(t, err, domain.ErrIndexLocked)

	// Other sources are independent.
	unlockOther, err := locker.TryLock("docs")
	require.NoError(t, err)
	require.NoError(t, unlockOther())

	require.NoError(t, unlock())

	unlock, err = locker.TryLock("notes")
	require.NoError(t, err)
	require.NoError(t, unlock())
}

func TestFileLocker_PathFor(t *testing.T) {
	dir := t.TempDir()
	locker := NewFileLocker(dir)

	assert.Equal(t, filepath.Join(dir, "my-notes.lock"), locker.PathFor("My Notes"))
}
