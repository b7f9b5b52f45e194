package driven

// IndexLocker guards a source against concurrent index runs, including
// runs in other processes sharing the same data directory.
type IndexLocker interface {
	// TryLock acquires the lock for a source without blocking.
	// Returns domain.ErrIndexLocked if another holder has it.
	// The returned function releases the lock.
	TryLock(sourceID string) (unlock func() error, err error)
}
