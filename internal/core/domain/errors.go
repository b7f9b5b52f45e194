package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown connector, normaliser or filter type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrIndexInProgress indicates an index run is already active for a source.
	ErrIndexInProgress = errors.New("index in progress")

	// ErrIndexLocked indicates another process holds the index lock.
	ErrIndexLocked = errors.New("index locked by another process")

	// ErrConnectorValidation indicates connector validation failed.
	// The source is misconfigured or unreadable.
	ErrConnectorValidation = errors.New("connector validation failed")

	// ErrConnectorClosed indicates the connector has been closed.
	ErrConnectorClosed = errors.New("connector closed")
)
