package store

import "errors"

// Common store errors used across all store implementations.
var (
	// ErrSourceUnavailable is returned when the Task or Action relations
	// cannot be reached or read. This aborts the run; the previous
	// snapshot is preserved for consumers.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrNotFound is returned when a requested entity does not exist in
	// the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an insert would violate a unique
	// constraint, e.g. replaying an already-synced action record.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails a database
	// constraint before being stored. Check the wrapped error for the
	// specific violation.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction fails to commit
	// or an operation inside one fails.
	ErrTransactionFailed = errors.New("transaction failed")
)
