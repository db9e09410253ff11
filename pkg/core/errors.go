package core

import "errors"

// Common errors.
var (
	// ErrValidation is returned when a required field is blank or a value is rejected.
	// The store state is never changed when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation references an absent note.
	ErrNotFound = errors.New("note not found")

	// ErrMalformed is returned by Load when the persisted document cannot be parsed at all.
	ErrMalformed = errors.New("malformed persisted data")

	// ErrKeyNotFound is returned by Storage.Get when the key has never been written.
	ErrKeyNotFound = errors.New("key not found")

	ErrReadOnly = errors.New("storage is in read-only mode")
)
