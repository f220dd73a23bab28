package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Remote catalog errors
	ErrMsgRemoteUnavailable = "remote catalog unavailable"

	// Lock errors
	ErrMsgLockBusy = "sync already running"

	// Database/System errors
	ErrMsgPersistence = "persistence failure"

	// Record errors
	ErrMsgInvalidRecord = "invalid record"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// ErrRemoteUnavailable covers transport failures, non-2xx responses and
	// undecodable bodies from the remote catalog. A run aborts on it.
	ErrRemoteUnavailable = errors.New(ErrMsgRemoteUnavailable)

	// ErrLockBusy is returned before any mutation when a fresh run holds the lock.
	ErrLockBusy = errors.New(ErrMsgLockBusy)

	// ErrPersistence wraps any store failure.
	ErrPersistence = errors.New(ErrMsgPersistence)

	// ErrInvalidRecord marks a remote record that cannot be stored, e.g. a bad timestamp.
	ErrInvalidRecord = errors.New(ErrMsgInvalidRecord)
)
