package synclock

import "time"

// DefaultStaleAfter is how long a running lock is honoured before it is
// assumed abandoned
const DefaultStaleAfter = 5 * time.Hour

// Log messages
const (
	LogMsgLockGranted       = "Sync lock granted"
	LogMsgLockBusy          = "Sync lock held by a fresh run"
	LogMsgStaleLockOverride = "Overriding stale sync lock"
	LogMsgLockReleased      = "Sync lock released"
)

// Error messages
const (
	ErrMsgAcquire = "acquire sync lock"
	ErrMsgRelease = "release sync lock"
)
