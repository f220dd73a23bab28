package handler

// Request and sync messages returned in error bodies. Driver and store
// errors never appear here.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	ErrMsgSyncAlreadyQueued = "A sync is already queued"
	ErrMsgGetStatusFailed   = "Failed to read sync status"
)

const (
	MsgSyncQueued = "Sync queued"
)
