package swapi

import "time"

// Paths
const (
	PathStarships = "/starships"
)

// Metric endpoint labels
const (
	EndpointList   = "list"
	EndpointDetail = "detail"
)

// Defaults
const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "starships-backend/1.0"
	MaxBodyBytes     = 4 << 20

	// total_records is remote input; it only hints the slice capacity
	MaxPreallocIDs = 1024
)

// Log messages
const (
	LogMsgFetchingPage  = "Fetching starship page"
	LogMsgPagesComplete = "Enumerated remote starships"
	LogMsgFetchDetail   = "Fetching starship detail"
)
