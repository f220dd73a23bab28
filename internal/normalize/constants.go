package normalize

// Input markers
const (
	UnknownValue       = "unknown"
	ThousandsSeparator = ","
)

// Log messages
const (
	LogMsgParseWarning = "Could not parse numeric field, storing NULL"
)
