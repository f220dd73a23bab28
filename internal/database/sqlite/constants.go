package sqlite

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
)

// Error Messages - Catalog Operations
const (
	ErrMsgFailedToListStarships      = "failed to list starship ids"
	ErrMsgFailedToDeleteStarships    = "failed to delete starships"
	ErrMsgFailedToGetStarship        = "failed to get starship"
	ErrMsgFailedToInsertStarship     = "failed to insert starship"
	ErrMsgFailedToUpdateStarship     = "failed to update starship"
	ErrMsgFailedToGetManufacturer    = "failed to get manufacturer"
	ErrMsgFailedToInsertManufacturer = "failed to insert manufacturer"
	ErrMsgFailedToCheckLink          = "failed to check manufacturer link"
	ErrMsgFailedToInsertLink         = "failed to insert manufacturer link"
	ErrMsgFailedToGetCheckpoint      = "failed to get sync checkpoint"
	ErrMsgFailedToCreateCheckpoint   = "failed to create sync checkpoint"
	ErrMsgFailedToUpdateCheckpoint   = "failed to update sync checkpoint"
	ErrMsgFailedToCount              = "failed to count rows"
	ErrMsgInvalidTimestamp           = "invalid stored timestamp"
)

// timeLayout is how timestamps are stored in TEXT columns; lexical order matches time order
const timeLayout = "2006-01-02T15:04:05.000000000Z"
