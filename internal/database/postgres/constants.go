package postgres

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction = "failed to begin transaction"
	ErrMsgFailedToCommit           = "failed to commit transaction"
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
)
