package starship

// DefaultPruneBatchSize keeps each DELETE under SQLite's bound-parameter limit
const DefaultPruneBatchSize = 900

// DefaultManufacturerCacheSize bounds the per-run name → id cache
const DefaultManufacturerCacheSize = 512

// Field names used in parse warnings
const (
	FieldCostInCredits    = "cost_in_credits"
	FieldLength           = "length"
	FieldCrew             = "crew"
	FieldPassengers       = "passengers"
	FieldHyperdriveRating = "hyperdrive_rating"
	FieldMGLT             = "MGLT"
	FieldCargoCapacity    = "cargo_capacity"
	FieldCreated          = "created"
	FieldEdited           = "edited"
)

// Log messages
const (
	LogMsgManufacturerCreated = "Manufacturer created"
	LogMsgStarshipInserted    = "Starship inserted"
	LogMsgStarshipUpdated     = "Starship updated"
	LogMsgPruneBatchDeleted   = "Prune batch deleted"
	LogMsgPruneComplete       = "Prune complete"
)

// Error messages
const (
	ErrMsgLookupStarship     = "lookup starship"
	ErrMsgWriteStarship      = "write starship"
	ErrMsgFindManufacturer   = "find manufacturer"
	ErrMsgCreateManufacturer = "create manufacturer"
	ErrMsgLinkManufacturer   = "link manufacturer"
	ErrMsgBeginUpsert        = "begin upsert"
	ErrMsgCommitUpsert       = "commit upsert"
	ErrMsgDeleteBatch        = "delete prune batch"
)
