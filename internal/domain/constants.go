package domain

// Entity type keys used by the sync checkpoint table
const (
	EntityTypeStarships = "starships"
)

// ManufacturerSeparator is the literal delimiter between manufacturer names in
// the remote manufacturer field. No other trimming is applied.
const ManufacturerSeparator = ", "

// KnownEntityTypes lists every entity type the engine can reconcile.
var KnownEntityTypes = []string{EntityTypeStarships}

// IsKnownEntityType reports whether entityType can be synced
func IsKnownEntityType(entityType string) bool {
	for _, t := range KnownEntityTypes {
		if t == entityType {
			return true
		}
	}
	return false
}
