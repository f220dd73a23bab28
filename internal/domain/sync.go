package domain

import "time"

// SyncCheckpoint is the persisted lock and progress marker for one entity type
type SyncCheckpoint struct {
	ID         int64      `json:"id" db:"id"`
	EntityType string     `json:"entity_type" db:"entity_type"`
	LastSynced *time.Time `json:"last_synced,omitempty" db:"last_synced"`
	Running    bool       `json:"running" db:"running"`
}

// IsStale reports whether a running checkpoint may be taken over at now.
// A running checkpoint that was never stamped is always stale.
func (c *SyncCheckpoint) IsStale(now time.Time, staleAfter time.Duration) bool {
	if c.LastSynced == nil {
		return true
	}
	return now.Sub(*c.LastSynced) > staleAfter
}
