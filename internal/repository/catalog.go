package repository

import (
	"context"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
)

// Catalog defines the persistence the sync engine needs.
// Reads outside a transaction and the batched prune run in autocommit mode.
type Catalog interface {
	// BeginTx starts a transaction for locking or for one entity upsert
	BeginTx(ctx context.Context) (CatalogTx, error)

	// ListStarshipIDs returns every stored starship id
	ListStarshipIDs(ctx context.Context) ([]string, error)

	// DeleteStarships removes the given ids in a single statement and
	// returns the number of rows deleted. Links cascade.
	DeleteStarships(ctx context.Context, ids []string) (int64, error)

	// GetCheckpoint returns the checkpoint row, or nil if none exists yet
	GetCheckpoint(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error)

	// CountStarships and CountLinks back the status endpoint
	CountStarships(ctx context.Context) (int64, error)
	CountLinks(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
}

// CatalogTx holds every write the engine performs inside a transaction
type CatalogTx interface {
	Tx // Commit, Rollback

	// Starship operations
	GetStarshipByID(ctx context.Context, id string) (*domain.Starship, error)
	InsertStarship(ctx context.Context, s *domain.Starship) error
	// UpdateStarship overwrites every mutable column; id and created_at are never touched
	UpdateStarship(ctx context.Context, s *domain.Starship) error

	// Manufacturer operations
	GetManufacturerByName(ctx context.Context, name string) (*domain.Manufacturer, error)
	InsertManufacturer(ctx context.Context, name string) (int64, error)
	LinkExists(ctx context.Context, entityID string, manufacturerID int64) (bool, error)
	InsertLink(ctx context.Context, entityID string, manufacturerID int64) error

	// Checkpoint operations
	// GetCheckpointForUpdate reads the row with a write lock where the store supports it
	GetCheckpointForUpdate(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error)
	CreateCheckpoint(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error)
	UpdateCheckpoint(ctx context.Context, cp *domain.SyncCheckpoint) error
}
