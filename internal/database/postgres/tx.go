package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
)

// catalogTx implements repository.CatalogTx on a pgx transaction
type catalogTx struct {
	tx pgx.Tx
}

func (t *catalogTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return translateTxErr(err)
	}
	return nil
}

func (t *catalogTx) Rollback(ctx context.Context) error {
	return translateTxErr(t.tx.Rollback(ctx))
}

// GetStarshipByID returns nil, nil when the starship is not stored
func (t *catalogTx) GetStarshipByID(ctx context.Context, id string) (*domain.Starship, error) {
	query := `
		SELECT id, name, model, class, cost_in_credits, length, crew, passengers,
		       max_atmosphering_speed, hyperdrive_rating, mglt, cargo_capacity,
		       consumables, manufacturer, created_at, edited_at, url
		FROM catalog_entity
		WHERE id = $1
	`
	var s domain.Starship
	err := t.tx.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Model,
		&s.Class,
		&s.CostInCredits,
		&s.Length,
		&s.Crew,
		&s.Passengers,
		&s.MaxAtmospheringSpeed,
		&s.HyperdriveRating,
		&s.MGLT,
		&s.CargoCapacity,
		&s.Consumables,
		&s.Manufacturer,
		&s.CreatedAt,
		&s.EditedAt,
		&s.URL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStarship, err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.EditedAt = s.EditedAt.UTC()
	return &s, nil
}

func (t *catalogTx) InsertStarship(ctx context.Context, s *domain.Starship) error {
	query := `
		INSERT INTO catalog_entity (
			id, name, model, class, cost_in_credits, length, crew, passengers,
			max_atmosphering_speed, hyperdrive_rating, mglt, cargo_capacity,
			consumables, manufacturer, created_at, edited_at, url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`
	_, err := t.tx.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Model,
		s.Class,
		s.CostInCredits,
		s.Length,
		s.Crew,
		s.Passengers,
		s.MaxAtmospheringSpeed,
		s.HyperdriveRating,
		s.MGLT,
		s.CargoCapacity,
		s.Consumables,
		s.Manufacturer,
		s.CreatedAt,
		s.EditedAt,
		s.URL,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertStarship, err)
	}
	return nil
}

// UpdateStarship never writes id or created_at
func (t *catalogTx) UpdateStarship(ctx context.Context, s *domain.Starship) error {
	query := `
		UPDATE catalog_entity
		SET name = $2, model = $3, class = $4, cost_in_credits = $5, length = $6,
		    crew = $7, passengers = $8, max_atmosphering_speed = $9,
		    hyperdrive_rating = $10, mglt = $11, cargo_capacity = $12,
		    consumables = $13, manufacturer = $14, edited_at = $15, url = $16
		WHERE id = $1
	`
	_, err := t.tx.Exec(ctx, query,
		s.ID,
		s.Name,
		s.Model,
		s.Class,
		s.CostInCredits,
		s.Length,
		s.Crew,
		s.Passengers,
		s.MaxAtmospheringSpeed,
		s.HyperdriveRating,
		s.MGLT,
		s.CargoCapacity,
		s.Consumables,
		s.Manufacturer,
		s.EditedAt,
		s.URL,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateStarship, err)
	}
	return nil
}

// GetManufacturerByName returns nil, nil when no manufacturer has that name
func (t *catalogTx) GetManufacturerByName(ctx context.Context, name string) (*domain.Manufacturer, error) {
	var m domain.Manufacturer
	err := t.tx.QueryRow(ctx, `SELECT id, name FROM manufacturer WHERE name = $1`, name).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetManufacturer, err)
	}
	return &m, nil
}

func (t *catalogTx) InsertManufacturer(ctx context.Context, name string) (int64, error) {
	var id int64
	err := t.tx.QueryRow(ctx, `INSERT INTO manufacturer (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", ErrMsgFailedToInsertManufacturer, name, err)
	}
	return id, nil
}

func (t *catalogTx) LinkExists(ctx context.Context, entityID string, manufacturerID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM entity_manufacturer
			WHERE entity_id = $1 AND manufacturer_id = $2
		)
	`
	var exists bool
	if err := t.tx.QueryRow(ctx, query, entityID, manufacturerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckLink, err)
	}
	return exists, nil
}

func (t *catalogTx) InsertLink(ctx context.Context, entityID string, manufacturerID int64) error {
	query := `
		INSERT INTO entity_manufacturer (entity_id, manufacturer_id)
		VALUES ($1, $2)
		ON CONFLICT (entity_id, manufacturer_id) DO NOTHING
	`
	if _, err := t.tx.Exec(ctx, query, entityID, manufacturerID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertLink, err)
	}
	return nil
}

// GetCheckpointForUpdate row-locks the checkpoint until the transaction ends
func (t *catalogTx) GetCheckpointForUpdate(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	return scanCheckpoint(t.tx.QueryRow(ctx, selectCheckpoint+` FOR UPDATE`, entityType))
}

// CreateCheckpoint inserts a free checkpoint. When another process created it
// first, the existing row is returned locked instead.
func (t *catalogTx) CreateCheckpoint(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	query := `
		INSERT INTO sync_checkpoint (entity_type, last_synced, running)
		VALUES ($1, NULL, FALSE)
		ON CONFLICT (entity_type) DO NOTHING
	`
	if _, err := t.tx.Exec(ctx, query, entityType); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateCheckpoint, err)
	}
	cp, err := t.GetCheckpointForUpdate(ctx, entityType)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, fmt.Errorf("%s: row missing after insert", ErrMsgFailedToCreateCheckpoint)
	}
	return cp, nil
}

func (t *catalogTx) UpdateCheckpoint(ctx context.Context, cp *domain.SyncCheckpoint) error {
	query := `
		UPDATE sync_checkpoint
		SET last_synced = $2, running = $3
		WHERE entity_type = $1
	`
	tag, err := t.tx.Exec(ctx, query, cp.EntityType, cp.LastSynced, cp.Running)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCheckpoint, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: no checkpoint for %q", ErrMsgFailedToUpdateCheckpoint, cp.EntityType)
	}
	return nil
}
