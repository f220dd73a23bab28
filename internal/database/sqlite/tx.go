package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
)

// catalogTx implements repository.CatalogTx on a database/sql transaction
type catalogTx struct {
	tx *sql.Tx
}

func (t *catalogTx) Commit(_ context.Context) error {
	return translateTxErr(t.tx.Commit())
}

func (t *catalogTx) Rollback(_ context.Context) error {
	return translateTxErr(t.tx.Rollback())
}

// GetStarshipByID returns nil, nil when the starship is not stored
func (t *catalogTx) GetStarshipByID(ctx context.Context, id string) (*domain.Starship, error) {
	query := `
		SELECT id, name, model, class, cost_in_credits, length, crew, passengers,
		       max_atmosphering_speed, hyperdrive_rating, mglt, cargo_capacity,
		       consumables, manufacturer, created_at, edited_at, url
		FROM catalog_entity
		WHERE id = ?
	`
	var (
		s                   domain.Starship
		createdAt, editedAt string
	)
	err := t.tx.QueryRowContext(ctx, query, id).Scan(
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
		&createdAt,
		&editedAt,
		&s.URL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStarship, err)
	}
	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStarship, err)
	}
	if s.EditedAt, err = parseTime(editedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStarship, err)
	}
	return &s, nil
}

func (t *catalogTx) InsertStarship(ctx context.Context, s *domain.Starship) error {
	query := `
		INSERT INTO catalog_entity (
			id, name, model, class, cost_in_credits, length, crew, passengers,
			max_atmosphering_speed, hyperdrive_rating, mglt, cargo_capacity,
			consumables, manufacturer, created_at, edited_at, url
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := t.tx.ExecContext(ctx, query,
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
		formatTime(s.CreatedAt),
		formatTime(s.EditedAt),
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
		SET name = ?, model = ?, class = ?, cost_in_credits = ?, length = ?,
		    crew = ?, passengers = ?, max_atmosphering_speed = ?,
		    hyperdrive_rating = ?, mglt = ?, cargo_capacity = ?,
		    consumables = ?, manufacturer = ?, edited_at = ?, url = ?
		WHERE id = ?
	`
	_, err := t.tx.ExecContext(ctx, query,
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
		formatTime(s.EditedAt),
		s.URL,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateStarship, err)
	}
	return nil
}

// GetManufacturerByName returns nil, nil when no manufacturer has that name
func (t *catalogTx) GetManufacturerByName(ctx context.Context, name string) (*domain.Manufacturer, error) {
	var m domain.Manufacturer
	err := t.tx.QueryRowContext(ctx, `SELECT id, name FROM manufacturer WHERE name = ?`, name).Scan(&m.ID, &m.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetManufacturer, err)
	}
	return &m, nil
}

func (t *catalogTx) InsertManufacturer(ctx context.Context, name string) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `INSERT INTO manufacturer (name) VALUES (?)`, name)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", ErrMsgFailedToInsertManufacturer, name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", ErrMsgFailedToInsertManufacturer, name, err)
	}
	return id, nil
}

func (t *catalogTx) LinkExists(ctx context.Context, entityID string, manufacturerID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM entity_manufacturer
			WHERE entity_id = ? AND manufacturer_id = ?
		)
	`
	var exists bool
	if err := t.tx.QueryRowContext(ctx, query, entityID, manufacturerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckLink, err)
	}
	return exists, nil
}

func (t *catalogTx) InsertLink(ctx context.Context, entityID string, manufacturerID int64) error {
	query := `INSERT OR IGNORE INTO entity_manufacturer (entity_id, manufacturer_id) VALUES (?, ?)`
	if _, err := t.tx.ExecContext(ctx, query, entityID, manufacturerID); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertLink, err)
	}
	return nil
}

// GetCheckpointForUpdate reads the checkpoint. SQLite has no row locks; the
// single-connection handle keeps any other transaction out until this one ends.
func (t *catalogTx) GetCheckpointForUpdate(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	return getCheckpoint(ctx, t.tx, entityType)
}

func (t *catalogTx) CreateCheckpoint(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	query := `INSERT OR IGNORE INTO sync_checkpoint (entity_type, last_synced, running) VALUES (?, NULL, 0)`
	if _, err := t.tx.ExecContext(ctx, query, entityType); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreateCheckpoint, err)
	}
	cp, err := getCheckpoint(ctx, t.tx, entityType)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, fmt.Errorf("%s: row missing after insert", ErrMsgFailedToCreateCheckpoint)
	}
	return cp, nil
}

func (t *catalogTx) UpdateCheckpoint(ctx context.Context, cp *domain.SyncCheckpoint) error {
	query := `UPDATE sync_checkpoint SET last_synced = ?, running = ? WHERE entity_type = ?`
	res, err := t.tx.ExecContext(ctx, query, formatNullTime(cp.LastSynced), cp.Running, cp.EntityType)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCheckpoint, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateCheckpoint, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: no checkpoint for %q", ErrMsgFailedToUpdateCheckpoint, cp.EntityType)
	}
	return nil
}
