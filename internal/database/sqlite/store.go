// Package sqlite implements the catalog store on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
)

// Store implements repository.Catalog on SQLite.
// The handle must be limited to one connection (see database.OpenSQLite);
// that is what serialises concurrent lock transactions.
type Store struct {
	db *sql.DB
}

// NewStore creates a new catalog store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

var _ repository.Catalog = (*Store)(nil)

// BeginTx starts a transaction
func (s *Store) BeginTx(ctx context.Context) (repository.CatalogTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &catalogTx{tx: tx}, nil
}

// ListStarshipIDs returns every stored starship id
func (s *Store) ListStarshipIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM catalog_entity ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStarships, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStarships, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStarships, err)
	}
	return ids, nil
}

// DeleteStarships deletes ids with one IN statement in autocommit mode
func (s *Store) DeleteStarships(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `DELETE FROM catalog_entity WHERE id IN (` + inPlaceholders(len(ids)) + `)`
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteStarships, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteStarships, err)
	}
	return n, nil
}

// GetCheckpoint returns the checkpoint row or nil
func (s *Store) GetCheckpoint(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	return getCheckpoint(ctx, s.db, entityType)
}

// CountStarships returns the number of stored starships
func (s *Store) CountStarships(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM catalog_entity`)
}

// CountLinks returns the number of starship/manufacturer links
func (s *Store) CountLinks(ctx context.Context) (int64, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM entity_manufacturer`)
}

func (s *Store) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCount, err)
	}
	return n, nil
}

// Ping checks the database file is reachable
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func getCheckpoint(ctx context.Context, q querier, entityType string) (*domain.SyncCheckpoint, error) {
	query := `
		SELECT id, entity_type, last_synced, running
		FROM sync_checkpoint
		WHERE entity_type = ?
	`
	var (
		cp         domain.SyncCheckpoint
		lastSynced sql.NullString
	)
	err := q.QueryRowContext(ctx, query, entityType).Scan(&cp.ID, &cp.EntityType, &lastSynced, &cp.Running)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCheckpoint, err)
	}
	if cp.LastSynced, err = parseNullTime(lastSynced); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCheckpoint, err)
	}
	return &cp, nil
}
