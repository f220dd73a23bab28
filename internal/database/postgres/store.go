package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
)

// Store implements repository.Catalog on PostgreSQL
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new catalog store
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

var _ repository.Catalog = (*Store)(nil)

// BeginTx starts a transaction for locking or one entity upsert
func (s *Store) BeginTx(ctx context.Context) (repository.CatalogTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &catalogTx{tx: tx}, nil
}

// ListStarshipIDs returns every stored starship id
func (s *Store) ListStarshipIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT id FROM catalog_entity ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListStarships, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
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
	tag, err := s.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteStarships, err)
	}
	return tag.RowsAffected(), nil
}

// GetCheckpoint returns the checkpoint row or nil
func (s *Store) GetCheckpoint(ctx context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	return scanCheckpoint(s.db.QueryRow(ctx, selectCheckpoint, entityType))
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
	if err := s.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCount, err)
	}
	return n, nil
}

// Ping checks connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

const selectCheckpoint = `
	SELECT id, entity_type, last_synced, running
	FROM sync_checkpoint
	WHERE entity_type = $1
`

func scanCheckpoint(row pgx.Row) (*domain.SyncCheckpoint, error) {
	var cp domain.SyncCheckpoint
	err := row.Scan(&cp.ID, &cp.EntityType, &cp.LastSynced, &cp.Running)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCheckpoint, err)
	}
	cp.LastSynced = ptrUTC(cp.LastSynced)
	return &cp, nil
}
