// Package catalogtest is a behavioural suite every repository.Catalog
// implementation must pass.
package catalogtest

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
)

// Factory returns an empty, migrated store
type Factory func(t *testing.T) repository.Catalog

// Run executes the suite against stores built by newStore
func Run(t *testing.T, newStore Factory) {
	t.Run("StarshipRoundTrip", func(t *testing.T) { testStarshipRoundTrip(t, newStore(t)) })
	t.Run("UpdateKeepsCreatedAt", func(t *testing.T) { testUpdateKeepsCreatedAt(t, newStore(t)) })
	t.Run("RollbackDiscardsWrites", func(t *testing.T) { testRollbackDiscardsWrites(t, newStore(t)) })
	t.Run("ManufacturersAndLinks", func(t *testing.T) { testManufacturersAndLinks(t, newStore(t)) })
	t.Run("DeleteCascadesLinks", func(t *testing.T) { testDeleteCascadesLinks(t, newStore(t)) })
	t.Run("Checkpoint", func(t *testing.T) { testCheckpoint(t, newStore(t)) })
	t.Run("CommitTwice", func(t *testing.T) { testCommitTwice(t, newStore(t)) })
}

// Starship builds a fully populated record
func Starship(id string) *domain.Starship {
	cost := int64(3500000)
	length := 150.0
	crew := int64(30)
	speed := "950"
	rating := 2.0
	consumables := "1 year"
	return &domain.Starship{
		ID:                   id,
		Name:                 "CR90 corvette " + id,
		Model:                "CR90 corvette",
		Class:                "corvette",
		CostInCredits:        &cost,
		Length:               &length,
		Crew:                 &crew,
		MaxAtmospheringSpeed: &speed,
		HyperdriveRating:     &rating,
		Consumables:          &consumables,
		Manufacturer:         "Corellian Engineering Corporation",
		CreatedAt:            time.Date(2014, 12, 10, 14, 20, 33, 369000000, time.UTC),
		EditedAt:             time.Date(2014, 12, 20, 21, 23, 49, 867000000, time.UTC),
		URL:                  "https://www.swapi.tech/api/starships/" + id,
	}
}

// InsertStarships commits the given ids in one transaction
func InsertStarships(t *testing.T, store repository.Catalog, ids ...string) {
	t.Helper()
	ctx := context.Background()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	for _, id := range ids {
		require.NoError(t, tx.InsertStarship(ctx, Starship(id)))
	}
	require.NoError(t, tx.Commit(ctx))
}

func testStarshipRoundTrip(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	want := Starship("2")

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	missing, err := tx.GetStarshipByID(ctx, "2")
	require.NoError(t, err)
	assert.Nil(t, missing)
	require.NoError(t, tx.InsertStarship(ctx, want))
	require.NoError(t, tx.Commit(ctx))

	tx, err = store.BeginTx(ctx)
	require.NoError(t, err)
	got, err := tx.GetStarshipByID(ctx, "2")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	require.NotNil(t, got)
	assert.Equal(t, want, got)
	assert.Nil(t, got.Passengers, "NULL stays nil")
	assert.Nil(t, got.MGLT)

	// Stores with a single connection cannot read outside an open tx
	ids, err := store.ListStarshipIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids)
}

func testUpdateKeepsCreatedAt(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	InsertStarships(t, store, "9")

	changed := Starship("9")
	changed.Name = "Death Star"
	changed.CostInCredits = nil
	changed.CreatedAt = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	changed.EditedAt = time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpdateStarship(ctx, changed))
	require.NoError(t, tx.Commit(ctx))

	tx, err = store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	got, err := tx.GetStarshipByID(ctx, "9")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "Death Star", got.Name)
	assert.Nil(t, got.CostInCredits)
	assert.Equal(t, changed.EditedAt, got.EditedAt)
	assert.Equal(t, Starship("9").CreatedAt, got.CreatedAt, "created_at is immutable")
}

func testRollbackDiscardsWrites(t *testing.T, store repository.Catalog) {
	ctx := context.Background()

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.InsertStarship(ctx, Starship("5")))
	_, err = tx.InsertManufacturer(ctx, "Kuat Drive Yards")
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	ids, err := store.ListStarshipIDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func testManufacturersAndLinks(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	InsertStarships(t, store, "12")

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)

	m, err := tx.GetManufacturerByName(ctx, "Incom Corporation")
	require.NoError(t, err)
	assert.Nil(t, m)

	id, err := tx.InsertManufacturer(ctx, "Incom Corporation")
	require.NoError(t, err)
	assert.NotZero(t, id)

	m, err = tx.GetManufacturerByName(ctx, "Incom Corporation")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, id, m.ID)

	// Names are exact: no case folding
	other, err := tx.GetManufacturerByName(ctx, "incom corporation")
	require.NoError(t, err)
	assert.Nil(t, other)

	exists, err := tx.LinkExists(ctx, "12", id)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, tx.InsertLink(ctx, "12", id))
	require.NoError(t, tx.InsertLink(ctx, "12", id), "duplicate link is ignored")

	exists, err = tx.LinkExists(ctx, "12", id)
	require.NoError(t, err)
	assert.True(t, exists)
	require.NoError(t, tx.Commit(ctx))

	links, err := store.CountLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), links)
}

func testDeleteCascadesLinks(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	ids := make([]string, 0, 20)
	for i := 1; i <= 20; i++ {
		ids = append(ids, fmt.Sprintf("%d", i))
	}
	InsertStarships(t, store, ids...)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	mid, err := tx.InsertManufacturer(ctx, "Sienar Fleet Systems")
	require.NoError(t, err)
	require.NoError(t, tx.InsertLink(ctx, "3", mid))
	require.NoError(t, tx.InsertLink(ctx, "4", mid))
	require.NoError(t, tx.Commit(ctx))

	deleted, err := store.DeleteStarships(ctx, []string{"3", "4", "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = store.DeleteStarships(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	count, err := store.CountStarships(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(18), count)

	links, err := store.CountLinks(ctx)
	require.NoError(t, err)
	assert.Zero(t, links, "links cascade with their starship")

	tx, err = store.BeginTx(ctx)
	require.NoError(t, err)
	defer repository.SafeRollback(ctx, tx)
	m, err := tx.GetManufacturerByName(ctx, "Sienar Fleet Systems")
	require.NoError(t, err)
	assert.NotNil(t, m, "orphaned manufacturers are kept")
}

func testCheckpoint(t *testing.T, store repository.Catalog) {
	ctx := context.Background()

	cp, err := store.GetCheckpoint(ctx, domain.EntityTypeStarships)
	require.NoError(t, err)
	assert.Nil(t, cp)

	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	cp, err = tx.GetCheckpointForUpdate(ctx, domain.EntityTypeStarships)
	require.NoError(t, err)
	assert.Nil(t, cp)

	cp, err = tx.CreateCheckpoint(ctx, domain.EntityTypeStarships)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.False(t, cp.Running)
	assert.Nil(t, cp.LastSynced)

	now := time.Date(2024, 5, 4, 12, 30, 15, 123456000, time.UTC)
	cp.Running = true
	cp.LastSynced = &now
	require.NoError(t, tx.UpdateCheckpoint(ctx, cp))
	require.NoError(t, tx.Commit(ctx))

	got, err := store.GetCheckpoint(ctx, domain.EntityTypeStarships)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Running)
	require.NotNil(t, got.LastSynced)
	assert.True(t, now.Equal(*got.LastSynced))
	assert.Equal(t, time.UTC, got.LastSynced.Location())

	tx, err = store.BeginTx(ctx)
	require.NoError(t, err)
	err = tx.UpdateCheckpoint(ctx, &domain.SyncCheckpoint{EntityType: "planets"})
	assert.Error(t, err, "updating a missing checkpoint fails")
	repository.SafeRollback(ctx, tx)
}

func testCommitTwice(t *testing.T, store repository.Catalog) {
	ctx := context.Background()
	tx, err := store.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	err = tx.Rollback(ctx)
	assert.True(t, errors.Is(err, repository.ErrTxClosed))
}
