package starship

import (
	"context"
	"fmt"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/normalize"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
	"github.com/wilsonmoraes/starships-backend/internal/swapi"
)

// Operation says whether an upsert created or overwrote the row
type Operation string

const (
	Inserted Operation = "inserted"
	Updated  Operation = "updated"
)

// Upserter writes one remote starship and its manufacturer links
type Upserter struct {
	store  repository.Catalog
	linker *Linker
}

// NewUpserter creates an upserter that links through linker
func NewUpserter(store repository.Catalog, linker *Linker) *Upserter {
	return &Upserter{store: store, linker: linker}
}

// Build maps remote properties onto a Starship. Numeric text is normalised;
// a bad created or edited timestamp is an ErrInvalidRecord.
func Build(ctx context.Context, id string, p *swapi.Properties) (*domain.Starship, error) {
	created, err := normalize.Timestamp(FieldCreated, p.Created)
	if err != nil {
		return nil, err
	}
	edited, err := normalize.Timestamp(FieldEdited, p.Edited)
	if err != nil {
		return nil, err
	}

	return &domain.Starship{
		ID:                   id,
		Name:                 p.Name,
		Model:                p.Model,
		Class:                p.StarshipClass,
		CostInCredits:        normalize.Int(ctx, FieldCostInCredits, p.CostInCredits),
		Length:               normalize.Float(ctx, FieldLength, p.Length),
		Crew:                 normalize.Int(ctx, FieldCrew, p.Crew),
		Passengers:           normalize.Int(ctx, FieldPassengers, p.Passengers),
		MaxAtmospheringSpeed: normalize.Text(p.MaxAtmospheringSpeed),
		HyperdriveRating:     normalize.Float(ctx, FieldHyperdriveRating, p.HyperdriveRating),
		MGLT:                 normalize.Int(ctx, FieldMGLT, p.MGLT),
		CargoCapacity:        normalize.Int(ctx, FieldCargoCapacity, p.CargoCapacity),
		Consumables:          normalize.Text(p.Consumables),
		Manufacturer:         p.Manufacturer,
		CreatedAt:            created,
		EditedAt:             edited,
		URL:                  p.URL,
	}, nil
}

// Upsert inserts or overwrites the starship id and syncs its manufacturer
// links, all in one transaction. Every call overwrites, whatever edited says.
func (u *Upserter) Upsert(ctx context.Context, id string, p *swapi.Properties) (Operation, LinkResult, error) {
	var links LinkResult

	ship, err := Build(ctx, id, p)
	if err != nil {
		return "", links, err
	}

	tx, err := u.store.BeginTx(ctx)
	if err != nil {
		return "", links, fmt.Errorf("%w: %s %s: %v", domain.ErrPersistence, ErrMsgBeginUpsert, id, err)
	}
	defer repository.SafeRollback(ctx, tx)

	existing, err := tx.GetStarshipByID(ctx, id)
	if err != nil {
		return "", links, fmt.Errorf("%w: %s %s: %v", domain.ErrPersistence, ErrMsgLookupStarship, id, err)
	}

	op := Inserted
	if existing == nil {
		err = tx.InsertStarship(ctx, ship)
	} else {
		op = Updated
		ship.CreatedAt = existing.CreatedAt
		err = tx.UpdateStarship(ctx, ship)
	}
	if err != nil {
		return "", links, fmt.Errorf("%w: %s %s: %v", domain.ErrPersistence, ErrMsgWriteStarship, id, err)
	}

	if links, err = u.linker.SyncRelations(ctx, tx, id, p.Manufacturer); err != nil {
		return "", links, err
	}

	if err := tx.Commit(ctx); err != nil {
		return "", links, fmt.Errorf("%w: %s %s: %v", domain.ErrPersistence, ErrMsgCommitUpsert, id, err)
	}

	msg := LogMsgStarshipInserted
	if op == Updated {
		msg = LogMsgStarshipUpdated
	}
	logger.FromContext(ctx).Debug(msg, "starship_id", id, "name", ship.Name)
	return op, links, nil
}
