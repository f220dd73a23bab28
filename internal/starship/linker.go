package starship

import (
	"context"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
)

// LinkResult counts what one SyncRelations call created
type LinkResult struct {
	ManufacturersCreated int
	LinksCreated         int
}

// Add accumulates other into r
func (r *LinkResult) Add(other LinkResult) {
	r.ManufacturersCreated += other.ManufacturersCreated
	r.LinksCreated += other.LinksCreated
}

// Linker turns the manufacturer text of a starship into manufacturer rows and
// junction rows. It is built per run: cached ids never outlive the run that
// created them.
type Linker struct {
	cache *lru.Cache[string, int64]
}

// NewLinker creates a linker with a manufacturer cache of size entries
func NewLinker(size int) (*Linker, error) {
	if size <= 0 {
		size = DefaultManufacturerCacheSize
	}
	cache, err := lru.New[string, int64](size)
	if err != nil {
		return nil, err
	}
	return &Linker{cache: cache}, nil
}

// SplitManufacturers splits on the literal ", " separator. Empty segments are
// dropped; nothing else is trimmed or normalised.
func SplitManufacturers(field string) []string {
	if field == "" {
		return nil
	}
	parts := strings.Split(field, domain.ManufacturerSeparator)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		names = append(names, p)
	}
	return names
}

// SyncRelations links entityID to every manufacturer named in field.
// Links are only ever added.
func (l *Linker) SyncRelations(ctx context.Context, tx repository.CatalogTx, entityID, field string) (LinkResult, error) {
	var res LinkResult
	for _, name := range SplitManufacturers(field) {
		id, created, err := l.findOrCreate(ctx, tx, name)
		if err != nil {
			return res, err
		}
		if created {
			res.ManufacturersCreated++
		}

		exists, err := tx.LinkExists(ctx, entityID, id)
		if err != nil {
			return res, fmt.Errorf("%w: %s %q: %v", domain.ErrPersistence, ErrMsgLinkManufacturer, name, err)
		}
		if exists {
			continue
		}
		if err := tx.InsertLink(ctx, entityID, id); err != nil {
			return res, fmt.Errorf("%w: %s %q: %v", domain.ErrPersistence, ErrMsgLinkManufacturer, name, err)
		}
		res.LinksCreated++
	}
	return res, nil
}

func (l *Linker) findOrCreate(ctx context.Context, tx repository.CatalogTx, name string) (int64, bool, error) {
	if id, ok := l.cache.Get(name); ok {
		return id, false, nil
	}

	m, err := tx.GetManufacturerByName(ctx, name)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s %q: %v", domain.ErrPersistence, ErrMsgFindManufacturer, name, err)
	}
	if m != nil {
		l.cache.Add(name, m.ID)
		return m.ID, false, nil
	}

	id, err := tx.InsertManufacturer(ctx, name)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s %q: %v", domain.ErrPersistence, ErrMsgCreateManufacturer, name, err)
	}
	l.cache.Add(name, id)
	logger.FromContext(ctx).Debug(LogMsgManufacturerCreated, "manufacturer", name, "manufacturer_id", id)
	return id, true, nil
}
