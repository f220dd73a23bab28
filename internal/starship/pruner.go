package starship

import (
	"context"
	"fmt"
	"sort"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/metrics"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
)

// PruneResult reports a prune, complete or not
type PruneResult struct {
	Stale   int
	Deleted int64
	Batches int
}

// Pruner deletes local starships the remote no longer lists
type Pruner struct {
	store     repository.Catalog
	batchSize int
}

// NewPruner creates a pruner deleting batchSize ids per statement
func NewPruner(store repository.Catalog, batchSize int) *Pruner {
	if batchSize <= 0 {
		batchSize = DefaultPruneBatchSize
	}
	return &Pruner{store: store, batchSize: batchSize}
}

// StaleIDs returns local minus remote, sorted
func StaleIDs(local, remote []string) []string {
	keep := make(map[string]struct{}, len(remote))
	for _, id := range remote {
		keep[id] = struct{}{}
	}
	var stale []string
	for _, id := range local {
		if _, ok := keep[id]; !ok {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	return stale
}

// Prune deletes every local id missing from remote. Each batch commits on its
// own, so a failure leaves earlier batches deleted; the result holds what was
// achieved.
func (p *Pruner) Prune(ctx context.Context, local, remote []string) (PruneResult, error) {
	log := logger.FromContext(ctx)
	stale := StaleIDs(local, remote)
	res := PruneResult{Stale: len(stale)}

	for start := 0; start < len(stale); start += p.batchSize {
		end := min(start+p.batchSize, len(stale))
		batch := stale[start:end]

		n, err := p.store.DeleteStarships(ctx, batch)
		if err != nil {
			return res, fmt.Errorf("%w: %s %d-%d: %v", domain.ErrPersistence, ErrMsgDeleteBatch, start, end, err)
		}
		res.Batches++
		res.Deleted += n
		metrics.SyncPruneBatchesTotal.WithLabelValues(domain.EntityTypeStarships).Inc()
		metrics.SyncPrunedTotal.WithLabelValues(domain.EntityTypeStarships).Add(float64(n))
		log.Debug(LogMsgPruneBatchDeleted, "batch", res.Batches, "size", len(batch), "deleted", n)
	}

	log.Info(LogMsgPruneComplete, "stale", res.Stale, "deleted", res.Deleted, "batches", res.Batches)
	return res, nil
}
