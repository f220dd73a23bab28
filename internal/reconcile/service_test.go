package reconcile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wilsonmoraes/starships-backend/internal/database"
	"github.com/wilsonmoraes/starships-backend/internal/database/sqlite"
	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/metrics"
	"github.com/wilsonmoraes/starships-backend/internal/swapi"
	"github.com/wilsonmoraes/starships-backend/internal/testing/catalogtest"
	"github.com/wilsonmoraes/starships-backend/internal/testing/fakestore"
	"github.com/wilsonmoraes/starships-backend/internal/testing/swapifake"
)

// MockRemote is a mock implementation of Remote
type MockRemote struct {
	mock.Mock
}

func (m *MockRemote) ListAllIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRemote) FetchDetail(ctx context.Context, id string) (*swapi.Properties, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*swapi.Properties), args.Error(1)
}

// newFixture serves the four reference starships
func newFixture(t *testing.T) *swapifake.Server {
	t.Helper()
	srv := swapifake.New(2)
	t.Cleanup(srv.Close)
	srv.Put("2", swapifake.CR90())
	srv.Put("3", swapifake.StarDestroyer())
	srv.Put("9", swapifake.DeathStar())
	srv.Put("12", swapifake.XWing())
	return srv
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.MigrateSQLite(context.Background(), db))
	return db
}

// dumpTables renders the entity and relation tables row by row
func dumpTables(t *testing.T, db *sql.DB) string {
	t.Helper()
	var b strings.Builder
	for _, q := range []string{
		`SELECT * FROM catalog_entity ORDER BY id`,
		`SELECT * FROM manufacturer ORDER BY id`,
		`SELECT * FROM entity_manufacturer ORDER BY id`,
	} {
		rows, err := db.Query(q)
		require.NoError(t, err)
		cols, err := rows.Columns()
		require.NoError(t, err)
		for rows.Next() {
			vals := make([]any, len(cols))
			ptrs := make([]any, len(cols))
			for i := range vals {
				ptrs[i] = &vals[i]
			}
			require.NoError(t, rows.Scan(ptrs...))
			fmt.Fprintln(&b, vals...)
		}
		require.NoError(t, rows.Err())
		rows.Close()
		b.WriteString("--\n")
	}
	return b.String()
}

func TestSync_IdempotentOnSQLite(t *testing.T) {
	ctx := context.Background()
	srv := newFixture(t)
	db := openSQLite(t)
	store := sqlite.NewStore(db)
	svc := NewService(store, swapi.NewClient(srv.URL, 5*time.Second), Options{})

	first, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, first.RemoteCount)
	assert.Equal(t, 4, first.Inserted)
	assert.Equal(t, 6, first.LinksCreated, "X-wing and Death Star have two manufacturers each")
	assert.Equal(t, 6, first.ManufacturersCreated)
	after1 := dumpTables(t, db)

	second, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, second.Updated)
	assert.Zero(t, second.Inserted)
	assert.Zero(t, second.LinksCreated)
	assert.Zero(t, second.ManufacturersCreated)
	after2 := dumpTables(t, db)

	assert.Equal(t, after1, after2)

	cp, err := store.GetCheckpoint(ctx, domain.EntityTypeStarships)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.False(t, cp.Running)
	assert.NotNil(t, cp.LastSynced)
}

func TestSync_PrunesRemovedStarships(t *testing.T) {
	ctx := context.Background()
	srv := newFixture(t)
	store := fakestore.New()
	catalogtest.InsertStarships(t, store, "A")
	svc := NewService(store, swapi.NewClient(srv.URL, 5*time.Second), Options{})

	_, err := svc.Sync(ctx)
	require.NoError(t, err)

	srv.Remove("9")
	res, err := svc.Sync(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Pruned)
	assert.Equal(t, 1, res.PruneBatches)

	ids, err := store.ListStarshipIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"12", "2", "3"}, ids)
}

func TestSync_BusyLockReturnsErrLockBusy(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	recent := time.Now().Add(-time.Hour)
	store.SeedCheckpoint(domain.SyncCheckpoint{EntityType: domain.EntityTypeStarships, Running: true, LastSynced: &recent})

	remote := new(MockRemote)
	_, err := NewService(store, remote, Options{}).Sync(ctx)

	assert.ErrorIs(t, err, domain.ErrLockBusy)
	assert.Zero(t, store.Writes())
	remote.AssertNotCalled(t, "ListAllIDs", mock.Anything)
}

func TestSync_RemoteFailureStillReleasesLock(t *testing.T) {
	ctx := context.Background()
	srv := newFixture(t)
	srv.FailWith("/starships/9", http.StatusBadGateway)
	store := fakestore.New()
	svc := NewService(store, swapi.NewClient(srv.URL, 5*time.Second), Options{})

	res, err := svc.Sync(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)
	assert.Equal(t, 2, res.Inserted, "uids 2 and 3 were written before 9 failed")

	cp, err := store.GetCheckpoint(ctx, domain.EntityTypeStarships)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.False(t, cp.Running)
	assert.NotNil(t, cp.LastSynced, "a failed run is still stamped")
}

func TestSync_EnumerationFailureWritesNoEntities(t *testing.T) {
	ctx := context.Background()
	store := fakestore.New()
	catalogtest.InsertStarships(t, store, "2")

	remote := new(MockRemote)
	remote.On("ListAllIDs", mock.Anything).Return(nil, fmt.Errorf("%w: boom", domain.ErrRemoteUnavailable))

	_, err := NewService(store, remote, Options{}).Sync(ctx)
	assert.ErrorIs(t, err, domain.ErrRemoteUnavailable)

	ids, err := store.ListStarshipIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids, "nothing is pruned without a full enumeration")
	remote.AssertNotCalled(t, "FetchDetail", mock.Anything, mock.Anything)
}

func TestSync_CancelledContextStillReleases(t *testing.T) {
	store := fakestore.New()
	ctx, cancel := context.WithCancel(context.Background())

	remote := new(MockRemote)
	remote.On("ListAllIDs", mock.Anything).Run(func(mock.Arguments) { cancel() }).
		Return(nil, fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, context.Canceled))

	_, err := NewService(store, remote, Options{}).Sync(ctx)
	assert.Error(t, err)

	cp, err := store.GetCheckpoint(context.Background(), domain.EntityTypeStarships)
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.False(t, cp.Running)
}

func TestSync_InvalidRecordAborts(t *testing.T) {
	ctx := context.Background()
	bad := swapifake.CR90()
	bad.Created = "not a time"

	remote := new(MockRemote)
	remote.On("ListAllIDs", mock.Anything).Return([]string{"2"}, nil)
	remote.On("FetchDetail", mock.Anything, "2").Return(&bad, nil)

	store := fakestore.New()
	_, err := NewService(store, remote, Options{}).Sync(ctx)
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)
	remote.AssertExpectations(t)
}

func runsTotal(t *testing.T, outcome string) float64 {
	t.Helper()
	var m dto.Metric
	var c prometheus.Counter = metrics.SyncRunsTotal.WithLabelValues(domain.EntityTypeStarships, outcome)
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestSync_ReleaseFailureFailsRun(t *testing.T) {
	store := fakestore.New()
	releaseErr := errors.New("disk full")

	remote := new(MockRemote)
	remote.On("ListAllIDs", mock.Anything).
		Run(func(mock.Arguments) { store.FailOn("UpdateCheckpoint", releaseErr) }).
		Return([]string{}, nil)

	successBefore := runsTotal(t, metrics.OutcomeSuccess)
	failureBefore := runsTotal(t, metrics.OutcomeFailure)

	_, err := NewService(store, remote, Options{}).Sync(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)

	assert.Equal(t, successBefore, runsTotal(t, metrics.OutcomeSuccess), "no success is recorded")
	assert.Equal(t, failureBefore+1, runsTotal(t, metrics.OutcomeFailure))
}

func TestSync_SuccessRecordedAfterRelease(t *testing.T) {
	store := fakestore.New()
	remote := new(MockRemote)
	remote.On("ListAllIDs", mock.Anything).Return([]string{}, nil)

	before := runsTotal(t, metrics.OutcomeSuccess)
	_, err := NewService(store, remote, Options{}).Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before+1, runsTotal(t, metrics.OutcomeSuccess))
}
