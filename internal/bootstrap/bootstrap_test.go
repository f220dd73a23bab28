package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilsonmoraes/starships-backend/internal/config"
	"github.com/wilsonmoraes/starships-backend/internal/domain"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-01-%02d_00-00-00", i+1))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Len(t, names, LogFileRetentionCount+1)
	assert.Contains(t, names, "notes.txt")
	assert.Contains(t, names, "session_2024-01-12_00-00-00.log")
	assert.NotContains(t, names, "session_2024-01-03_00-00-00.log")
}

func TestLoggerConfig(t *testing.T) {
	cfg := &config.Config{LogLevel: "debug", LogFormat: "json", Environment: "dev", Version: "1.0.0"}
	lc := LoggerConfig(cfg)

	assert.Equal(t, ServiceName, lc.ServiceName)
	assert.True(t, lc.AddSource)
	assert.True(t, lc.IsJSON())

	cfg.Environment = "prod"
	assert.False(t, LoggerConfig(cfg).AddSource)
}

func TestOpenStorage_SQLite(t *testing.T) {
	cfg := &config.Config{
		DBDriver:   config.DBDriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "data", "catalog.db"),
	}

	ctx := context.Background()
	storage, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	defer storage.Close()

	assert.Equal(t, config.DBDriverSQLite, storage.Driver)
	require.NoError(t, storage.Catalog.Ping(ctx))

	cp, err := storage.Catalog.GetCheckpoint(ctx, domain.EntityTypeStarships)
	require.NoError(t, err)
	assert.Nil(t, cp, "fresh database has no checkpoint")

	require.NoError(t, storage.Close())

	// Reopening an already migrated file is fine
	again, err := OpenStorage(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, again.Close())
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(context.Background(), &config.Config{DBDriver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownDriver)
}

type recorder struct {
	calls []string
}

type fakeServer struct {
	r   *recorder
	err error
}

func (f *fakeServer) Stop(context.Context) error {
	f.r.calls = append(f.r.calls, "server")
	return f.err
}

type fakeStopper struct {
	r    *recorder
	name string
}

func (f *fakeStopper) Stop() { f.r.calls = append(f.r.calls, f.name) }

type fakeCloser struct{ r *recorder }

func (f *fakeCloser) Close() error {
	f.r.calls = append(f.r.calls, "store")
	return nil
}

func TestGracefulShutdown_Order(t *testing.T) {
	r := &recorder{}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	GracefulShutdown(ctx, ShutdownComponents{
		Server:    &fakeServer{r: r, err: errors.New("listener busy")},
		Scheduler: &fakeStopper{r: r, name: "scheduler"},
		Pool:      &fakeStopper{r: r, name: "pool"},
		Store:     &fakeCloser{r: r},
		Tracing: func(context.Context) error {
			r.calls = append(r.calls, "tracing")
			return nil
		},
	})

	assert.Equal(t, []string{"server", "scheduler", "pool", "store", "tracing"}, r.calls,
		"a failing step does not stop the sequence")
}

func TestGracefulShutdown_SkipsNil(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
