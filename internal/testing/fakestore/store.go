// Package fakestore provides an in-memory repository.Catalog for engine tests.
// Transactions work on a copy of the state that replaces it on commit.
package fakestore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
)

type link struct {
	entityID       string
	manufacturerID int64
}

type state struct {
	starships     map[string]domain.Starship
	manufacturers map[string]int64
	nextMfrID     int64
	links         map[link]struct{}
	checkpoints   map[string]domain.SyncCheckpoint
	nextCpID      int64
}

func newState() *state {
	return &state{
		starships:     make(map[string]domain.Starship),
		manufacturers: make(map[string]int64),
		links:         make(map[link]struct{}),
		checkpoints:   make(map[string]domain.SyncCheckpoint),
	}
}

func (s *state) clone() *state {
	c := &state{
		starships:     make(map[string]domain.Starship, len(s.starships)),
		manufacturers: make(map[string]int64, len(s.manufacturers)),
		nextMfrID:     s.nextMfrID,
		links:         make(map[link]struct{}, len(s.links)),
		checkpoints:   make(map[string]domain.SyncCheckpoint, len(s.checkpoints)),
		nextCpID:      s.nextCpID,
	}
	for k, v := range s.starships {
		c.starships[k] = v
	}
	for k, v := range s.manufacturers {
		c.manufacturers[k] = v
	}
	for k := range s.links {
		c.links[k] = struct{}{}
	}
	for k, v := range s.checkpoints {
		c.checkpoints[k] = v
	}
	return c
}

// Store is an in-memory catalog
type Store struct {
	mu       sync.Mutex
	st       *state
	writes   int
	deletes  [][]string
	failures map[string]error
}

// New returns an empty store
func New() *Store {
	return &Store{st: newState(), failures: make(map[string]error)}
}

var _ repository.Catalog = (*Store)(nil)

// FailOn makes every later call of the named method return err.
// A nil err clears the failure.
func (s *Store) FailOn(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, method)
		return
	}
	s.failures[method] = err
}

func (s *Store) fail(method string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failures[method]
}

// Writes counts every mutating call, committed or not
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// DeleteBatches returns the id batches passed to DeleteStarships
func (s *Store) DeleteBatches() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]string, len(s.deletes))
	copy(out, s.deletes)
	return out
}

func (s *Store) addWrite() {
	s.mu.Lock()
	s.writes++
	s.mu.Unlock()
}

// SeedStarship stores s directly, outside any transaction
func (s *Store) SeedStarship(ship domain.Starship) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.starships[ship.ID] = ship
}

// SeedCheckpoint stores cp directly, outside any transaction
func (s *Store) SeedCheckpoint(cp domain.SyncCheckpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cp.ID == 0 {
		s.st.nextCpID++
		cp.ID = s.st.nextCpID
	}
	s.st.checkpoints[cp.EntityType] = cp
}

// Starship returns a stored starship
func (s *Store) Starship(id string) (domain.Starship, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ship, ok := s.st.starships[id]
	return ship, ok
}

// ManufacturerNames returns the stored manufacturer names, sorted
func (s *Store) ManufacturerNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.st.manufacturers))
	for n := range s.st.manufacturers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (s *Store) BeginTx(_ context.Context) (repository.CatalogTx, error) {
	if err := s.fail("BeginTx"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return &tx{store: s, st: s.st.clone()}, nil
}

func (s *Store) ListStarshipIDs(_ context.Context) ([]string, error) {
	if err := s.fail("ListStarshipIDs"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.st.starships))
	for id := range s.st.starships {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *Store) DeleteStarships(_ context.Context, ids []string) (int64, error) {
	if err := s.fail("DeleteStarships"); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	s.deletes = append(s.deletes, append([]string(nil), ids...))
	var n int64
	for _, id := range ids {
		if _, ok := s.st.starships[id]; !ok {
			continue
		}
		delete(s.st.starships, id)
		n++
		for l := range s.st.links {
			if l.entityID == id {
				delete(s.st.links, l)
			}
		}
	}
	return n, nil
}

func (s *Store) GetCheckpoint(_ context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	if err := s.fail("GetCheckpoint"); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp, ok := s.st.checkpoints[entityType]
	if !ok {
		return nil, nil
	}
	return &cp, nil
}

func (s *Store) CountStarships(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.st.starships)), nil
}

func (s *Store) CountLinks(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.st.links)), nil
}

func (s *Store) Ping(_ context.Context) error {
	return s.fail("Ping")
}

// tx stages writes on a private copy of the state
type tx struct {
	store *Store
	st    *state
	done  bool
}

func (t *tx) Commit(_ context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	if err := t.store.fail("Commit"); err != nil {
		return err
	}
	t.done = true
	t.store.mu.Lock()
	t.store.st = t.st
	t.store.mu.Unlock()
	return nil
}

func (t *tx) Rollback(_ context.Context) error {
	if t.done {
		return repository.ErrTxClosed
	}
	t.done = true
	return nil
}

func (t *tx) GetStarshipByID(_ context.Context, id string) (*domain.Starship, error) {
	if err := t.store.fail("GetStarshipByID"); err != nil {
		return nil, err
	}
	ship, ok := t.st.starships[id]
	if !ok {
		return nil, nil
	}
	return &ship, nil
}

func (t *tx) InsertStarship(_ context.Context, ship *domain.Starship) error {
	if err := t.store.fail("InsertStarship"); err != nil {
		return err
	}
	t.store.addWrite()
	if _, ok := t.st.starships[ship.ID]; ok {
		return fmt.Errorf("duplicate starship id %q", ship.ID)
	}
	t.st.starships[ship.ID] = *ship
	return nil
}

func (t *tx) UpdateStarship(_ context.Context, ship *domain.Starship) error {
	if err := t.store.fail("UpdateStarship"); err != nil {
		return err
	}
	t.store.addWrite()
	old, ok := t.st.starships[ship.ID]
	if !ok {
		return nil
	}
	updated := *ship
	updated.CreatedAt = old.CreatedAt
	t.st.starships[ship.ID] = updated
	return nil
}

func (t *tx) GetManufacturerByName(_ context.Context, name string) (*domain.Manufacturer, error) {
	if err := t.store.fail("GetManufacturerByName"); err != nil {
		return nil, err
	}
	id, ok := t.st.manufacturers[name]
	if !ok {
		return nil, nil
	}
	return &domain.Manufacturer{ID: id, Name: name}, nil
}

func (t *tx) InsertManufacturer(_ context.Context, name string) (int64, error) {
	if err := t.store.fail("InsertManufacturer"); err != nil {
		return 0, err
	}
	t.store.addWrite()
	if _, ok := t.st.manufacturers[name]; ok {
		return 0, fmt.Errorf("duplicate manufacturer %q", name)
	}
	t.st.nextMfrID++
	t.st.manufacturers[name] = t.st.nextMfrID
	return t.st.nextMfrID, nil
}

func (t *tx) LinkExists(_ context.Context, entityID string, manufacturerID int64) (bool, error) {
	if err := t.store.fail("LinkExists"); err != nil {
		return false, err
	}
	_, ok := t.st.links[link{entityID, manufacturerID}]
	return ok, nil
}

func (t *tx) InsertLink(_ context.Context, entityID string, manufacturerID int64) error {
	if err := t.store.fail("InsertLink"); err != nil {
		return err
	}
	t.store.addWrite()
	t.st.links[link{entityID, manufacturerID}] = struct{}{}
	return nil
}

func (t *tx) GetCheckpointForUpdate(_ context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	if err := t.store.fail("GetCheckpointForUpdate"); err != nil {
		return nil, err
	}
	cp, ok := t.st.checkpoints[entityType]
	if !ok {
		return nil, nil
	}
	return &cp, nil
}

func (t *tx) CreateCheckpoint(_ context.Context, entityType string) (*domain.SyncCheckpoint, error) {
	if err := t.store.fail("CreateCheckpoint"); err != nil {
		return nil, err
	}
	if cp, ok := t.st.checkpoints[entityType]; ok {
		return &cp, nil
	}
	t.store.addWrite()
	t.st.nextCpID++
	cp := domain.SyncCheckpoint{ID: t.st.nextCpID, EntityType: entityType}
	t.st.checkpoints[entityType] = cp
	return &cp, nil
}

func (t *tx) UpdateCheckpoint(_ context.Context, cp *domain.SyncCheckpoint) error {
	if err := t.store.fail("UpdateCheckpoint"); err != nil {
		return err
	}
	t.store.addWrite()
	old, ok := t.st.checkpoints[cp.EntityType]
	if !ok {
		return fmt.Errorf("no checkpoint for %q", cp.EntityType)
	}
	old.LastSynced = cp.LastSynced
	old.Running = cp.Running
	t.st.checkpoints[cp.EntityType] = old
	return nil
}
