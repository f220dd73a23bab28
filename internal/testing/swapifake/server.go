// Package swapifake serves an in-memory starship collection shaped like the
// remote catalog, for client and end-to-end sync tests.
package swapifake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/wilsonmoraes/starships-backend/internal/swapi"
)

// DefaultPageSize matches the remote catalog's default page length
const DefaultPageSize = 10

// Server is an httptest server with a mutable starship fixture
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	ships     map[string]swapi.Properties
	pageSize  int
	failPaths map[string]int

	ListCalls   atomic.Int64
	DetailCalls atomic.Int64
}

// New starts a fixture server. Close it with t.Cleanup(srv.Close).
func New(pageSize int) *Server {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	s := &Server{
		ships:     make(map[string]swapi.Properties),
		pageSize:  pageSize,
		failPaths: make(map[string]int),
	}

	r := chi.NewRouter()
	r.Get(swapi.PathStarships, s.handleList)
	r.Get(swapi.PathStarships+"/{uid}", s.handleDetail)
	s.Server = httptest.NewServer(r)
	return s
}

// Put adds or replaces a starship
func (s *Server) Put(uid string, p swapi.Properties) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ships[uid] = p
}

// Remove deletes a starship from the collection
func (s *Server) Remove(uid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ships, uid)
}

// FailWith makes requests to path (e.g. "/starships/3") answer with status
func (s *Server) FailWith(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPaths[path] = status
}

// UIDs returns the collection's uids in listing order
func (s *Server) UIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedUIDs()
}

func (s *Server) sortedUIDs() []string {
	uids := make([]string, 0, len(s.ships))
	for uid := range s.ships {
		uids = append(uids, uid)
	}
	sort.Slice(uids, func(i, j int) bool {
		a, errA := strconv.Atoi(uids[i])
		b, errB := strconv.Atoi(uids[j])
		if errA == nil && errB == nil {
			return a < b
		}
		return uids[i] < uids[j]
	})
	return uids
}

func (s *Server) failure(r *http.Request) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.failPaths[r.URL.Path]
	return status, ok
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.ListCalls.Add(1)
	if status, ok := s.failure(r); ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	s.mu.Lock()
	uids := s.sortedUIDs()
	results := make([]swapi.ListSummary, 0, s.pageSize)
	start := (page - 1) * s.pageSize
	for i := start; i < len(uids) && i < start+s.pageSize; i++ {
		p := s.ships[uids[i]]
		results = append(results, swapi.ListSummary{UID: uids[i], Name: p.Name, URL: p.URL})
	}
	totalPages := (len(uids) + s.pageSize - 1) / s.pageSize
	s.mu.Unlock()

	resp := swapi.ListResponse{
		Message:      "ok",
		TotalRecords: len(uids),
		TotalPages:   totalPages,
		Results:      results,
	}
	if page < totalPages {
		next := fmt.Sprintf("%s%s?page=%d", s.URL, swapi.PathStarships, page+1)
		resp.Next = &next
	}
	writeJSON(w, resp)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	s.DetailCalls.Add(1)
	if status, ok := s.failure(r); ok {
		http.Error(w, http.StatusText(status), status)
		return
	}

	uid := chi.URLParam(r, "uid")
	s.mu.Lock()
	p, ok := s.ships[uid]
	s.mu.Unlock()
	if !ok {
		http.Error(w, `{"message":"not found"}`, http.StatusNotFound)
		return
	}

	var resp swapi.DetailResponse
	resp.Message = "ok"
	resp.Result.UID = uid
	resp.Result.Description = "A Starship"
	resp.Result.Properties = p
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
