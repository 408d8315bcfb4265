// Package api exposes the seating engine over HTTP.
//
// Plans live in server memory as sessions keyed by UUID: a client creates a
// plan from a TOML configuration, then mutates it through assignment, swap,
// and lock endpoints. Named snapshots can be saved to and loaded from a
// plan store.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tablewright/seatplan/pkg/guest"
	"github.com/tablewright/seatplan/pkg/pipeline"
	"github.com/tablewright/seatplan/pkg/plan"
	"github.com/tablewright/seatplan/pkg/store"
)

// session is one live plan with the context needed to serialize it.
type session struct {
	plan   *plan.Plan
	guests []guest.Guest
	name   string
}

// Server handles HTTP requests against in-memory plan sessions.
type Server struct {
	runner *pipeline.Runner
	store  store.Store // optional, nil disables save/load
	logger *log.Logger

	mu       sync.RWMutex
	sessions map[string]*session
}

// Config holds server dependencies.
type Config struct {
	// Runner builds plans from configurations. Required.
	Runner *pipeline.Runner

	// Store persists named plans. Optional; when nil the save and load
	// endpoints report the feature as unavailable.
	Store store.Store

	// Logger receives request logs. Defaults to the standard logger.
	Logger *log.Logger
}

// NewServer creates a server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		runner:   cfg.Runner,
		store:    cfg.Store,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/plans", s.handleCreatePlan)
		r.Route("/plans/{planID}", func(r chi.Router) {
			r.Get("/", s.handleGetPlan)
			r.Delete("/", s.handleDeletePlan)
			r.Get("/violations", s.handleViolations)
			r.Get("/stats", s.handleStats)
			r.Post("/assign", s.handleAssign)
			r.Post("/swap", s.handleSwap)
			r.Post("/lock", s.handleLock)
			r.Get("/tables/{tableID}/seats/{seatID}/adjacent", s.handleAdjacent)
			r.Post("/save", s.handleSave)
		})
		r.Get("/saved", s.handleListSaved)
		r.Post("/saved/{name}/load", s.handleLoadSaved)
	})

	return r
}

// session looks up a live plan session.
func (s *Server) session(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// addSession registers a session and returns its new ID.
func (s *Server) addSession(sess *session) string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
