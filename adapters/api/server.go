package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/LabpsicofisioUCU/ViCC/app"
	"github.com/LabpsicofisioUCU/ViCC/domain/core"
	"github.com/LabpsicofisioUCU/ViCC/domain/sampling"
	"github.com/LabpsicofisioUCU/ViCC/internal"
)

// SearchSession tracks one running or finished search for polling clients.
// It implements ports.SearchObserver: the scheduler feeds it round progress.
type SearchSession struct {
	ID string

	mu        sync.RWMutex
	status    string // "searching", "succeeded", "failed"
	rounds    int
	fraction  float64
	selection *sampling.Selection
	reports   []sampling.ConstraintReport
	errText   string
}

// RoundCompleted records scheduler progress after each round.
func (s *SearchSession) RoundCompleted(round int, fraction float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds = round
	s.fraction = fraction
}

// SearchSucceeded marks the terminal success state.
func (s *SearchSession) SearchSucceeded(round, workerIndex int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds = round
	s.fraction = 1.0
}

func (s *SearchSession) complete(outcome *app.RunOutcome, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.status = "failed"
		s.errText = err.Error()
		return
	}
	s.status = "succeeded"
	s.selection = outcome.Selection
	s.reports = outcome.Reports
}

type sessionView struct {
	ID        string                      `json:"id"`
	Status    string                      `json:"status"`
	Rounds    int                         `json:"rounds"`
	Fraction  float64                     `json:"fraction"`
	Selection *sampling.Selection         `json:"selection,omitempty"`
	Reports   []sampling.ConstraintReport `json:"reports,omitempty"`
	Error     string                      `json:"error,omitempty"`
}

func (s *SearchSession) view() sessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sessionView{
		ID:        s.ID,
		Status:    s.status,
		Rounds:    s.rounds,
		Fraction:  s.fraction,
		Selection: s.selection,
		Reports:   s.reports,
		Error:     s.errText,
	}
}

// Server exposes the selection pipeline over HTTP: start a search, poll its
// progress, fetch the accepted selection. The core never imports this
// package; progress arrives through the observer interface only.
type Server struct {
	service *app.SelectionService
	logger  *internal.Logger

	mu       sync.RWMutex
	sessions map[string]*SearchSession
}

// NewServer creates an HTTP server around a configured selection service.
func NewServer(service *app.SelectionService, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Server{
		service:  service,
		logger:   logger,
		sessions: make(map[string]*SearchSession),
	}
}

// Router builds the chi route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.handleHealth)
	r.Post("/searches", s.handleStartSearch)
	r.Get("/searches/{id}", s.handleGetSearch)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStartSearch(w http.ResponseWriter, r *http.Request) {
	session := &SearchSession{
		ID:     core.NewID().String(),
		status: "searching",
	}
	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	go func() {
		// Detached from the request context: the search outlives the POST.
		outcome, err := s.service.Run(context.Background(), session)
		if err != nil {
			s.logger.Error("search session %s failed: %v", session.ID, err)
		}
		session.complete(outcome, err)
	}()

	s.logger.Info("search session %s started", session.ID)
	writeJSON(w, http.StatusAccepted, session.view())
}

func (s *Server) handleGetSearch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "search not found"})
		return
	}
	writeJSON(w, http.StatusOK, session.view())
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
