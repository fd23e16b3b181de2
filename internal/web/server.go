// Package web exposes the study tool over a small JSON API. The UI holds no
// state of its own: it polls these endpoints and re-renders after each
// state change.
package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rs/cors"

	"github.com/eamonbrady/revise/internal/content"
	"github.com/eamonbrady/revise/internal/domain"
	"github.com/eamonbrady/revise/internal/progress"
	"github.com/eamonbrady/revise/internal/scheduler"
	"github.com/eamonbrady/revise/internal/store"
	"github.com/eamonbrady/revise/internal/study"
)

// Server holds the dependencies for the HTTP server. A single session is
// active at a time and the mutex serializes every review transaction, per
// the single-writer model.
type Server struct {
	mu       sync.Mutex
	store    *store.Store
	catalog  *content.Catalog
	params   *scheduler.Params
	cacheDir string
	session  *study.Session
	handler  http.Handler
	now      func() time.Time
}

// NewServer creates and configures a new server.
func NewServer(st *store.Store, cat *content.Catalog, cacheDir string) *Server {
	s := &Server{
		store:    st,
		catalog:  cat,
		params:   scheduler.DefaultParams(),
		cacheDir: cacheDir,
		now:      time.Now,
	}
	s.handler = cors.AllowAll().Handler(s.routes())
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/decks", s.handleDecks())
	mux.HandleFunc("/progress", s.handleProgress())
	mux.HandleFunc("/progress/goal", s.handleSetGoal())
	mux.HandleFunc("/study/start", s.handleStartStudy())
	mux.HandleFunc("/study/current", s.handleCurrent())
	mux.HandleFunc("/study/reveal", s.handleReveal())
	mux.HandleFunc("/study/grade", s.handleGrade())
	mux.HandleFunc("/study/abandon", s.handleAbandon())
	mux.HandleFunc("/sync", s.handleSync())
	return mux
}

type deckView struct {
	domain.Deck
	Stats study.DeckStats `json:"stats"`
}

type progressView struct {
	domain.Progress
	GoalPercent int `json:"goalPercent"`
}

// sessionView is the UI's picture of the session. The back of the card is
// withheld until the card has been revealed.
type sessionView struct {
	State    string  `json:"state"`
	Position int     `json:"position"`
	Total    int     `json:"total"`
	CardID   string  `json:"cardId,omitempty"`
	Front    string  `json:"front,omitempty"`
	Back     *string `json:"back,omitempty"`
}

func (s *Server) sessionView() sessionView {
	sess := s.session
	pos, total := sess.Position()
	view := sessionView{
		State:    sess.State().String(),
		Position: pos,
		Total:    total,
	}
	if card, ok := sess.Current(); ok {
		view.CardID = card.ID
		view.Front = card.Front
		if sess.State() == study.Revealed {
			back := card.Back
			view.Back = &back
		}
	}
	return view
}

// handleDecks lists the catalogue with per-deck due/new/total counts.
func (s *Server) handleDecks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		now := s.now()
		cards := s.store.Cards()
		views := make([]deckView, 0, len(s.catalog.Decks))
		for _, d := range s.catalog.DeckList() {
			views = append(views, deckView{
				Deck:  d,
				Stats: study.StatsFor(cards, d.ID, now),
			})
		}
		writeJSON(w, http.StatusOK, views)
	}
}

// handleProgress returns the ledger for display.
func (s *Server) handleProgress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		p := s.store.Progress()
		writeJSON(w, http.StatusOK, progressView{
			Progress:    p,
			GoalPercent: progress.GoalPercent(p),
		})
	}
}

// handleSetGoal updates the daily card goal.
func (s *Server) handleSetGoal() http.HandlerFunc {
	type request struct {
		DailyGoal int `json:"dailyGoal"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DailyGoal <= 0 {
			writeError(w, http.StatusBadRequest, "dailyGoal must be a positive integer")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := s.store.SetDailyGoal(req.DailyGoal); err != nil {
			slog.Error("Failed to update daily goal", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save daily goal")
			return
		}
		p := s.store.Progress()
		writeJSON(w, http.StatusOK, progressView{
			Progress:    p,
			GoalPercent: progress.GoalPercent(p),
		})
	}
}

// handleStartStudy begins a session over the deck's due cards. An empty due
// set is not an error; the session starts complete and the UI reports
// "nothing due".
func (s *Server) handleStartStudy() http.HandlerFunc {
	type request struct {
		DeckID string `json:"deckId"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DeckID == "" {
			writeError(w, http.StatusBadRequest, "deckId is required")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, ok := s.catalog.DeckByID(req.DeckID); !ok {
			writeError(w, http.StatusNotFound, "deck not found")
			return
		}

		s.session = study.NewSession(s.store, req.DeckID, s.params, s.now)
		slog.Info("Study session started",
			"session_id", s.session.ID(), "deck", req.DeckID)
		writeJSON(w, http.StatusOK, s.sessionView())
	}
}

// handleCurrent reports the session state and the visible card faces.
func (s *Server) handleCurrent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.session == nil {
			writeError(w, http.StatusNotFound, "no active session")
			return
		}
		writeJSON(w, http.StatusOK, s.sessionView())
	}
}

// handleReveal flips the current card.
func (s *Server) handleReveal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.session == nil {
			writeError(w, http.StatusNotFound, "no active session")
			return
		}
		if err := s.session.Reveal(); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, s.sessionView())
	}
}

// handleGrade applies a grade to the revealed card and returns the updated
// entities so the UI can render them without refetching.
func (s *Server) handleGrade() http.HandlerFunc {
	type request struct {
		Grade string `json:"grade"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		grade, err := domain.ParseGrade(req.Grade)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.session == nil {
			writeError(w, http.StatusNotFound, "no active session")
			return
		}

		result, err := s.session.Grade(grade)
		switch {
		case err == nil:
		case errors.Is(err, study.ErrNotRevealed), errors.Is(err, study.ErrSessionComplete):
			writeError(w, http.StatusConflict, err.Error())
			return
		case errors.Is(err, store.ErrCardNotFound):
			writeError(w, http.StatusNotFound, err.Error())
			return
		default:
			// Persistence failure: nothing advanced, the same grade can be
			// retried.
			slog.Error("Failed to commit review", "session_id", s.session.ID(), "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save review")
			return
		}

		writeJSON(w, http.StatusOK, struct {
			study.Result
			Session sessionView `json:"session"`
		}{Result: result, Session: s.sessionView()})
	}
}

// handleAbandon ends the session early.
func (s *Server) handleAbandon() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.session == nil {
			writeError(w, http.StatusNotFound, "no active session")
			return
		}
		if err := s.session.Abandon(); err != nil {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, s.sessionView())
	}
}

// handleSync triggers a manual card-source sync. Runs in the foreground to
// make the user wait.
func (s *Server) handleSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()

		content.SyncSources(s.store, s.catalog, s.cacheDir, s.now())
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
