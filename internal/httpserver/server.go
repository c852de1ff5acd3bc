// apps/rl-agent/internal/httpserver/server.go
//
// HTTP surface for inspecting the trained agent.
// Responsibilities:
//   - Router + middleware (JSON, timeouts, panic recovery, request IDs).
//   - Diagnostics: "/", "/health".
//   - Agent introspection: GET /qtable/top (highest-valued words).
//   - History: GET /sessions (recent games from SQLite), GET /stats.
//   - Reports: GET /report and /report/training serve the generated HTML.
//
// The server is read-only: it never mutates the value table or plays
// games, so no auth surface is needed.

package httpserver

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/robalobadob/wordle/apps/rl-agent/internal/agent"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/report"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/store"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/words"
)

// Server bundles router, agent, and the optional session store.
type Server struct {
	r         *chi.Mux
	agent     *agent.Agent
	store     *store.Store // may be nil: history endpoints report 503
	reportDir string
}

// New constructs a Server, installs middleware, and registers routes.
func New(a *agent.Agent, st *store.Store, reportDir string) *Server {
	s := &Server{r: chi.NewRouter(), agent: a, store: st, reportDir: reportDir}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(jsonContentType)

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordle-rl","endpoints":["/health","/qtable/top","/sessions","/stats","/report","/report/training"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Agent introspection
	s.r.Get("/qtable/top", s.handleTopWords)

	// Session history
	s.r.Get("/sessions", s.handleSessions)
	s.r.Get("/stats", s.handleStats)

	// Generated reports
	s.r.Get("/report", s.serveReport(report.ReplayFile))
	s.r.Get("/report/training", s.serveReport(report.TrainingChartFile))

	// Debug: word list count
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]int{"words": words.Stats()})
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ------------------------------ handlers -----------------------------------

// handleTopWords returns the n highest-valued words (?n=, default 20).
func (s *Server) handleTopWords(w http.ResponseWriter, r *http.Request) {
	n := 20
	if v := r.URL.Query().Get("n"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			n = parsed
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"entries": s.agent.TableSize(),
		"top":     s.agent.TopWords(n),
	})
}

// handleSessions returns recent games, newest first (?limit=, default 20).
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, `{"error":"no_session_store"}`, http.StatusServiceUnavailable)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	rows, err := s.store.RecentSessions(r.Context(), limit)
	if err != nil {
		http.Error(w, `{"error":"query_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}

// handleStats returns total games and wins.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, `{"error":"no_session_store"}`, http.StatusServiceUnavailable)
		return
	}
	games, wins, err := s.store.Stats(r.Context())
	if err != nil {
		http.Error(w, `{"error":"query_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]int{"games": games, "wins": wins})
}

// serveReport serves one of the generated HTML files from the report dir.
func (s *Server) serveReport(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(s.reportDir, name)
		if _, err := os.Stat(path); err != nil {
			http.Error(w, `{"error":"report_not_generated"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		http.ServeFile(w, r, path)
	}
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}
