// internal/httpserver/server.go
//
// HTTP server wiring for the solver backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/metrics".
//   - Solver endpoints: POST /solve/new, POST /solve/guess, POST /solve/reset,
//     GET /solve/{id}, DELETE /solve/{id}.
//   - Benchmark endpoints: mounted under /simulate (see routes_simulate.go).
//
// Notes:
//   - Sessions live in memory (internal/store); benchmark reports go to SQLite
//     when a runs store is configured.
//   - Validation errors come back as 400 with the session untouched, so a client
//     can simply resend a corrected guess.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlebot/internal/config"
	"github.com/robalobadob/wordlebot/internal/knowledge"
	"github.com/robalobadob/wordlebot/internal/metrics"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/runs"
	"github.com/robalobadob/wordlebot/internal/solver"
	"github.com/robalobadob/wordlebot/internal/store"
)

// suggestionCount is how many ranked words each response carries.
const suggestionCount = 10

// Server bundles router, session store, shared resources and run history.
type Server struct {
	r     *chi.Mux
	store store.Store
	res   *config.Resources
	runs  *runs.Store // nil disables persistence of benchmark reports
	cfg   config.Config
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg config.Config, res *config.Resources, st store.Store, rs *runs.Store) *Server {
	s := &Server{r: chi.NewRouter(), store: st, res: res, runs: rs, cfg: cfg}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(60 * time.Second)) // bound handler time (simulations included)
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(cfg.ClientOrigin))          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordlebot","endpoints":["/health","/metrics","POST /solve/new","POST /solve/guess","POST /solve/reset","GET /solve/{id}","POST /simulate","GET /simulate/runs"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Method(http.MethodGet, "/metrics", metrics.Handler())

	s.r.Route("/solve", func(r chi.Router) {
		r.Post("/new", s.handleNew)
		r.Post("/guess", s.handleGuess)
		r.Post("/reset", s.handleReset)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
	})

	s.mountSimulate(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------ SOLVE --------------------------------------

// sessionRes is the common view of a session returned by every /solve route.
type sessionRes struct {
	SessionID   string           `json:"sessionId"`
	Status      string           `json:"status"` // active | solved | exhausted
	Reason      string           `json:"reason,omitempty"`
	Attempts    int              `json:"attempts"`
	Remaining   int              `json:"remaining"`
	Answer      string           `json:"answer,omitempty"`
	Suggestions []ranking.Scored `json:"suggestions"`
}

func (s *Server) view(id string, sess *solver.Session) (sessionRes, error) {
	res := sessionRes{
		SessionID: id,
		Status:    sess.Status().String(),
		Reason:    sess.Reason(),
		Attempts:  sess.Attempts(),
		Remaining: sess.Remaining(),
	}
	if w, ok := sess.SolvedWord(); ok {
		res.Answer = w
	}
	sugg, err := sess.Suggest(suggestionCount)
	if err != nil {
		return res, err
	}
	res.Suggestions = sugg
	return res, nil
}

// handleNew creates a session over the full corpus and returns opening suggestions.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	sess, err := solver.New(s.res.Corpus, s.res.Table, s.res.Weights, solver.WithStrategy(s.res.Strategy))
	if err != nil {
		log.Error().Err(err).Msg("new session")
		writeError(w, http.StatusInternalServerError, "session_failed")
		return
	}
	id, err := s.store.Add(r.Context(), sess)
	if err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	metrics.SessionsStarted.Inc()
	s.respond(w, id, sess)
}

// guessReq is the payload for POST /solve/guess.
type guessReq struct {
	SessionID string `json:"sessionId"`
	Guess     string `json:"guess"`
	Pattern   string `json:"pattern"` // c = correct, m = misplaced, w = wrong
}

// handleGuess applies a guess and its pattern, then returns fresh suggestions.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	err := s.store.With(r.Context(), req.SessionID, func(sess *solver.Session) error {
		v, err := knowledge.ParseVerdict(req.Pattern)
		if err != nil {
			return err
		}
		st, err := sess.Guess(req.Guess, v)
		if err != nil {
			return err
		}
		metrics.GuessesApplied.WithLabelValues(st.String()).Inc()
		metrics.RemainingCandidates.Observe(float64(sess.Remaining()))
		s.respond(w, req.SessionID, sess)
		return nil
	})
	if err != nil {
		s.guessError(w, err)
	}
}

func (s *Server) guessError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
		return
	case errors.Is(err, solver.ErrFinished):
		metrics.GuessesApplied.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	metrics.GuessesApplied.WithLabelValues("rejected").Inc()
	writeError(w, http.StatusBadRequest, err.Error())
}

// sessionReq is the payload for POST /solve/reset.
type sessionReq struct {
	SessionID string `json:"sessionId"`
}

// handleReset clears a session back to the full corpus.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	err := s.store.With(r.Context(), req.SessionID, func(sess *solver.Session) error {
		sess.Reset()
		s.respond(w, req.SessionID, sess)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.With(r.Context(), id, func(sess *solver.Session) error {
		s.respond(w, id, sess)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "not_found")
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	_ = s.store.Delete(r.Context(), chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// respond writes the session view, or a 500 if ranking fails.
func (s *Server) respond(w http.ResponseWriter, id string, sess *solver.Session) {
	res, err := s.view(id, sess)
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("rank suggestions")
		writeError(w, http.StatusInternalServerError, "rank_failed")
		return
	}
	_ = json.NewEncoder(w).Encode(res)
}

// ------------------------------- small util --------------------------------

// writeError sends {"error": msg} with the given status.
func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
