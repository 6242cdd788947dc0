// internal/httpserver/routes_simulate.go
//
// HTTP routes for self-play benchmarks, mounted under /simulate:
//   - POST /simulate       → run N games (JWT required), store and return the report
//   - GET  /simulate/runs  → recent stored reports
//
// Runs are synchronous and capped at maxSimulationRuns per request.

package httpserver

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlebot/internal/metrics"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/simulate"
)

const maxSimulationRuns = 5000

// mountSimulate registers all /simulate routes.
func (s *Server) mountSimulate(r chi.Router) {
	r.Route("/simulate", func(r chi.Router) {
		r.With(s.requireAuth()).Post("/", s.handleSimulate)
		r.Get("/runs", s.handleRuns)
	})
}

// simulateReq is the payload for POST /simulate.
type simulateReq struct {
	Runs     int     `json:"runs"`
	Strategy string  `json:"strategy"` // letters | entropy; empty = server default
	Seed     *uint64 `json:"seed"`     // optional, for reproducible target draws
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if req.Runs <= 0 || req.Runs > maxSimulationRuns {
		writeError(w, http.StatusBadRequest, "runs must be between 1 and "+strconv.Itoa(maxSimulationRuns))
		return
	}
	strategy := s.res.Strategy
	if req.Strategy != "" {
		st, err := ranking.StrategyByName(req.Strategy)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		strategy = st
	}

	runner := &simulate.Runner{
		Corpus:       s.res.Corpus,
		Table:        s.res.Table,
		Weights:      s.res.Weights,
		Strategy:     strategy,
		MaxGuesses:   s.cfg.MaxGuesses,
		TargetOffset: s.cfg.TargetOffset,
	}
	if req.Seed != nil {
		runner.Rand = rand.New(rand.NewPCG(*req.Seed, *req.Seed))
	}

	rep, err := runner.Run(r.Context(), req.Runs)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, simulate.ErrNoTargets) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}
	metrics.RecordSimulation(rep.Wins, rep.Losses())

	if s.runs != nil {
		id, err := s.runs.Insert(r.Context(), *rep)
		if err != nil {
			log.Warn().Err(err).Msg("store simulation report")
		} else {
			rep.ID = id
		}
	}
	log.Info().Str("by", subject(r)).Int("runs", rep.Runs).Str("id", rep.ID).Msg("simulation via api")
	_ = json.NewEncoder(w).Encode(rep)
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		_ = json.NewEncoder(w).Encode([]simulate.Report{})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.runs.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list simulation runs")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	_ = json.NewEncoder(w).Encode(rows)
}
