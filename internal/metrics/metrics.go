// Package metrics exposes Prometheus counters for the solver API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wordlebot",
		Name:      "sessions_started_total",
		Help:      "Solver sessions created over the API.",
	})

	GuessesApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordlebot",
		Name:      "guesses_total",
		Help:      "Guesses submitted to solver sessions, by resulting status or rejection.",
	}, []string{"result"})

	SimulatedGames = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordlebot",
		Name:      "simulated_games_total",
		Help:      "Self-play games finished, by outcome.",
	}, []string{"outcome"})

	RemainingCandidates = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wordlebot",
		Name:      "remaining_candidates",
		Help:      "Candidates left after each accepted guess.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250, 1000, 5000},
	})
)

// RecordSimulation adds a finished benchmark's wins and losses.
func RecordSimulation(wins, losses int) {
	SimulatedGames.WithLabelValues("win").Add(float64(wins))
	SimulatedGames.WithLabelValues("loss").Add(float64(losses))
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
