// internal/simulate/runner.go
//
// Self-play benchmark.
// Responsibilities:
//   - Draw hidden targets uniformly from the corpus target subset.
//   - Play one independent solver session per target against a hidden-target game.
//   - Aggregate wins, mean guesses and the guess-count histogram.
//
// Targets are drawn up front from the caller's random source, so a seeded source
// gives the same report regardless of how many workers play the games. The letter
// table and corpus are shared read-only; each game owns its session.
package simulate

import (
	"context"
	"errors"
	"math/rand/v2"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordlebot/internal/game"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/solver"
	"github.com/robalobadob/wordlebot/internal/stats"
	"github.com/robalobadob/wordlebot/internal/words"
)

var (
	ErrNoTargets   = errors.New("simulate: no target words available")
	ErrBadRunCount = errors.New("simulate: run count must be positive")
)

// Runner plays many games and reports aggregate statistics.
type Runner struct {
	Corpus       *words.Corpus
	Table        *stats.Table
	Weights      ranking.Weights
	Strategy     ranking.Strategy // nil → LetterSplit
	MaxGuesses   int              // 0 → game.DefaultRows
	TargetOffset int              // start of the target subset in the corpus
	Workers      int              // 0 → GOMAXPROCS
	Rand         *rand.Rand       // nil → package-level source

	// Oracle, if set, supplies the feedback source for a target in place of a
	// hidden-target game. It is called from worker goroutines.
	Oracle func(target string, maxGuesses int) solver.Oracle

	// Progress, if set, is called once per finished game from worker goroutines.
	Progress func()
}

// Run plays n games. Individual losses are outcomes, not errors; Run fails only
// on degenerate configuration or when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, n int) (*Report, error) {
	if n <= 0 {
		return nil, ErrBadRunCount
	}
	if r.Corpus == nil {
		return nil, ErrNoTargets
	}
	targets := r.Corpus.Targets(r.TargetOffset)
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	maxGuesses := r.MaxGuesses
	if maxGuesses <= 0 {
		maxGuesses = game.DefaultRows
	}
	strategy := r.Strategy
	if strategy == nil {
		strategy = ranking.LetterSplit{}
	}
	// Fail fast on bad tables or weights before spawning anything.
	if _, err := r.session(maxGuesses, strategy); err != nil {
		return nil, err
	}

	picks := make([]string, n)
	for i := range picks {
		picks[i] = targets[r.intN(len(targets))]
	}

	start := time.Now()
	outcomes := make([]int, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers())
	for i, target := range picks {
		g.Go(func() error {
			outcomes[i] = r.playOne(gctx, target, maxGuesses, strategy)
			if r.Progress != nil {
				r.Progress()
			}
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := NewResults(maxGuesses)
	for _, o := range outcomes {
		res.Record(o)
	}
	rep := res.Report()
	rep.StartedAt = start.UTC()
	rep.Strategy = strategy.Name()
	rep.Elapsed = time.Since(start)

	log.Info().
		Int("runs", rep.Runs).
		Int("wins", rep.Wins).
		Float64("meanGuesses", rep.MeanGuesses).
		Dur("elapsed", rep.Elapsed).
		Msg("simulation finished")
	return &rep, nil
}

func (r *Runner) playOne(ctx context.Context, target string, maxGuesses int, strategy ranking.Strategy) int {
	sess, err := r.session(maxGuesses, strategy)
	if err != nil {
		return solver.LossGuesses(maxGuesses)
	}
	out, err := solver.Play(ctx, sess, r.oracle(target, maxGuesses))
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Str("target", target).Msg("game aborted; counted as loss")
		}
		return solver.LossGuesses(maxGuesses)
	}
	if !out.Won {
		log.Debug().Str("target", target).Strs("path", out.Path).Str("reason", out.Reason).Msg("lost")
	}
	return out.Guesses
}

func (r *Runner) oracle(target string, maxGuesses int) solver.Oracle {
	if r.Oracle != nil {
		return r.Oracle(target, maxGuesses)
	}
	hidden := game.New(target, r.Corpus)
	hidden.Rows = maxGuesses
	return hidden
}

func (r *Runner) session(maxGuesses int, strategy ranking.Strategy) (*solver.Session, error) {
	return solver.New(r.Corpus, r.Table, r.Weights,
		solver.WithMaxGuesses(maxGuesses),
		solver.WithStrategy(strategy))
}

func (r *Runner) intN(n int) int {
	if r.Rand != nil {
		return r.Rand.IntN(n)
	}
	return rand.IntN(n)
}

func (r *Runner) workers() int {
	if r.Workers > 0 {
		return r.Workers
	}
	return runtime.GOMAXPROCS(0)
}
