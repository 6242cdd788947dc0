// commands.go
//
// Cobra command tree:
//   analyze   build letter_stats.json from the word list
//   rank      top words by positional letter frequency
//   solve     interactive assistant (enter guesses and patterns)
//   play      guess a hidden word yourself
//   simulate  self-play benchmark over N random targets
//   serve     HTTP API
//   token     mint a JWT for POST /simulate
//   runs      list stored benchmark reports

package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordlebot/internal/config"
	"github.com/robalobadob/wordlebot/internal/daily"
	"github.com/robalobadob/wordlebot/internal/game"
	"github.com/robalobadob/wordlebot/internal/httpserver"
	"github.com/robalobadob/wordlebot/internal/knowledge"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/runs"
	"github.com/robalobadob/wordlebot/internal/simulate"
	"github.com/robalobadob/wordlebot/internal/stats"
	"github.com/robalobadob/wordlebot/internal/store"
)

var (
	logLevel string
	cfg      config.Config
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wordlebot",
		Short:         "Five-letter word game solver and benchmark",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(logLevel)
			cfg = config.FromEnv()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", getEnv("LOG_LEVEL", "info"), "zerolog level")

	root.AddCommand(
		newAnalyzeCmd(),
		newRankCmd(),
		newSolveCmd(),
		newPlayCmd(),
		newSimulateCmd(),
		newServeCmd(),
		newTokenCmd(),
		newRunsCmd(),
	)
	return root
}

func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

// =============================================================================
// ANALYZE / RANK
// =============================================================================

func newAnalyzeCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Count letters by position over the word list",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cfg.Load()
			if err != nil {
				return err
			}
			t := stats.FromWords(res.Corpus.Words())
			if err := t.Save(out); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved letter stats to %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "letter_stats.json", "output file")
	return cmd
}

func newRankCmd() *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the best opening words by positional letter frequency",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cfg.Load()
			if err != nil {
				return err
			}
			ranked, err := ranking.Rank(res.Corpus.Words(), res.Table)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Top %d words by letter position frequency:\n", top)
			printScores(cmd.OutOrStdout(), ranking.Top(ranked, top))
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 10, "how many words to print")
	return cmd
}

// =============================================================================
// SOLVE / PLAY
// =============================================================================

func newSolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solve",
		Short: "Interactive assistant: enter each guess and its pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cfg.Load()
			if err != nil {
				return err
			}
			return runSolveConsole(cmd.InOrStdin(), cmd.OutOrStdout(), res)
		},
	}
}

func newPlayCmd() *cobra.Command {
	var (
		useDaily bool
		answer   string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Guess a hidden word yourself",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cfg.Load()
			if err != nil {
				return err
			}
			target := strings.ToLower(strings.TrimSpace(answer))
			switch {
			case target != "":
			case useDaily:
				target = daily.Pick(time.Now(), getEnv("DAILY_SALT", "local_dev_salt"), res.Corpus.Targets(cfg.TargetOffset))
			default:
				target = res.Corpus.RandomAnswer(cfg.TargetOffset)
			}
			if err := knowledge.ValidateWord(target); err != nil {
				return fmt.Errorf("answer %q: %w", target, err)
			}
			if !res.Corpus.Contains(target) {
				return fmt.Errorf("answer %q: %w", target, game.ErrNotAllowed)
			}
			g := game.New(target, res.Corpus)
			g.Rows = cfg.MaxGuesses
			return runPlayConsole(cmd.InOrStdin(), cmd.OutOrStdout(), g)
		},
	}
	cmd.Flags().BoolVar(&useDaily, "daily", false, "use the word of the day")
	cmd.Flags().StringVar(&answer, "answer", "", "fixed hidden word (testing)")
	return cmd
}

// =============================================================================
// SIMULATE
// =============================================================================

func newSimulateCmd() *cobra.Command {
	var (
		workers  int
		seed     int64
		strategy string
		noStore  bool
	)
	cmd := &cobra.Command{
		Use:   "simulate <num_runs>",
		Short: "Play N games against random hidden words and summarize",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				return fmt.Errorf("please provide a valid number for <num_runs>: %q", args[0])
			}
			res, err := cfg.Load()
			if err != nil {
				return err
			}
			if strategy != "" {
				if res.Strategy, err = ranking.StrategyByName(strategy); err != nil {
					return err
				}
			}

			bar := progressbar.Default(int64(n), "simulating")
			runner := &simulate.Runner{
				Corpus:       res.Corpus,
				Table:        res.Table,
				Weights:      res.Weights,
				Strategy:     res.Strategy,
				MaxGuesses:   cfg.MaxGuesses,
				TargetOffset: cfg.TargetOffset,
				Workers:      workers,
				Progress:     func() { _ = bar.Add(1) },
			}
			if cmd.Flags().Changed("seed") {
				runner.Rand = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Starting simulation of %d games...\n", n)
			rep, err := runner.Run(ctx, n)
			_ = bar.Finish()
			if err != nil {
				return err
			}
			if !noStore {
				if id, err := storeReport(ctx, *rep); err != nil {
					log.Warn().Err(err).Msg("report not stored")
				} else {
					rep.ID = id
				}
			}
			printReport(cmd.OutOrStdout(), *rep)
			return nil
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel games (default GOMAXPROCS)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for target selection")
	cmd.Flags().StringVar(&strategy, "strategy", "", "elimination heuristic: letters | entropy")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "do not record the report in the database")
	return cmd
}

func storeReport(ctx context.Context, rep simulate.Report) (string, error) {
	db, err := runs.OpenDB(cfg.DBPath)
	if err != nil {
		return "", err
	}
	defer db.Close()
	if err := runs.Migrate(db); err != nil {
		return "", err
	}
	return runs.NewStore(db).Insert(ctx, rep)
}

// =============================================================================
// SERVE / TOKEN / RUNS
// =============================================================================

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := cfg.Load()
			if err != nil {
				return err
			}
			db, err := runs.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()
			if err := runs.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}

			srv := httpserver.New(cfg, res, store.NewMemoryStore(), runs.NewStore(db))
			log.Info().Str("port", cfg.Port).Int("words", res.Corpus.Len()).Msg("starting wordlebot server")
			return srv.Start(":" + cfg.Port)
		},
	}
}

func newTokenCmd() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for POST /simulate",
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, exp, err := httpserver.SignToken(cfg.JWTSecret, subject, cfg.JWTDays)
			if err != nil {
				return err
			}
			log.Info().Time("expires", exp).Str("subject", subject).Msg("token issued")
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "bench", "token subject")
	return cmd
}

func newRunsCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List stored simulation reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := runs.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := runs.Migrate(db); err != nil {
				return err
			}
			reps, err := runs.NewStore(db).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, r := range reps {
				fmt.Fprintf(out, "%s  %s  %-8s runs=%-6d win=%6.2f%%  mean=%.3f\n",
					r.StartedAt.Local().Format(time.DateTime), r.ID, r.Strategy, r.Runs, r.WinRate*100, r.MeanGuesses)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "how many reports")
	return cmd
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
