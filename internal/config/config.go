// internal/config/config.go
//
// Process configuration and the immutable resources a solver needs.
// Responsibilities:
//   - Read settings from the environment (a .env file is loaded by main via godotenv).
//   - Load the corpus, letter table and weight table once, up front.
//
// Environment variables:
//   WORDLEBOT_WORDLIST       path to the word list (default: embedded list)
//   WORDLEBOT_STATS          path to letter_stats.json (default: computed from the word list)
//   WORDLEBOT_WEIGHTS        path to the weight table, .json or .yaml (default: embedded)
//   WORDLEBOT_TARGET_OFFSET  start of the self-play target subset (default 10657)
//   WORDLEBOT_STRATEGY       elimination heuristic: letters | entropy (default letters)
//   WORDLEBOT_MAX_GUESSES    self-play guess budget (default 6)
//   DB_PATH                  SQLite file for benchmark history (default ./data/wordlebot.db)
//   PORT                     HTTP port for `serve` (default 5175)
//   JWT_SECRET               HS256 secret guarding POST /simulate
//   JWT_EXPIRES_DAYS         lifetime of tokens minted by `token` (default 14)
//   CLIENT_ORIGIN            CORS origin (default http://localhost:5173)

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlebot/assets"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/stats"
	"github.com/robalobadob/wordlebot/internal/words"
)

// Config holds settings read from the environment.
type Config struct {
	WordList     string
	StatsPath    string
	WeightsPath  string
	TargetOffset int
	Strategy     string
	MaxGuesses   int
	DBPath       string
	Port         string
	JWTSecret    string
	JWTDays      int
	ClientOrigin string
}

// FromEnv reads Config with defaults for anything unset.
func FromEnv() Config {
	return Config{
		WordList:     os.Getenv("WORDLEBOT_WORDLIST"),
		StatsPath:    os.Getenv("WORDLEBOT_STATS"),
		WeightsPath:  os.Getenv("WORDLEBOT_WEIGHTS"),
		TargetOffset: envInt("WORDLEBOT_TARGET_OFFSET", words.DefaultTargetOffset),
		Strategy:     getEnv("WORDLEBOT_STRATEGY", "letters"),
		MaxGuesses:   envInt("WORDLEBOT_MAX_GUESSES", 6),
		DBPath:       getEnv("DB_PATH", "./data/wordlebot.db"),
		Port:         getEnv("PORT", "5175"),
		JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
		JWTDays:      envInt("JWT_EXPIRES_DAYS", 14),
		ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
	}
}

// Resources are the read-only inputs shared by every session.
type Resources struct {
	Corpus   *words.Corpus
	Table    *stats.Table
	Weights  ranking.Weights
	Strategy ranking.Strategy
}

// Load reads every resource named by c. Any failure is fatal to the caller.
func (c Config) Load() (*Resources, error) {
	corpus, err := words.Load(c.WordList)
	if err != nil {
		return nil, fmt.Errorf("load word list: %w", err)
	}

	var table *stats.Table
	if c.StatsPath == "" {
		table = stats.FromWords(corpus.Words())
	} else if table, err = stats.Load(c.StatsPath); err != nil {
		return nil, err
	}

	weights, err := c.loadWeights()
	if err != nil {
		return nil, err
	}

	strategy, err := ranking.StrategyByName(c.Strategy)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Int("words", corpus.Len()).
		Int("statsWords", table.Words()).
		Int("weights", len(weights)).
		Str("strategy", strategy.Name()).
		Msg("resources loaded")
	return &Resources{Corpus: corpus, Table: table, Weights: weights, Strategy: strategy}, nil
}

func (c Config) loadWeights() (ranking.Weights, error) {
	if c.WeightsPath != "" {
		return ranking.LoadWeights(c.WeightsPath)
	}
	raw, err := assets.SolverConfig()
	if err != nil {
		return nil, err
	}
	ws, err := ranking.ParseWeights(raw, false)
	if err != nil {
		return nil, fmt.Errorf("embedded solver_config.json: %w", err)
	}
	return ws, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Warn().Str("key", k).Str("value", v).Msg("ignoring non-numeric setting")
	}
	return def
}
