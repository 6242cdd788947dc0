// internal/runs/store.go
//
// Persistence of simulation reports, so strategies and weight tables can be
// compared across invocations.

package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robalobadob/wordlebot/internal/simulate"
)

// startedLayout is fixed width so started_at sorts correctly as text.
const startedLayout = "2006-01-02T15:04:05.000000000Z"

// Store reads and writes the sim_runs table.
type Store struct{ db *sql.DB }

// NewStore wraps an open, migrated database.
func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records a report and returns its new ID.
func (s *Store) Insert(ctx context.Context, r simulate.Report) (string, error) {
	hist, err := json.Marshal(r.Histogram)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	started := r.StartedAt
	if started.IsZero() {
		started = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO sim_runs
            (id, started_at, strategy, runs, wins, max_guesses, mean_guesses, histogram, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, started.UTC().Format(startedLayout), r.Strategy, r.Runs, r.Wins,
		r.MaxGuesses, r.MeanGuesses, string(hist), r.Elapsed.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("insert sim run: %w", err)
	}
	return id, nil
}

// Recent returns the latest reports, newest first. Default limit is 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]simulate.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, started_at, strategy, runs, wins, max_guesses, mean_guesses, histogram, elapsed_ms
        FROM sim_runs
        ORDER BY started_at DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]simulate.Report, 0, limit)
	for rows.Next() {
		var (
			r         simulate.Report
			started   string
			hist      string
			elapsedMs int64
		)
		if err := rows.Scan(&r.ID, &started, &r.Strategy, &r.Runs, &r.Wins, &r.MaxGuesses,
			&r.MeanGuesses, &hist, &elapsedMs); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(startedLayout, started)
		if err := json.Unmarshal([]byte(hist), &r.Histogram); err != nil {
			return nil, fmt.Errorf("decode histogram of %s: %w", r.ID, err)
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		if r.Runs > 0 {
			r.WinRate = float64(r.Wins) / float64(r.Runs)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
