// internal/solver/session.go
//
// Solver session state machine.
// Responsibilities:
//   - Own the knowledge state and the shrinking candidate list of one game.
//   - Validate and apply guesses with their verdicts.
//   - Track transitions: active → solved | exhausted, and reset back to active.
//   - Rank the remaining candidates for the next suggestion.
//
// Notes:
//   - The corpus, letter table and weights are immutable values shared between
//     sessions; everything else belongs to the session.
//   - Exhaustion (no consistent candidate, or guess budget used up) is a status,
//     not an error.
package solver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordlebot/internal/filter"
	"github.com/robalobadob/wordlebot/internal/knowledge"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/stats"
	"github.com/robalobadob/wordlebot/internal/words"
)

// Status is the lifecycle state of a Session.
type Status int

const (
	Active Status = iota
	Solved
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Solved:
		return "solved"
	case Exhausted:
		return "exhausted"
	}
	return "unknown"
}

// Reasons reported by Reason once a session is exhausted.
const (
	ReasonNoCandidates = "no consistent candidates"
	ReasonOutOfGuesses = "guess limit reached"
)

var (
	ErrInvalidGuess = errors.New("invalid guess")
	ErrUnknownWord  = errors.New("not in the word list")
	ErrFinished     = errors.New("session finished")
)

// Option configures a Session.
type Option func(*Session)

// WithMaxGuesses caps the number of guesses; 0 leaves the session unbounded.
func WithMaxGuesses(n int) Option {
	return func(s *Session) {
		if n >= 0 {
			s.maxGuesses = n
		}
	}
}

// WithStrategy swaps the elimination heuristic used by weighted ranking.
func WithStrategy(st ranking.Strategy) Option {
	return func(s *Session) {
		if st != nil {
			s.strategy = st
		}
	}
}

// Session is one solving session. It is not safe for concurrent use.
type Session struct {
	corpus     *words.Corpus
	table      *stats.Table
	weights    ranking.Weights
	strategy   ranking.Strategy
	maxGuesses int

	known      *knowledge.State
	candidates []string
	status     Status
	reason     string
}

// New starts a session over the full corpus.
func New(corpus *words.Corpus, table *stats.Table, weights ranking.Weights, opts ...Option) (*Session, error) {
	if corpus == nil || corpus.Len() == 0 {
		return nil, words.ErrEmpty
	}
	if table == nil {
		return nil, ranking.ErrNoStats
	}
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		corpus:   corpus,
		table:    table,
		weights:  weights,
		strategy: ranking.LetterSplit{},
		known:    knowledge.New(),
	}
	for _, o := range opts {
		o(s)
	}
	s.Reset()
	return s, nil
}

// Reset clears all feedback and restores the full candidate list.
func (s *Session) Reset() {
	s.known.Reset()
	s.candidates = s.corpus.Words()
	s.status = Active
	s.reason = ""
}

// Guess applies a guess and its verdict. Invalid input is rejected without
// changing the session.
func (s *Session) Guess(word string, v knowledge.Verdict) (Status, error) {
	if s.status != Active {
		return s.status, ErrFinished
	}
	word = strings.ToLower(strings.TrimSpace(word))
	if err := knowledge.ValidateWord(word); err != nil {
		return s.status, fmt.Errorf("%w: %w", ErrInvalidGuess, err)
	}
	if !s.corpus.Contains(word) {
		return s.status, ErrUnknownWord
	}
	if err := s.known.Ingest(word, v); err != nil {
		return s.status, err
	}

	if s.known.IsSolved() {
		solved, _ := s.known.SolvedWord()
		s.candidates = []string{solved}
		s.status = Solved
		return s.status, nil
	}

	s.candidates = filter.Filter(s.candidates, s.known)
	switch {
	case len(s.candidates) == 0:
		s.exhaust(ReasonNoCandidates)
	case s.maxGuesses > 0 && s.known.Attempts() >= s.maxGuesses:
		s.exhaust(ReasonOutOfGuesses)
	}
	return s.status, nil
}

func (s *Session) exhaust(reason string) {
	s.status = Exhausted
	s.reason = reason
}

// Suggest ranks the remaining candidates and returns the best n (all when n <= 0).
// Before the first guess the plain positional ranking is used; afterwards the
// weight triple for the current attempt index applies.
func (s *Session) Suggest(n int) ([]ranking.Scored, error) {
	var (
		ranked []ranking.Scored
		err    error
	)
	attempt := s.known.Attempts()
	if attempt == 0 {
		ranked, err = ranking.Rank(s.candidates, s.table)
	} else {
		ranked, err = ranking.WeightedRank(s.candidates, s.table, s.weights.ForAttempt(attempt), s.strategy, s.known)
	}
	if err != nil {
		return nil, err
	}
	if n > 0 {
		ranked = ranking.Top(ranked, n)
	}
	return ranked, nil
}

// Status reports the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// Reason explains an Exhausted status; empty otherwise.
func (s *Session) Reason() string { return s.reason }

// Attempts is the number of accepted guesses.
func (s *Session) Attempts() int { return s.known.Attempts() }

// MaxGuesses is the guess budget, 0 when unbounded.
func (s *Session) MaxGuesses() int { return s.maxGuesses }

// Candidates returns the words still consistent with the feedback.
// The slice must not be modified.
func (s *Session) Candidates() []string { return s.candidates }

// Remaining is len(Candidates()).
func (s *Session) Remaining() int { return len(s.candidates) }

// Known exposes the accumulated feedback.
func (s *Session) Known() *knowledge.State { return s.known }

// SolvedWord returns the answer once the session is solved.
func (s *Session) SolvedWord() (string, bool) { return s.known.SolvedWord() }

// Strategy names the elimination heuristic in use.
func (s *Session) Strategy() string { return s.strategy.Name() }
