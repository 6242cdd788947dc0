package solver

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlebot/internal/knowledge"
)

// Oracle supplies the verdict for a guess: a hidden-target game in self-play,
// or a person at a console.
type Oracle interface {
	Feedback(guess string) (knowledge.Verdict, error)
}

// Outcome summarizes a finished session.
type Outcome struct {
	Won     bool     `json:"won"`
	Guesses int      `json:"guesses"` // guesses used, or LossGuesses when lost
	Path    []string `json:"path"`
	Reason  string   `json:"reason,omitempty"`
}

// LossGuesses is the sentinel guess count recorded for a lost game.
func LossGuesses(maxGuesses int) int { return maxGuesses + 1 }

// Play drives s with its own top suggestion until it is solved or exhausted.
// Errors come only from the oracle or from ctx.
func Play(ctx context.Context, s *Session, o Oracle) (Outcome, error) {
	var out Outcome
	for s.Status() == Active {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		top, err := s.Suggest(1)
		if err != nil {
			return out, err
		}
		if len(top) == 0 {
			s.exhaust(ReasonNoCandidates)
			break
		}
		guess := top[0].Word
		v, err := o.Feedback(guess)
		if err != nil {
			return out, err
		}
		out.Path = append(out.Path, guess)
		if _, err := s.Guess(guess, v); err != nil {
			return out, err
		}
		log.Debug().Str("guess", guess).Str("verdict", v.String()).Int("remaining", s.Remaining()).Msg("solver step")
	}

	if s.Status() == Solved {
		out.Won = true
		out.Guesses = s.Attempts()
		return out, nil
	}
	out.Reason = s.Reason()
	budget := s.MaxGuesses()
	if budget == 0 {
		budget = s.Attempts()
	}
	out.Guesses = LossGuesses(budget)
	return out, nil
}
