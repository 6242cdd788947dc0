// internal/game/engine.go
//
// Feedback evaluation and the hidden-target game used for self-play.
// Responsibilities:
//   - Score guesses using the classic two-pass Wordle algorithm (Evaluate).
//   - Create games around a known answer with a fixed guess budget.
//   - Validate and apply guesses (length, alphabetic, lexicon membership).
//   - Track state transitions: playing → won/lost.
//
// A *Game doubles as the feedback oracle of the solver: Feedback returns the
// verdict for a guess and records it against the budget.
package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordlebot/internal/knowledge"
)

// DefaultRows is the standard guess budget.
const DefaultRows = 6

var (
	ErrFinished   = errors.New("game finished")
	ErrNotAllowed = errors.New("not in word list")
	ErrBadAnswer  = errors.New("hidden answer is not a 5-letter word")
)

// New constructs a game around answer with the default budget.
// A nil lexicon accepts any well-formed word.
func New(answer string, lexicon Lexicon) *Game {
	return &Game{
		ID:      randomID(),
		Answer:  strings.ToLower(strings.TrimSpace(answer)),
		Rows:    DefaultRows,
		Guesses: []string{},
		lexicon: lexicon,
	}
}

// ApplyGuess validates and scores a guess, mutating the game state.
//
// Validation rules:
//   - The answer must itself be 5 letters a–z (ErrBadAnswer).
//   - Game must not be finished.
//   - Guess must be exactly 5 letters a–z.
//   - Guess must be present in the lexicon, when one is set.
//
// State transitions:
//   - If all tiles are correct → Finished = true, Won = true.
//   - Else if the number of guesses reaches g.Rows → Finished = true (loss).
func (g *Game) ApplyGuess(guess string) (knowledge.Verdict, State, error) {
	if err := knowledge.ValidateWord(g.Answer); err != nil {
		return knowledge.Verdict{}, g.State(), fmt.Errorf("%w: %q", ErrBadAnswer, g.Answer)
	}
	if g.Finished {
		return knowledge.Verdict{}, g.State(), ErrFinished
	}
	guess = strings.ToLower(strings.TrimSpace(guess))
	if err := knowledge.ValidateWord(guess); err != nil {
		return knowledge.Verdict{}, g.State(), err
	}
	if g.lexicon != nil && !g.lexicon.Contains(guess) {
		return knowledge.Verdict{}, g.State(), ErrNotAllowed
	}

	v := Evaluate(guess, g.Answer)
	g.Guesses = append(g.Guesses, guess)

	if v.Solved() {
		g.Finished, g.Won = true, true
	} else if g.Rows > 0 && len(g.Guesses) >= g.Rows {
		g.Finished = true
	}
	return v, g.State(), nil
}

// Feedback is ApplyGuess without the state, so a Game can act as a solver oracle.
func (g *Game) Feedback(guess string) (knowledge.Verdict, error) {
	v, _, err := g.ApplyGuess(guess)
	return v, err
}

// State reports the coarse state of the game.
func (g *Game) State() State {
	if g.Finished {
		if g.Won {
			return StateWon
		}
		return StateLost
	}
	return StatePlaying
}

// Evaluate implements the standard Wordle two-pass scoring algorithm.
//
// Pass 1:
//   - Mark exact matches as correct.
//   - Count remaining (unmatched) target letters.
//
// Pass 2:
//   - For each non-correct guess letter: if there is remaining count for that letter,
//     mark misplaced and decrement the count; otherwise mark absent.
//
// Both words must be 5 lowercase letters.
func Evaluate(guess, target string) knowledge.Verdict {
	var res knowledge.Verdict

	// Letter frequency for the unmatched target positions (a–z).
	var counts [26]int

	for i := 0; i < knowledge.WordLen; i++ {
		if guess[i] == target[i] {
			res[i] = knowledge.MarkCorrect
		} else {
			counts[idx(target[i])]++
		}
	}

	for i := 0; i < knowledge.WordLen; i++ {
		if res[i] == knowledge.MarkCorrect {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && j < 26 && counts[j] > 0 {
			res[i] = knowledge.MarkMisplaced
			counts[j]--
		} else {
			res[i] = knowledge.MarkAbsent
		}
	}
	return res
}

// idx maps a lowercase ASCII letter to 0..25.
func idx(c byte) int { return int(c) - 'a' }

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
