// internal/game/types.go
//
// Type definitions for a hidden-target game.
// Defines:
//   - State:   coarse lifecycle of a game (playing/won/lost).
//   - Lexicon: the word list a guess must belong to.
//   - Game:    state for a single in-progress or finished game.

package game

// State is the coarse lifecycle of a Game.
type State string

const (
	StatePlaying State = "playing"
	StateWon     State = "won"
	StateLost    State = "lost"
)

// Lexicon reports whether a word is an acceptable guess.
type Lexicon interface {
	Contains(w string) bool
}

// Game holds the state of a single game against a hidden answer.
type Game struct {
	ID       string   // Unique game identifier (random hex string).
	Answer   string   // The solution word (always lowercase).
	Rows     int      // Maximum number of guesses allowed (typically 6).
	Guesses  []string // List of guesses made so far (lowercased).
	Finished bool     // True once the game is over (won or lost).
	Won      bool     // True if the game was finished with a win.

	lexicon Lexicon
}
