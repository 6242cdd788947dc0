// internal/knowledge/state.go
//
// Accumulated constraints for one solving session.
// Responsibilities:
//   - Ingest (guess, verdict) pairs into compact constraint sets.
//   - Report whether every position is confirmed (solved).
//   - Render a human-readable summary of what is known.
//
// Besides the per-position and whole-word letter sets, the state keeps per-letter
// occurrence bounds so that repeated letters are handled exactly: a guess that marks
// one "e" present and another "e" absent pins the count of "e" to one.
//
// A State is owned by a single session and is not safe for concurrent use.

package knowledge

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConflict is returned when feedback contradicts a confirmed correct position.
var ErrConflict = errors.New("pattern conflicts with a confirmed letter")

// Line is one ingested guess with its verdict.
type Line struct {
	Word    string
	Verdict Verdict
}

// State holds everything learned from the guesses so far.
type State struct {
	correct     [WordLen]byte      // 0 when unknown
	misplaced   [WordLen]LetterSet // present, but not at this position
	banned      [WordLen]LetterSet // known-present letters marked absent here
	mustContain LetterSet
	excluded    LetterSet
	minCount    [26]int8
	capCount    [26]int8 // maximum count + 1; 0 when unbounded
	history     []Line
}

// New returns an empty State. The zero value is also ready to use.
func New() *State { return &State{} }

// Reset clears all constraints and history.
func (s *State) Reset() { *s = State{} }

// Ingest folds one guess and its verdict into the state.
// On error the state is left untouched.
func (s *State) Ingest(word string, v Verdict) error {
	if err := ValidateWord(word); err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	for i := 0; i < WordLen; i++ {
		if v[i] == MarkCorrect && s.correct[i] != 0 && s.correct[i] != word[i] {
			return fmt.Errorf("%w: position %d is %q", ErrConflict, i+1, s.correct[i])
		}
	}

	var present [26]int8
	var absent [26]bool

	// Positive evidence first, so a letter marked both present and absent in the
	// same guess never lands in the excluded set.
	for i := 0; i < WordLen; i++ {
		c := word[i]
		switch v[i] {
		case MarkCorrect:
			s.correct[i] = c
			s.mustContain = s.mustContain.Add(c)
			present[c-'a']++
		case MarkMisplaced:
			s.misplaced[i] = s.misplaced[i].Add(c)
			s.mustContain = s.mustContain.Add(c)
			present[c-'a']++
		}
	}
	s.excluded = s.excluded.Without(s.mustContain)

	for i := 0; i < WordLen; i++ {
		if v[i] != MarkAbsent {
			continue
		}
		c := word[i]
		absent[c-'a'] = true
		if s.mustContain.Has(c) {
			s.banned[i] = s.banned[i].Add(c)
		} else {
			s.excluded = s.excluded.Add(c)
		}
	}

	for l := 0; l < 26; l++ {
		if present[l] > s.minCount[l] {
			s.minCount[l] = present[l]
		}
		if absent[l] && (s.capCount[l] == 0 || present[l]+1 < s.capCount[l]) {
			s.capCount[l] = present[l] + 1
		}
	}

	s.history = append(s.history, Line{Word: word, Verdict: v})
	return nil
}

// IsSolved reports whether all five positions are confirmed.
func (s *State) IsSolved() bool {
	for _, c := range s.correct {
		if c == 0 {
			return false
		}
	}
	return true
}

// SolvedWord returns the confirmed word once IsSolved is true.
func (s *State) SolvedWord() (string, bool) {
	if !s.IsSolved() {
		return "", false
	}
	return string(s.correct[:]), true
}

// Correct returns the confirmed letter at each position (0 when unknown).
func (s *State) Correct() [WordLen]byte { return s.correct }

// Misplaced returns the letters known present but not at position i.
func (s *State) Misplaced(i int) LetterSet { return s.misplaced[i] }

// Banned returns known-present letters that were marked absent at position i.
func (s *State) Banned(i int) LetterSet { return s.banned[i] }

// MustContain returns every letter confirmed present somewhere.
func (s *State) MustContain() LetterSet { return s.mustContain }

// Excluded returns every letter confirmed absent from the word.
func (s *State) Excluded() LetterSet { return s.excluded }

// Requires reports whether letter c is confirmed present.
func (s *State) Requires(c byte) bool { return s.mustContain.Has(c) }

// Bounds returns the known minimum count of letter c and, when capped is true,
// its maximum.
func (s *State) Bounds(c byte) (lo int, hi int, capped bool) {
	i := c - 'a'
	return int(s.minCount[i]), int(s.capCount[i]) - 1, s.capCount[i] > 0
}

// History returns the ingested guesses in order. The slice must not be modified.
func (s *State) History() []Line { return s.history }

// Attempts is the number of guesses ingested so far.
func (s *State) Attempts() int { return len(s.history) }

// Summary renders the state the way the console solver prints it.
func (s *State) Summary() string {
	var b strings.Builder
	b.WriteString("=== Current Game State ===\n")
	fmt.Fprintf(&b, "Guesses: %d\n", len(s.history))
	fmt.Fprintf(&b, "Not in word: %s\n", spaced(s.excluded.Letters()))

	pos := make([]string, WordLen)
	for i, c := range s.correct {
		if c == 0 {
			pos[i] = "_"
		} else {
			pos[i] = strings.ToUpper(string(c))
		}
	}
	fmt.Fprintf(&b, "Correct positions: %s\n", strings.Join(pos, " "))

	var parts []string
	for i, set := range s.misplaced {
		if set.Len() > 0 {
			parts = append(parts, fmt.Sprintf("%d: %s", i, strings.ToUpper(set.Letters())))
		}
	}
	fmt.Fprintf(&b, "Misplaced letters: %s\n", strings.Join(parts, ", "))
	fmt.Fprintf(&b, "Must contain: %s\n", spaced(s.mustContain.Letters()))
	b.WriteString("==========================")
	return b.String()
}

func spaced(letters string) string {
	out := make([]string, 0, len(letters))
	for _, r := range strings.ToUpper(letters) {
		out = append(out, string(r))
	}
	return strings.Join(out, " ")
}
