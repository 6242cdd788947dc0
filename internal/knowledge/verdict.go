// internal/knowledge/verdict.go
//
// Per-letter feedback symbols and the 5-symbol verdict that a guess receives.
// Defines:
//   - Mark:    result for a single letter (correct/misplaced/absent).
//   - Verdict: the fixed-size row of marks for one guess.
//
// The textual form uses the console alphabet: c = correct, m = misplaced, w = wrong (absent).

package knowledge

import (
	"errors"
	"fmt"
	"strings"
)

// WordLen is the only supported word length.
const WordLen = 5

// Mark represents the evaluation result for a single letter in a guess.
type Mark byte

const (
	MarkCorrect   Mark = 'c' // right letter, right position
	MarkMisplaced Mark = 'm' // letter present elsewhere
	MarkAbsent    Mark = 'w' // letter not present (net of confirmed occurrences)
)

var (
	ErrWordLength    = errors.New("word must be exactly 5 letters")
	ErrWordChars     = errors.New("word must contain only letters a-z")
	ErrVerdictLength = errors.New("pattern must be exactly 5 symbols")
	ErrVerdictSymbol = errors.New("pattern may only use c, m and w")
)

// Verdict is the row of marks for one guess.
type Verdict [WordLen]Mark

// AllCorrect is the verdict of a solved guess.
var AllCorrect = Verdict{MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect, MarkCorrect}

// ParseVerdict reads a pattern such as "wwcmc". Case and surrounding space are ignored.
func ParseVerdict(s string) (Verdict, error) {
	var v Verdict
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != WordLen {
		return v, ErrVerdictLength
	}
	for i := 0; i < WordLen; i++ {
		v[i] = Mark(s[i])
	}
	if err := v.Validate(); err != nil {
		return Verdict{}, err
	}
	return v, nil
}

// MustVerdict is ParseVerdict for literals known to be valid. It panics otherwise.
func MustVerdict(s string) Verdict {
	v, err := ParseVerdict(s)
	if err != nil {
		panic(fmt.Sprintf("knowledge: bad verdict %q: %v", s, err))
	}
	return v
}

// Validate reports whether every mark is one of the three known symbols.
func (v Verdict) Validate() error {
	for _, m := range v {
		switch m {
		case MarkCorrect, MarkMisplaced, MarkAbsent:
		default:
			return ErrVerdictSymbol
		}
	}
	return nil
}

// Solved reports whether every mark is correct.
func (v Verdict) Solved() bool { return v == AllCorrect }

func (v Verdict) String() string {
	b := make([]byte, WordLen)
	for i, m := range v {
		b[i] = byte(m)
	}
	return string(b)
}

// ValidateWord checks a guess shape: 5 lowercase ASCII letters.
func ValidateWord(w string) error {
	if len(w) != WordLen {
		return ErrWordLength
	}
	for i := 0; i < WordLen; i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return ErrWordChars
		}
	}
	return nil
}
