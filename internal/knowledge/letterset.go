package knowledge

import "math/bits"

// LetterSet is a set of lowercase ASCII letters, one bit per letter.
type LetterSet uint32

// Add returns the set with c included. Non-letters are ignored.
func (s LetterSet) Add(c byte) LetterSet {
	if c < 'a' || c > 'z' {
		return s
	}
	return s | 1<<(c-'a')
}

// Has reports whether c is in the set.
func (s LetterSet) Has(c byte) bool {
	if c < 'a' || c > 'z' {
		return false
	}
	return s&(1<<(c-'a')) != 0
}

// Without returns s minus every letter in o.
func (s LetterSet) Without(o LetterSet) LetterSet { return s &^ o }

// Len is the number of letters in the set.
func (s LetterSet) Len() int { return bits.OnesCount32(uint32(s)) }

// Letters lists the members in alphabetical order.
func (s LetterSet) Letters() string {
	out := make([]byte, 0, s.Len())
	for c := byte('a'); c <= 'z'; c++ {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return string(out)
}

// SetOf builds a set from the letters of w.
func SetOf(w string) LetterSet {
	var s LetterSet
	for i := 0; i < len(w); i++ {
		s = s.Add(w[i])
	}
	return s
}
