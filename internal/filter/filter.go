// Package filter narrows a word list to the words consistent with what is known.
package filter

import "github.com/robalobadob/wordlebot/internal/knowledge"

// Filter returns the candidates that satisfy every constraint in st, preserving
// input order. The input slice is not modified. An empty result is valid and
// means no word is consistent with the feedback.
func Filter(candidates []string, st *knowledge.State) []string {
	p := compile(st)
	out := make([]string, 0, len(candidates)/4+1)
	for _, w := range candidates {
		if p.matches(w) {
			out = append(out, w)
		}
	}
	return out
}

// Matches reports whether a single word is consistent with st.
func Matches(word string, st *knowledge.State) bool {
	return compile(st).matches(word)
}

// predicate is a flattened copy of the state, built once per Filter call.
type predicate struct {
	correct   [knowledge.WordLen]byte
	notAt     [knowledge.WordLen]knowledge.LetterSet // misplaced ∪ banned
	misplaced knowledge.LetterSet                    // union over positions
	must      knowledge.LetterSet
	excluded  knowledge.LetterSet
	bounded   []bound
}

type bound struct {
	letter byte
	lo, hi int
	capped bool
}

func compile(st *knowledge.State) predicate {
	p := predicate{
		correct:  st.Correct(),
		must:     st.MustContain(),
		excluded: st.Excluded(),
	}
	for i := 0; i < knowledge.WordLen; i++ {
		m := st.Misplaced(i)
		p.misplaced |= m
		p.notAt[i] = m | st.Banned(i)
	}
	for c := byte('a'); c <= 'z'; c++ {
		lo, hi, capped := st.Bounds(c)
		if lo > 1 || capped {
			p.bounded = append(p.bounded, bound{letter: c, lo: lo, hi: hi, capped: capped})
		}
	}
	return p
}

func (p predicate) matches(w string) bool {
	if len(w) != knowledge.WordLen {
		return false
	}
	var have knowledge.LetterSet
	for i := 0; i < knowledge.WordLen; i++ {
		c := w[i]
		if p.correct[i] != 0 && c != p.correct[i] {
			return false
		}
		if p.notAt[i].Has(c) || p.excluded.Has(c) {
			return false
		}
		have = have.Add(c)
	}
	if p.must.Without(have) != 0 || p.misplaced.Without(have) != 0 {
		return false
	}
	for _, b := range p.bounded {
		n := count(w, b.letter)
		if n < b.lo || (b.capped && n > b.hi) {
			return false
		}
	}
	return true
}

func count(w string, c byte) int {
	n := 0
	for i := 0; i < len(w); i++ {
		if w[i] == c {
			n++
		}
	}
	return n
}
