// internal/ranking/strategy.go
//
// Elimination strategies: how much a guess is expected to split the remaining
// candidates. Strategies are swappable so the solver does not depend on any
// particular heuristic.

package ranking

import (
	"fmt"
	"math"
	"strings"

	"github.com/robalobadob/wordlebot/internal/game"
	"github.com/robalobadob/wordlebot/internal/knowledge"
)

// Scorer returns the elimination bonus of a word, normally in [0, 1].
type Scorer func(word string) float64

// Strategy prepares a Scorer for one candidate set.
type Strategy interface {
	Name() string
	Prepare(candidates []string, known Known) Scorer
}

// LetterSplit rewards letters that appear in about half of the candidates.
// A letter contained by a share p of candidates scores 1-|2p-1|; letters already
// confirmed present score nothing. The sum over distinct letters is divided by 5.
type LetterSplit struct{}

func (LetterSplit) Name() string { return "letters" }

func (LetterSplit) Prepare(candidates []string, known Known) Scorer {
	var share [26]float64
	if n := len(candidates); n > 0 {
		var hits [26]int
		for _, w := range candidates {
			set := knowledge.SetOf(w)
			for c := byte('a'); c <= 'z'; c++ {
				if set.Has(c) {
					hits[c-'a']++
				}
			}
		}
		for i, h := range hits {
			share[i] = float64(h) / float64(n)
		}
	}
	return func(word string) float64 {
		var sum float64
		set := knowledge.SetOf(word)
		for c := byte('a'); c <= 'z'; c++ {
			if !set.Has(c) || (known != nil && known.Requires(c)) {
				continue
			}
			sum += 1 - math.Abs(2*share[c-'a']-1)
		}
		return sum / knowledge.WordLen
	}
}

// maxPatterns is the number of distinct verdicts (3^5).
const maxPatterns = 243

// Entropy scores a word by the expected information of its verdict over the
// candidates, in bits, divided by log2(243). Above MaxCandidates the quadratic
// cost is avoided and LetterSplit is used instead.
type Entropy struct {
	MaxCandidates int // 0 means 500
}

func (Entropy) Name() string { return "entropy" }

func (e Entropy) Prepare(candidates []string, known Known) Scorer {
	limit := e.MaxCandidates
	if limit <= 0 {
		limit = 500
	}
	if len(candidates) > limit {
		return LetterSplit{}.Prepare(candidates, known)
	}
	n := float64(len(candidates))
	norm := math.Log2(maxPatterns)
	return func(word string) float64 {
		if len(candidates) == 0 {
			return 0
		}
		var buckets [maxPatterns]int
		for _, target := range candidates {
			buckets[patternCode(game.Evaluate(word, target))]++
		}
		var bits float64
		for _, b := range buckets {
			if b == 0 {
				continue
			}
			p := float64(b) / n
			bits -= p * math.Log2(p)
		}
		return bits / norm
	}
}

func patternCode(v knowledge.Verdict) int {
	code := 0
	for _, m := range v {
		code *= 3
		switch m {
		case knowledge.MarkMisplaced:
			code++
		case knowledge.MarkCorrect:
			code += 2
		}
	}
	return code
}

// StrategyByName resolves "letters" (default when empty) or "entropy".
func StrategyByName(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "letters":
		return LetterSplit{}, nil
	case "entropy":
		return Entropy{}, nil
	}
	return nil, fmt.Errorf("ranking: unknown strategy %q", name)
}
