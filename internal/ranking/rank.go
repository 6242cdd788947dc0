// internal/ranking/rank.go
//
// Candidate ranking.
// Two modes:
//   - Rank:         raw positional frequency, used before the first guess.
//   - WeightedRank: w1*positional + w2*distinct + w3*elimination, used afterwards.
//
// Both return words sorted by descending score; equal scores keep input order.

package ranking

import (
	"errors"
	"sort"

	"github.com/robalobadob/wordlebot/internal/knowledge"
	"github.com/robalobadob/wordlebot/internal/stats"
)

// ErrNoStats is returned when ranking is asked to run without a letter table.
var ErrNoStats = errors.New("ranking: letter statistics not loaded")

// Scored is a word with its ranking score.
type Scored struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// Known is the part of the accumulated feedback that strategies may consult.
type Known interface {
	Requires(c byte) bool
}

// Rank scores each candidate by the sum of its letters' positional counts.
// Repeated letters count once per occurrence.
func Rank(candidates []string, t *stats.Table) ([]Scored, error) {
	if t == nil {
		return nil, ErrNoStats
	}
	out := make([]Scored, len(candidates))
	for i, w := range candidates {
		out[i] = Scored{Word: w, Score: float64(positional(w, t))}
	}
	sortScores(out)
	return out, nil
}

// WeightedRank scores candidates with the weight triple w. Strategy may be nil,
// in which case LetterSplit is used; known may be nil.
func WeightedRank(candidates []string, t *stats.Table, w Weight, strategy Strategy, known Known) ([]Scored, error) {
	if t == nil {
		return nil, ErrNoStats
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return []Scored{}, nil
	}
	if strategy == nil {
		strategy = LetterSplit{}
	}
	elim := strategy.Prepare(candidates, known)

	total := float64(t.Words())
	out := make([]Scored, len(candidates))
	for i, word := range candidates {
		var freq float64
		if total > 0 {
			freq = float64(positional(word, t)) / total
		}
		out[i] = Scored{
			Word: word,
			Score: w.Frequency*freq +
				w.Distinct*distinct(word) +
				w.Elimination*elim(word),
		}
	}
	sortScores(out)
	return out, nil
}

// Top returns at most n leading entries of a ranking.
func Top(ranked []Scored, n int) []Scored {
	if n < 0 || n >= len(ranked) {
		return ranked
	}
	return ranked[:n]
}

func positional(w string, t *stats.Table) int {
	sum := 0
	for i := 0; i < len(w) && i < knowledge.WordLen; i++ {
		sum += t.Count(w[i], i)
	}
	return sum
}

// distinct is the share of unique letters in w: 1.0 for five different letters.
func distinct(w string) float64 {
	return float64(knowledge.SetOf(w).Len()) / knowledge.WordLen
}

func sortScores(s []Scored) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].Score > s[j].Score })
}
