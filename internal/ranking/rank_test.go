package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordlebot/internal/stats"
)

var trio = []string{"crane", "trace", "slate"}

func words(s []Scored) []string {
	out := make([]string, len(s))
	for i, e := range s {
		out[i] = e.Word
	}
	return out
}

func TestRank(t *testing.T) {
	got, err := Rank(trio, stats.FromWords(trio))
	require.NoError(t, err)
	assert.Equal(t, []Scored{{"crane", 10}, {"trace", 10}, {"slate", 9}}, got)
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	got, err := Rank([]string{"trace", "crane"}, stats.FromWords(trio))
	require.NoError(t, err)
	assert.Equal(t, []string{"trace", "crane"}, words(got))
}

func TestRankErrors(t *testing.T) {
	_, err := Rank(trio, nil)
	assert.ErrorIs(t, err, ErrNoStats)

	_, err = WeightedRank(trio, nil, Weight{1, 0, 0}, nil, nil)
	assert.ErrorIs(t, err, ErrNoStats)

	_, err = WeightedRank(trio, stats.FromWords(trio), Weight{math.NaN(), 0, 0}, nil, nil)
	assert.ErrorIs(t, err, ErrBadWeight)
}

func TestRankEmpty(t *testing.T) {
	got, err := Rank(nil, stats.FromWords(trio))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = WeightedRank(nil, stats.FromWords(trio), Weight{1, 1, 1}, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWeightedFrequencyOnly(t *testing.T) {
	got, err := WeightedRank(trio, stats.FromWords(trio), Weight{1, 0, 0}, nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"crane", "trace", "slate"}, words(got))
	assert.InDelta(t, 10.0/3, got[0].Score, 1e-9)
	assert.InDelta(t, 3.0, got[2].Score, 1e-9)
}

func TestWeightedDistinct(t *testing.T) {
	list := []string{"geese", "crane"}
	got, err := WeightedRank(list, stats.FromWords(list), Weight{0, 1, 0}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "crane", got[0].Word)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.InDelta(t, 0.6, got[1].Score, 1e-9)
}

func TestTop(t *testing.T) {
	s := []Scored{{"a", 3}, {"b", 2}, {"c", 1}}
	assert.Len(t, Top(s, 2), 2)
	assert.Len(t, Top(s, 10), 3)
	assert.Len(t, Top(s, -1), 3)
}
