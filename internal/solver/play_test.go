package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordlebot/internal/game"
	"github.com/robalobadob/wordlebot/internal/knowledge"
)

type oracleFunc func(string) (knowledge.Verdict, error)

func (f oracleFunc) Feedback(g string) (knowledge.Verdict, error) { return f(g) }

func allAbsent(string) (knowledge.Verdict, error) { return knowledge.MustVerdict("wwwww"), nil }

func TestPlayAgainstGame(t *testing.T) {
	s := newSession(t, trio, WithMaxGuesses(6))
	out, err := Play(context.Background(), s, game.New("trace", nil))
	require.NoError(t, err)
	assert.True(t, out.Won)
	assert.Equal(t, 2, out.Guesses)
	assert.Equal(t, []string{"crane", "trace"}, out.Path)
	assert.Empty(t, out.Reason)
}

func TestPlayEveryTargetWins(t *testing.T) {
	list := []string{"crane", "trace", "slate", "geese", "llama"}
	for _, target := range list {
		s := newSession(t, list, WithMaxGuesses(6))
		out, err := Play(context.Background(), s, game.New(target, nil))
		require.NoError(t, err)
		assert.True(t, out.Won, target)
		assert.LessOrEqual(t, out.Guesses, len(list))
		assert.Equal(t, target, out.Path[len(out.Path)-1])
	}
}

func TestPlayLossIsOutcome(t *testing.T) {
	s := newSession(t, trio, WithMaxGuesses(6))
	out, err := Play(context.Background(), s, oracleFunc(allAbsent))
	require.NoError(t, err)
	assert.False(t, out.Won)
	assert.Equal(t, LossGuesses(6), out.Guesses)
	assert.Equal(t, ReasonNoCandidates, out.Reason)
	assert.Equal(t, []string{"crane"}, out.Path)

	unbounded := newSession(t, trio)
	out, err = Play(context.Background(), unbounded, oracleFunc(allAbsent))
	require.NoError(t, err)
	assert.Equal(t, 2, out.Guesses)
}

func TestPlayErrors(t *testing.T) {
	boom := errors.New("boom")
	s := newSession(t, trio)
	_, err := Play(context.Background(), s, oracleFunc(func(string) (knowledge.Verdict, error) {
		return knowledge.Verdict{}, boom
	}))
	assert.ErrorIs(t, err, boom)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Play(ctx, newSession(t, trio), game.New("trace", nil))
	assert.ErrorIs(t, err, context.Canceled)
}
