package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordlebot/internal/knowledge"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/solver"
	"github.com/robalobadob/wordlebot/internal/stats"
	"github.com/robalobadob/wordlebot/internal/words"
)

func newSession(t *testing.T) *solver.Session {
	t.Helper()
	c, err := words.New([]string{"crane", "trace", "slate"})
	require.NoError(t, err)
	s, err := solver.New(c, stats.FromWords(c.Words()), ranking.Weights{{1, 0, 0}})
	require.NoError(t, err)
	return s
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	id, err := st.Add(ctx, newSession(t))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	err = st.With(ctx, id, func(s *solver.Session) error {
		_, err := s.Guess("crane", knowledge.MustVerdict("mccwc"))
		return err
	})
	require.NoError(t, err)

	var remaining int
	require.NoError(t, st.With(ctx, id, func(s *solver.Session) error {
		remaining = s.Remaining()
		return nil
	}))
	assert.Equal(t, 1, remaining)

	boom := errors.New("boom")
	assert.ErrorIs(t, st.With(ctx, id, func(*solver.Session) error { return boom }), boom)

	require.NoError(t, st.Delete(ctx, id))
	assert.ErrorIs(t, st.With(ctx, id, func(*solver.Session) error { return nil }), ErrNotFound)
	assert.NoError(t, st.Delete(ctx, "missing"))
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	id, err := st.Add(ctx, newSession(t))
	require.NoError(t, err)

	extra := make([]*solver.Session, 16)
	for i := range extra {
		extra[i] = newSession(t)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.With(ctx, id, func(s *solver.Session) error {
				_, err := s.Suggest(3)
				return err
			})
			_, _ = st.Add(ctx, extra[i])
		}()
	}
	wg.Wait()
}
