package runs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordlebot/internal/simulate"
)

func openTestDB(t *testing.T) *Store {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "data", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db), "migrations are idempotent")
	return NewStore(db)
}

func TestInsertRecent(t *testing.T) {
	ctx := context.Background()
	st := openTestDB(t)

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	older := simulate.Report{
		StartedAt: base, Strategy: "letters", Runs: 10, Wins: 9, MaxGuesses: 6,
		MeanGuesses: 3.5, Histogram: []int{0, 1, 4, 3, 1, 0, 1}, Elapsed: 1500 * time.Millisecond,
	}
	newer := older
	newer.StartedAt = base.Add(time.Hour)
	newer.Strategy = "entropy"

	id1, err := st.Insert(ctx, older)
	require.NoError(t, err)
	id2, err := st.Insert(ctx, newer)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	got, err := st.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, id2, got[0].ID)
	assert.Equal(t, "entropy", got[0].Strategy)
	assert.Equal(t, id1, got[1].ID)
	assert.True(t, base.Equal(got[1].StartedAt))
	assert.Equal(t, older.Histogram, got[1].Histogram)
	assert.InDelta(t, 0.9, got[1].WinRate, 1e-9)
	assert.Equal(t, 1500*time.Millisecond, got[1].Elapsed)

	one, err := st.Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, one, 1)
}

func TestRecentEmpty(t *testing.T) {
	got, err := openTestDB(t).Recent(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRecentOrdersSubSecondStarts(t *testing.T) {
	ctx := context.Background()
	st := openTestDB(t)

	whole := time.Date(2024, 5, 1, 10, 0, 5, 0, time.UTC)
	half := whole.Add(500 * time.Millisecond)
	for _, at := range []time.Time{half, whole} {
		_, err := st.Insert(ctx, simulate.Report{StartedAt: at, Strategy: "letters", Runs: 1, MaxGuesses: 6, Histogram: []int{0, 0, 0, 0, 0, 0, 1}})
		require.NoError(t, err)
	}

	got, err := st.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, half.Equal(got[0].StartedAt), got[0].StartedAt)
	assert.True(t, whole.Equal(got[1].StartedAt), got[1].StartedAt)
}
