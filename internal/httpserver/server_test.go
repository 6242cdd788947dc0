package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordlebot/internal/config"
	"github.com/robalobadob/wordlebot/internal/metrics"
	"github.com/robalobadob/wordlebot/internal/ranking"
	"github.com/robalobadob/wordlebot/internal/runs"
	"github.com/robalobadob/wordlebot/internal/simulate"
	"github.com/robalobadob/wordlebot/internal/stats"
	"github.com/robalobadob/wordlebot/internal/store"
	"github.com/robalobadob/wordlebot/internal/words"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T, rs *runs.Store) *Server {
	t.Helper()
	c, err := words.New([]string{"crane", "trace", "slate"})
	require.NoError(t, err)
	res := &config.Resources{
		Corpus:   c,
		Table:    stats.FromWords(c.Words()),
		Weights:  ranking.Weights{{1, 0, 0}, {0.5, 0.2, 0.3}},
		Strategy: ranking.LetterSplit{},
	}
	cfg := config.Config{JWTSecret: testSecret, MaxGuesses: 6, ClientOrigin: "http://localhost:5173"}
	return New(cfg, res, store.NewMemoryStore(), rs)
}

func do(t *testing.T, s *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestDiagnostics(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())

	rec = do(t, s, http.MethodOptions, "/solve/new", nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSolveFlow(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/solve/new", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	start := decode[sessionRes](t, rec)
	assert.Equal(t, "active", start.Status)
	assert.Equal(t, 3, start.Remaining)
	require.NotEmpty(t, start.Suggestions)
	assert.Equal(t, "crane", start.Suggestions[0].Word)
	id := start.SessionID

	rec = do(t, s, http.MethodPost, "/solve/guess", guessReq{SessionID: id, Guess: "crane", Pattern: "xx"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/solve/guess", guessReq{SessionID: id, Guess: "zzzzz", Pattern: "wwwww"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/solve/guess", guessReq{SessionID: id, Guess: "crane", Pattern: "mccwc"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	mid := decode[sessionRes](t, rec)
	assert.Equal(t, 1, mid.Attempts)
	assert.Equal(t, 1, mid.Remaining)
	require.Len(t, mid.Suggestions, 1)
	assert.Equal(t, "trace", mid.Suggestions[0].Word)

	rec = do(t, s, http.MethodPost, "/solve/guess", guessReq{SessionID: id, Guess: "trace", Pattern: "ccccc"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	done := decode[sessionRes](t, rec)
	assert.Equal(t, "solved", done.Status)
	assert.Equal(t, "trace", done.Answer)

	rec = do(t, s, http.MethodPost, "/solve/guess", guessReq{SessionID: id, Guess: "slate", Pattern: "wwwww"}, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodGet, "/solve/"+id, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "solved", decode[sessionRes](t, rec).Status)

	rec = do(t, s, http.MethodPost, "/solve/reset", sessionReq{SessionID: id}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	reset := decode[sessionRes](t, rec)
	assert.Equal(t, "active", reset.Status)
	assert.Equal(t, 3, reset.Remaining)
	assert.Zero(t, reset.Attempts)

	rec = do(t, s, http.MethodDelete, "/solve/"+id, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/solve/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSolveExhausted(t *testing.T) {
	s := newTestServer(t, nil)
	id := decode[sessionRes](t, do(t, s, http.MethodPost, "/solve/new", nil, "")).SessionID

	rec := do(t, s, http.MethodPost, "/solve/guess", guessReq{SessionID: id, Guess: "crane", Pattern: "wwwww"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	v := decode[sessionRes](t, rec)
	assert.Equal(t, "exhausted", v.Status)
	assert.NotEmpty(t, v.Reason)
	assert.Empty(t, v.Suggestions)
}

func TestSolveUnknownSession(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodPost, "/solve/guess", guessReq{SessionID: "missing", Guess: "crane", Pattern: "wwwww"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/solve/reset", sessionReq{SessionID: "missing"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/solve/guess", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSimulateRequiresToken(t *testing.T) {
	s := newTestServer(t, nil)

	rec := do(t, s, http.MethodPost, "/simulate", simulateReq{Runs: 5}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/simulate", simulateReq{Runs: 5}, "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	other, _, err := SignToken("another-secret", "me", 1)
	require.NoError(t, err)
	rec = do(t, s, http.MethodPost, "/simulate", simulateReq{Runs: 5}, other)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSimulate(t *testing.T) {
	db, err := runs.OpenDB(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, runs.Migrate(db))
	s := newTestServer(t, runs.NewStore(db))

	token, _, err := SignToken(testSecret, "bench", 1)
	require.NoError(t, err)

	winsBefore := testutil.ToFloat64(metrics.SimulatedGames.WithLabelValues("win"))
	seed := uint64(9)
	rec := do(t, s, http.MethodPost, "/simulate", simulateReq{Runs: 12, Seed: &seed}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rep := decode[simulate.Report](t, rec)
	assert.Equal(t, 12, rep.Runs)
	assert.Equal(t, 12, rep.Wins)
	assert.NotEmpty(t, rep.ID)
	assert.Equal(t, winsBefore+12, testutil.ToFloat64(metrics.SimulatedGames.WithLabelValues("win")))

	rec = do(t, s, http.MethodPost, "/simulate", simulateReq{Runs: 0}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodPost, "/simulate", simulateReq{Runs: maxSimulationRuns + 1}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, s, http.MethodPost, "/simulate", simulateReq{Runs: 1, Strategy: "minimax"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/simulate/runs", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	stored := decode[[]simulate.Report](t, rec)
	require.Len(t, stored, 1)
	assert.Equal(t, rep.ID, stored[0].ID)
}

func TestRunsWithoutStore(t *testing.T) {
	s := newTestServer(t, nil)
	rec := do(t, s, http.MethodGet, "/simulate/runs", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestTokenRoundTrip(t *testing.T) {
	tok, exp, err := SignToken(testSecret, "alice", 0)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	sub, err := parseToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)

	_, _, err = SignToken("", "alice", 1)
	assert.Error(t, err)
}
