package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSimulation(t *testing.T) {
	wins := testutil.ToFloat64(SimulatedGames.WithLabelValues("win"))
	losses := testutil.ToFloat64(SimulatedGames.WithLabelValues("loss"))

	RecordSimulation(9, 1)

	assert.Equal(t, wins+9, testutil.ToFloat64(SimulatedGames.WithLabelValues("win")))
	assert.Equal(t, losses+1, testutil.ToFloat64(SimulatedGames.WithLabelValues("loss")))
}

func TestHandler(t *testing.T) {
	SessionsStarted.Inc()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "wordlebot_sessions_started_total")
}
