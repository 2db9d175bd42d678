package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-stack/internal/stack"
)

func TestSessionGauge(t *testing.T) {
	c := New(prometheus.NewRegistry())

	c.SessionStarted()
	c.SessionStarted()
	c.SessionEnded()

	assert.Equal(t, 1.0, testutil.ToFloat64(c.sessions))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.sessionsTotal))
}

func TestGameObserverCounts(t *testing.T) {
	c := New(nil)
	obs := c.GameObservers("stack_zen", "session-1")
	require.Len(t, obs, 1)
	o := obs[0]

	o.OnInit()
	o.OnStart()
	o.OnResolve(stack.Resolution{Kind: stack.Perfect})
	o.OnResolve(stack.Resolution{Kind: stack.Perfect})
	o.OnResolve(stack.Resolution{Kind: stack.Partial})
	o.OnResolve(stack.Resolution{Kind: stack.Miss})
	o.OnGameOver(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.games.WithLabelValues("stack_zen")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.drops.WithLabelValues("stack_zen", "perfect")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.drops.WithLabelValues("stack_zen", "miss")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.scores))
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := New(nil)
	c.SessionStarted()
	c.Observer("stack").OnStart()

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.True(t, strings.Contains(body, "stack_sessions_active 1"))
	assert.Contains(t, body, `stack_games_total{game="stack"} 1`)
}
