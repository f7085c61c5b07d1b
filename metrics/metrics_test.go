package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/matches/{matchID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/matches/"+id, nil))
		require.Equal(t, http.StatusTeapot, rec.Code)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `padel_http_requests_total{method="GET",route="/matches/{matchID}",status="418"} 2`)
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.MatchesScheduled.Add(3)
	m.ScheduleRuns.WithLabelValues("ok").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()

	assert.True(t, strings.Contains(body, "padel_matches_scheduled_total 3"))
	assert.True(t, strings.Contains(body, `padel_schedule_runs_total{outcome="ok"} 1`))
}
