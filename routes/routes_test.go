package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dosada05/padel-tournament/brackets"
	"github.com/Dosada05/padel-tournament/handlers"
	"github.com/Dosada05/padel-tournament/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func newRouter() *chi.Mux {
	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Bracket:   handlers.NewBracketHandler(nil),
		Schedule:  handlers.NewScheduleHandler(nil),
		Public:    handlers.NewPublicHandler(nil, nil),
		WebSocket: handlers.NewWebSocketHandler(brackets.NewHub()),
		Health:    handlers.NewHealthHandler(okPinger{}),
	}, metrics.New(), nil)
	return router
}

func TestSetupRoutes(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name   string
		method string
		target string
		code   int
	}{
		{"health", http.MethodGet, "/health", http.StatusOK},
		{"swagger document", http.MethodGet, "/swagger/doc.json", http.StatusOK},
		{"unknown route", http.MethodGet, "/api/nothing", http.StatusNotFound},
		{"wrong method", http.MethodGet, "/api/tournaments/t1/schedule/auto", http.StatusMethodNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.code, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `padel_http_requests_total{method="GET",route="/health",status="200"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/matches/m1/result", nil)
	req.Header.Set("Origin", "https://club.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
