package routes

import (
	"net/http"
	"time"

	_ "github.com/Dosada05/padel-tournament/docs"
	"github.com/Dosada05/padel-tournament/handlers"
	"github.com/Dosada05/padel-tournament/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Bracket   *handlers.BracketHandler
	Schedule  *handlers.ScheduleHandler
	Public    *handlers.PublicHandler
	WebSocket *handlers.WebSocketHandler
	Health    http.Handler
}

func SetupRoutes(router *chi.Mux, h Handlers, m *metrics.Metrics, allowedOrigins []string) {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))
	if m != nil {
		router.Use(m.Middleware)
		router.Method(http.MethodGet, "/metrics", m.Handler())
	}

	router.Method(http.MethodGet, "/health", h.Health)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// The websocket route stays outside the timeout middleware.
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(chiMiddleware.Timeout(60 * time.Second))

		r.Route("/api", func(r chi.Router) {
			r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
				r.Post("/categories/{categoryID}/bracket", h.Bracket.GenerateHandler)
				r.Get("/categories/{categoryID}/bracket/validation", h.Bracket.ValidateHandler)

				r.Post("/schedule/auto", h.Schedule.AutoScheduleHandler)
				r.Delete("/schedule", h.Schedule.ClearScheduleHandler)
				r.Post("/schedule/changes", h.Schedule.ApplyChangesHandler)
			})
			r.Route("/matches/{matchID}", func(r chi.Router) {
				r.Post("/result", h.Bracket.RecordResultHandler)
				r.Put("/schedule", h.Schedule.ScheduleMatchHandler)
			})
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/tournaments/{tournamentID}/schedule", h.Public.ScheduleHandler)
			r.Get("/categories/{categoryID}/matches", h.Public.CategoryMatchesHandler)
			r.Get("/categories/{categoryID}/standings", h.Public.StandingsHandler)
		})
	})
}
