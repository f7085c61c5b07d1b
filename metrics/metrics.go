package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors of one registry.
type Metrics struct {
	registry *prometheus.Registry

	MatchesScheduled prometheus.Counter
	MatchesSkipped   prometheus.Counter
	ScheduleRuns     *prometheus.CounterVec
	ScheduleDuration prometheus.Histogram
	BracketsCreated  prometheus.Counter
	ResultsRecorded  prometheus.Counter
	Notifications    *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		MatchesScheduled: f.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_scheduled_total",
			Help: "Matches placed by the auto-scheduler.",
		}),
		MatchesSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "padel_matches_skipped_total",
			Help: "Pending matches the auto-scheduler could not place.",
		}),
		ScheduleRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_schedule_runs_total",
			Help: "Auto-schedule runs by outcome.",
		}, []string{"outcome"}),
		ScheduleDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "padel_schedule_run_duration_seconds",
			Help:    "Wall time of auto-schedule runs.",
			Buckets: prometheus.DefBuckets,
		}),
		BracketsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "padel_brackets_generated_total",
			Help: "Knockout brackets generated.",
		}),
		ResultsRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "padel_results_recorded_total",
			Help: "Match results recorded.",
		}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_notifications_total",
			Help: "Schedule notifications by channel and outcome.",
		}, []string{"channel", "outcome"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "padel_http_requests_total",
			Help: "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "padel_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
