package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/s0up4200/eiga/tmdb"
)

// metrics holds the collectors of one server. Each server owns its registry
// so several can live in one process.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	upstream *prometheus.CounterVec
	filtered prometheus.Counter
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eiga_http_requests_total",
			Help: "Total HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "eiga_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "eiga_tmdb_errors_total",
			Help: "TMDB failures by kind.",
		}, []string{"kind"}),
		filtered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "eiga_filtered_media_total",
			Help: "Media records dropped by filter expressions.",
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.upstream,
		m.filtered,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// middleware records request counts and latency per route template
func (m *metrics) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := routeTemplate(r)
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func (m *metrics) observeError(err error) {
	m.upstream.WithLabelValues(errorKind(err)).Inc()
}

// responseWriter captures the status code written by a handler
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, tmdb.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, tmdb.ErrNotFound):
		return "not_found"
	case errors.Is(err, tmdb.ErrServer):
		return "server"
	case errors.Is(err, tmdb.ErrUnexpectedResponse):
		return "unexpected"
	case errors.Is(err, tmdb.ErrNoData):
		return "no_data"
	case errors.Is(err, tmdb.ErrDecoding):
		return "decoding"
	case errors.Is(err, tmdb.ErrInvalidURL):
		return "invalid_url"
	default:
		return "unknown"
	}
}
