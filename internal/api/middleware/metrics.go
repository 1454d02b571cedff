package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "codebox_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "codebox_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// Metrics records request counts and latency per normalized route.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := normalizePath(r.URL.Path)
		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath replaces codes, container names and indexes with placeholders
// so label cardinality stays bounded.
//
//	/api/v1/resolve/123456/files/0/download -> /api/v1/resolve/{code}/files/{index}/download
//	/api/v1/containers/box1/files/654321    -> /api/v1/containers/{name}/files/{code}
func normalizePath(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "v1" {
		return path
	}
	rest := parts[2:]
	switch rest[0] {
	case "resolve", "shares":
		if len(rest) > 1 {
			rest[1] = "{code}"
		}
		if len(rest) > 3 && rest[2] == "files" {
			rest[3] = "{index}"
		}
	case "containers":
		if len(rest) > 1 {
			rest[1] = "{name}"
		}
		if len(rest) > 3 && rest[2] == "files" {
			rest[3] = "{code}"
		}
	}
	return "/api/v1/" + strings.Join(rest, "/")
}
