package httpx

import (
	"net/http"
	"strconv"
	"time"

	"github.com/you/go-travel-gateway/internal/metrics"
)

// MetricsMiddleware records request counts and latency per method/path.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		status := strconv.Itoa(sw.status)
		metrics.HTTPRequestsTotal.
			WithLabelValues(r.Method, r.URL.Path, status).Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, r.URL.Path, status).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
