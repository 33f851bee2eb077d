package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JN-EPHEC/what2do-backend/internal/metrics"
)

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger logs every request with its route, status, user and duration,
// and feeds the HTTP latency histogram.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		duration := time.Since(start)
		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = r.URL.Path
		}

		logFn := slog.Info
		if recorder.status >= http.StatusInternalServerError {
			logFn = slog.Error
		} else if recorder.status >= http.StatusBadRequest {
			logFn = slog.Warn
		}
		logFn("Request completed",
			"method", r.Method,
			"route", route,
			"status", recorder.status,
			"user_id", GetUserID(r.Context()),
			"duration_ms", duration.Milliseconds(),
		)

		metrics.HTTPRequestDuration.
			WithLabelValues(r.Method, route, strconv.Itoa(recorder.status)).
			Observe(duration.Seconds())
	})
}
