// SPDX-License-Identifier: MIT

package openapi_server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

var httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "smartpath_http_requests_total",
	Help: "HTTP requests by route name and status code",
}, []string{"route", "code"})

// RequestID tags every request with an id, reusing the caller's X-Request-ID when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// RequestIDFrom returns the id set by RequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Logger logs each request of the named route and counts it by status code.
func Logger(inner http.Handler, name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		inner.ServeHTTP(rec, r)

		httpRequests.WithLabelValues(name, strconv.Itoa(rec.status)).Inc()
		slog.InfoContext(r.Context(), "request",
			"method", r.Method,
			"uri", r.RequestURI,
			"route", name,
			"status", rec.status,
			"elapsed", time.Since(start),
			"request_id", RequestIDFrom(r.Context()),
		)
	})
}
