package middleware

import (
	"net/http"

	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"

	"go.uber.org/zap"
)

// responseRecorder captures the status code written by the handler.
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// LoggingMiddleware writes one structured access log line per request,
// counts requests by status class and accumulates total request time.
func LoggingMiddleware(reg *metrics.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timer := reg.StartTimer("http.request_duration_ms")

			rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)
			elapsed := timer.Stop()

			if reg != nil {
				reg.Inc("http.requests")
				reg.Inc(statusClass(rec.statusCode))
			}

			log := logger.FromCtx(r.Context())
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.statusCode),
				zap.Duration("duration", elapsed),
				zap.String("ip", r.RemoteAddr),
			}

			switch {
			case rec.statusCode >= 500:
				log.Error("http request", fields...)
			case rec.statusCode >= 400:
				log.Warn("http request", fields...)
			default:
				log.Info("http request", fields...)
			}
		})
	}
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "http.responses.5xx"
	case code >= 400:
		return "http.responses.4xx"
	case code >= 300:
		return "http.responses.3xx"
	default:
		return "http.responses.2xx"
	}
}
