package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Timeout creates middleware that sets a timeout for request processing.
// If the request exceeds the timeout, it returns 504 Gateway Timeout.
// Excludes /metrics, /health, and /ready endpoints from timeout.
func Timeout(timeout time.Duration, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Skip timeout for observability and health endpoints
			if r.URL.Path == "/metrics" || r.URL.Path == "/health" || r.URL.Path == "/ready" || r.URL.Path == "/" {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			var responseWritten bool

			wrappedWriter := &timeoutResponseWriter{
				ResponseWriter: w,
				onWrite: func() {
					responseWritten = true
					close(done)
				},
			}

			go func() {
				next.ServeHTTP(wrappedWriter, r.WithContext(ctx))
				if !responseWritten {
					close(done)
				}
			}()

			select {
			case <-done:
				return
			case <-ctx.Done():
				if !responseWritten {
					logger.Warn("request timeout",
						"path", r.URL.Path,
						"method", r.Method,
						"timeout", timeout,
					)
					http.Error(w, "Gateway Timeout", http.StatusGatewayTimeout)
				}
			}
		})
	}
}

// timeoutResponseWriter wraps http.ResponseWriter to track writes
type timeoutResponseWriter struct {
	http.ResponseWriter
	onWrite     func()
	wroteHeader bool
	statusCode  int
}

func (w *timeoutResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.statusCode = statusCode
		w.ResponseWriter.WriteHeader(statusCode)
		w.wroteHeader = true
		if w.onWrite != nil {
			w.onWrite()
			w.onWrite = nil
		}
	}
}

func (w *timeoutResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Flush marks the response as written and flushes the underlying writer.
// The interaction webhook acks by flushing before it finishes processing.
func (w *timeoutResponseWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}
