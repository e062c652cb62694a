// Copyright 2026 Elasticsearch B.V. and contributors
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/icalialabs/searchspot/internal/auth"
	"github.com/icalialabs/searchspot/internal/monitor"
	"github.com/icalialabs/searchspot/internal/telemetry"
)

// requestIDHeader is the response header carrying the per-request
// correlation id, surfaced to clients and carried into access log lines.
const requestIDHeader = "X-Request-Id"

// RequestID assigns each request a UUID (v4) and echoes it back in the
// X-Request-Id response header, so a client-reported issue can be
// correlated against the structured log line AccessLog emits for the
// same request.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

// CORS sets permissive cross-origin headers on every response and
// short-circuits preflight requests, matching the teacher's
// stock-tracker middleware.CORS.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "authorization, content-type, accept")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// AccessLog logs each request's method, path, status and duration. It is
// skipped entirely when the DYNO environment variable is set, matching
// the original's single-dyno Heroku deployment which omits this
// middleware to save the process's limited resources.
func AccessLog(logger *telemetry.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if os.Getenv("DYNO") != "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			logger.Info(r.Context(), "request completed",
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
				attribute.Int("http.status_code", wrapped.statusCode),
				attribute.Int64("http.duration_ms", time.Since(start).Milliseconds()),
				attribute.String("http.request_id", w.Header().Get(requestIDHeader)),
			)
		})
	}
}

// RequireAuth checks the Authorization header against verifier for
// scope, returning 401 with an empty body on failure (§4.G.1). A
// disabled verifier bypasses the check entirely.
func RequireAuth(verifier *auth.Verifier, scope auth.Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			code, ok := auth.ExtractToken(r.Header.Get("Authorization"))
			if !verifier.Enabled {
				next.ServeHTTP(w, r)
				return
			}
			if !ok || !verifier.Verify(scope, code) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Recover catches panics from inner handlers, forwards them to the
// monitor synchronously (so the report lands before the connection is
// torn down), and responds with an empty 500 rather than crashing the
// process (§4.I).
func Recover(m monitor.Provider, logger *telemetry.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := make([]byte, 8192)
					n := runtime.Stack(stack, false)
					if m != nil {
						m.SendPanic(r.Context(), rec, stack[:n])
					}
					if logger != nil {
						logger.Error(r.Context(), "httpapi.Recover", "panic recovered")
					}
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
