package rest

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/scpcatalog/internal/common"
	"github.com/dmitrijs2005/scpcatalog/internal/logging"
	"github.com/dmitrijs2005/scpcatalog/internal/server/auth"
	"github.com/google/uuid"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one is outermost.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			final = mws[i](final)
		}
		return final
	}
}

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestIDFromContext returns the id assigned by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// statusWriter captures the response status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Logger logs one line per request.
func Logger(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			args := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start),
				"request_id", RequestIDFromContext(r.Context()),
			}
			if sw.status >= http.StatusInternalServerError {
				logger.Error(r.Context(), "http.request", args...)
				return
			}
			logger.Info(r.Context(), "http.request", args...)
		})
	}
}

// Recovery turns a handler panic into a 500.
func Recovery(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					logger.Error(r.Context(), "panic recovered", "panic", p, "path", r.URL.Path)
					writeError(w, http.StatusInternalServerError, msgServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS answers preflight requests and tags responses for allowed origins.
// origins is a comma-separated list; "*" allows any origin.
func CORS(origins string) Middleware {
	allowed := strings.Split(origins, ",")
	for i := range allowed {
		allowed[i] = strings.TrimSpace(allowed[i])
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && originAllowed(origin, allowed) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-Id")
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(600))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, allowed []string) bool {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

// RequireToken guards a handler with an HS256 bearer token. An empty secret
// disables the check.
func RequireToken(secret string, logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get(common.AuthorizationHeaderName)
			if !strings.HasPrefix(header, common.BearerPrefix) {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			subject, err := auth.SubjectFromToken(strings.TrimPrefix(header, common.BearerPrefix), []byte(secret))
			if err != nil {
				logger.Warn(r.Context(), "token rejected", "error", err, "request_id", RequestIDFromContext(r.Context()))
				writeError(w, http.StatusForbidden, err.Error())
				return
			}

			logger.Debug(r.Context(), "token accepted", "subject", subject)
			next.ServeHTTP(w, r)
		})
	}
}
