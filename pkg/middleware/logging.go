package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"pulse/pkg/common"
	"pulse/pkg/logger"
)

type traceKey string

const TraceKey traceKey = "traceId"

type Logging struct {
	base *zap.SugaredLogger
}

func NewLoggingMiddleware(l *zap.SugaredLogger) *Logging {
	return &Logging{base: l}
}

// Assigns a trace id to the request, reusing an incoming X-Request-ID
// when the caller supplied one.
func (lm *Logging) SetupTracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceId := r.Header.Get("X-Request-ID")
		if traceId == "" {
			traceId = common.RandStringRunes(16)
		}
		w.Header().Set("X-Request-ID", traceId)
		ctx := context.WithValue(r.Context(), TraceKey, traceId)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Puts a request-scoped logger carrying the trace id into the context
// so that logger.Log(ctx) picks it up anywhere down the call chain.
func (lm *Logging) SetupLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		l := lm.base
		if traceId, ok := r.Context().Value(TraceKey).(string); ok {
			l = l.With("traceId", traceId)
		}
		next.ServeHTTP(w, r.WithContext(logger.With(r.Context(), l)))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

func (lm *Logging) AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		logger.Log(r.Context()).Infow("request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start),
		)
	})
}

// Recovers handler panics into a 500 instead of killing the connection.
func (lm *Logging) Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Log(r.Context()).Errorf("panic recovered: %v", rec)
				common.WriteMsg(w, "internal error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
