// Package middleware holds the http.Handler wrappers applied to every
// API route: request ids, access logging and panic recovery.
package middleware

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID tags each request with an id, reusing the caller's
// X-Request-ID when present, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

// RequestIDFrom returns the id RequestID stored on ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// AccessLog writes one log line per request once the handler returns.
// gorilla's logging handler captures the status; the line itself goes
// through slog rather than the handler's io.Writer.
func AccessLog(log *slog.Logger) func(http.Handler) http.Handler {
	format := func(_ io.Writer, p handlers.LogFormatterParams) {
		log.Info("request handled",
			slog.String("method", p.Request.Method),
			slog.String("path", p.URL.Path),
			slog.Int("status", p.StatusCode),
			slog.Int("size", p.Size),
			slog.Duration("duration", time.Since(p.TimeStamp)),
			slog.String("request_id", RequestIDFrom(p.Request.Context())),
		)
	}

	return func(next http.Handler) http.Handler {
		return handlers.CustomLoggingHandler(io.Discard, next, format)
	}
}

// slogPrinter adapts a *slog.Logger to handlers.RecoveryHandlerLogger.
type slogPrinter struct {
	log *slog.Logger
}

func (p slogPrinter) Println(v ...interface{}) {
	p.log.Error("recovered from panic", slog.String("panic", fmt.Sprint(v...)))
}

// Recover turns a panic inside a handler into a 500 response and logs it,
// so a store fault surfaces as an internal error rather than a dropped
// connection.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return handlers.RecoveryHandler(handlers.RecoveryLogger(slogPrinter{log: log}))
}
