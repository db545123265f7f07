// Package recovery keeps a panicking timeline or memory handler from taking
// the server down. The panic is logged with its stack, counted, and the
// caller gets the same JSON error body as any other 500.
package recovery

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/familylane/memory-lane/internal/api/respond"
	"github.com/familylane/memory-lane/internal/metrics"
)

const panicMessage = "unexpected error while serving the request"

// Middleware recovers from handler panics and replies 500.
func Middleware(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				metrics.HandlerPanicsTotal.Inc()
				log.Error().
					Interface("panic", rec).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Str("query", r.URL.RawQuery).
					Bytes("stack", debug.Stack()).
					Msg("handler panic recovered")
				respond.WriteInternalError(w, panicMessage)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
