package httpserver

import (
	"net/http"
	"runtime/debug"

	apierrors "github.com/TunnelFront/server/internal/errors"
	"github.com/TunnelFront/server/internal/logger"
)

// recoveryMiddleware converts handler panics into the standard JSON error
// envelope instead of chi's plain-text 500. http.ErrAbortHandler is re-raised
// so the server can abort the connection the way net/http expects.
func recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				log := logger.FromContext(r.Context())
				log.Error().
					Interface("panic", rvr).
					Str("path", r.URL.Path).
					Bytes("stack", debug.Stack()).
					Msg("request.panic_recovered")

				apierrors.WriteSimpleError(w, apierrors.ErrCodeInternalError,
					"An unexpected error occurred")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
