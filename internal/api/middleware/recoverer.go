package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/Rrens/reservasi-bot/internal/api/response"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Recoverer turns a handler panic into the generic 500 envelope
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log.Error().
				Interface("panic", rec).
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")

			if r.Header.Get("Connection") != "Upgrade" {
				response.InternalError(w, response.MsgInternalError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
