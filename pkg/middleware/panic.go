package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"uigallery/pkg/apperr"
)

func Panic(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recover", "panic", err, "stack", string(debug.Stack()))
					apperr.WriteHTTP(w, apperr.New(apperr.CodeInternal, "internal error"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
