package middleware

import (
	"log/slog"
	"net/http"

	"uigallery/pkg/apperr"
	"uigallery/pkg/session"
)

type Guard struct {
	Validator  *session.Validator
	Logger     *slog.Logger
	DeniedPath string
}

func NewGuard(validator *session.Validator, logger *slog.Logger, deniedPath string) *Guard {
	return &Guard{
		Validator:  validator,
		Logger:     logger,
		DeniedPath: deniedPath,
	}
}

// RequireAPI validates the cookie bundle and rejects with a JSON envelope
// when the caller is below min. The cached admin-claim cookie is ignored
// here: role comes from the store on every call.
func (g *Guard) RequireAPI(min session.State) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bundle := session.ReadBundle(r)
			state, u := g.Validator.Validate(bundle)

			if !state.AtLeast(min) {
				if state == session.StateUnauthenticated {
					if bundle.Identity != "" {
						// stale bundle: deleted, disabled, or bumped epoch
						session.Clear(w)
					}
					apperr.WriteHTTP(w, apperr.New(apperr.CodeUnauthenticated, "unauthorized"))
					return
				}
				apperr.WriteHTTP(w, apperr.New(apperr.CodeForbidden, "forbidden"))
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), u)))
		})
	}
}

// RequirePage is the page-load variant: same validation, redirect instead
// of JSON.
func (g *Guard) RequirePage(min session.State) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bundle := session.ReadBundle(r)
			state, u := g.Validator.Validate(bundle)

			if !state.AtLeast(min) {
				if state == session.StateUnauthenticated && bundle.Identity != "" {
					session.Clear(w)
				}
				g.Logger.Info("page access denied",
					"path", r.URL.Path, "state", state.String())
				http.Redirect(w, r, g.DeniedPath, http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithUser(r.Context(), u)))
		})
	}
}

// AdminPrefilter is the cheap edge filter: it looks only at the cached
// admin-claim cookie and redirects early when it is absent. It never admits
// anything on its own — every handler behind it is still wrapped by
// RequirePage or RequireAPI, which consult the store.
func AdminPrefilter(deniedPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !session.ReadBundle(r).AdminClaim {
				http.Redirect(w, r, deniedPath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
