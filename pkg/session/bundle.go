package session

import (
	"net/http"
	"strconv"
	"time"

	"uigallery/pkg/user"
)

const (
	CookieIdentity      = "gallery_ident"
	CookieEpoch         = "gallery_epoch"
	CookieAdminClaim    = "gallery_admin"
	CookieAdminIdentity = "gallery_admin_ident"

	TTL = 12 * time.Hour
)

// Bundle is the session identity carried in cookies. The admin claim is a
// cached hint from login time, never an authorization source on its own.
type Bundle struct {
	Identity   string
	Epoch      string
	AdminClaim bool
}

func ReadBundle(r *http.Request) Bundle {
	b := Bundle{Epoch: "0"}
	if c, err := r.Cookie(CookieIdentity); err == nil {
		b.Identity = c.Value
	}
	if c, err := r.Cookie(CookieEpoch); err == nil {
		b.Epoch = c.Value
	}
	if c, err := r.Cookie(CookieAdminClaim); err == nil {
		b.AdminClaim = c.Value == "true"
	}
	return b
}

// Issue sets the cookie bundle for a freshly verified user.
func Issue(w http.ResponseWriter, u *user.User) {
	expires := time.Now().Add(TTL)

	setCookie(w, CookieIdentity, u.Email, expires)
	setCookie(w, CookieEpoch, strconv.FormatInt(u.SessionEpoch, 10), expires)
	setCookie(w, CookieAdminClaim, strconv.FormatBool(u.IsAdmin()), expires)
	if u.IsAdmin() {
		setCookie(w, CookieAdminIdentity, u.Email, expires)
	}
}

// Clear drops the whole bundle; callers use it after a failed validation
// against a disabled account or a stale epoch.
func Clear(w http.ResponseWriter) {
	expired := time.Unix(0, 0)
	for _, name := range []string{CookieIdentity, CookieEpoch, CookieAdminClaim, CookieAdminIdentity} {
		setCookie(w, name, "", expired)
	}
}

func setCookie(w http.ResponseWriter, name, value string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
